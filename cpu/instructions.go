package cpu

import "strings"

// Instruction classes (icode), the high nibble of an opcode byte.
const (
	IHALT      byte = 0x0 // halt
	INOP       byte = 0x1 // nop
	IRRMOVL    byte = 0x2 // rrmovl and the cmovXX family
	IIRMOVL    byte = 0x3 // irmovl
	IRMMOVL    byte = 0x4 // rmmovl
	IMRMOVL    byte = 0x5 // mrmovl
	IALU       byte = 0x6 // addl, subl, andl, xorl
	IJXX       byte = 0x7 // jmp and conditional jumps
	ICALL      byte = 0x8 // call
	IRET       byte = 0x9 // ret
	IPUSHL     byte = 0xA // pushl
	IPOPL      byte = 0xB // popl
	IDIRECTIVE byte = 0xC // assembler directives, never executed
)

// Function codes (ifun), the low nibble of an opcode byte.
const (
	FNONE byte = 0x0

	// ALU operations.
	ALUADD byte = 0x0
	ALUSUB byte = 0x1
	ALUAND byte = 0x2
	ALUXOR byte = 0x3

	// Conditions shared by jXX and cmovXX.
	CYES byte = 0x0
	CLE  byte = 0x1
	CL   byte = 0x2
	CE   byte = 0x3
	CNE  byte = 0x4
	CGE  byte = 0x5
	CG   byte = 0x6

	// Directive kinds.
	DDATA  byte = 0x0
	DPOS   byte = 0x1
	DALIGN byte = 0x2
)

// MaxInstructionLen is the size of the longest encoding (irmovl, rmmovl, mrmovl).
const MaxInstructionLen = 6

// Instruction describes one catalog entry.
type Instruction struct {
	// Name is the mnemonic as written in source.
	Name string
	// Code is the packed opcode byte, icode<<4 | ifun.
	Code byte
	// Len is the encoded size in bytes. Position-only directives have 0.
	Len int
}

// ICode returns the instruction class.
func (i Instruction) ICode() byte { return High(i.Code) }

// IFun returns the variant.
func (i Instruction) IFun() byte { return Low(i.Code) }

// Instructions is the complete mnemonic catalog.
var Instructions = []Instruction{
	{"nop", Pack(INOP, FNONE), 1},
	{"halt", Pack(IHALT, FNONE), 1},
	{"rrmovl", Pack(IRRMOVL, FNONE), 2},
	{"cmovle", Pack(IRRMOVL, CLE), 2},
	{"cmovl", Pack(IRRMOVL, CL), 2},
	{"cmove", Pack(IRRMOVL, CE), 2},
	{"cmovne", Pack(IRRMOVL, CNE), 2},
	{"cmovge", Pack(IRRMOVL, CGE), 2},
	{"cmovg", Pack(IRRMOVL, CG), 2},
	{"irmovl", Pack(IIRMOVL, FNONE), 6},
	{"rmmovl", Pack(IRMMOVL, FNONE), 6},
	{"mrmovl", Pack(IMRMOVL, FNONE), 6},
	{"addl", Pack(IALU, ALUADD), 2},
	{"subl", Pack(IALU, ALUSUB), 2},
	{"andl", Pack(IALU, ALUAND), 2},
	{"xorl", Pack(IALU, ALUXOR), 2},
	{"jmp", Pack(IJXX, CYES), 5},
	{"jle", Pack(IJXX, CLE), 5},
	{"jl", Pack(IJXX, CL), 5},
	{"je", Pack(IJXX, CE), 5},
	{"jne", Pack(IJXX, CNE), 5},
	{"jge", Pack(IJXX, CGE), 5},
	{"jg", Pack(IJXX, CG), 5},
	{"call", Pack(ICALL, FNONE), 5},
	{"ret", Pack(IRET, FNONE), 1},
	{"pushl", Pack(IPUSHL, FNONE), 2},
	{"popl", Pack(IPOPL, FNONE), 2},
	{".byte", Pack(IDIRECTIVE, DDATA), 1},
	{".word", Pack(IDIRECTIVE, DDATA), 2},
	{".long", Pack(IDIRECTIVE, DDATA), 4},
	{".pos", Pack(IDIRECTIVE, DPOS), 0},
	{".align", Pack(IDIRECTIVE, DALIGN), 0},
}

// LookupInstruction matches the start of text against the catalog.
//
// Mnemonics are not whitespace-delimited: the match is the longest catalog
// entry whose name is a prefix of text, so "cmovle" wins over "cmovl" and
// "jle" over "jl" no matter how the catalog is ordered.
func LookupInstruction(text string) (Instruction, bool) {
	var best Instruction
	found := false
	for _, in := range Instructions {
		if !strings.HasPrefix(text, in.Name) {
			continue
		}
		if !found || len(in.Name) > len(best.Name) {
			best = in
			found = true
		}
	}
	return best, found
}

// InstructionByCode returns the executable instruction for an opcode byte.
// Directives are not executable and are never returned.
func InstructionByCode(code byte) (Instruction, bool) {
	if High(code) == IDIRECTIVE {
		return Instruction{}, false
	}
	for _, in := range Instructions {
		if in.Code == code {
			return in, true
		}
	}
	return Instruction{}, false
}

// Pack joins two nibbles into one byte.
func Pack(hi, lo byte) byte {
	return hi<<4 | lo&0xF
}

// High returns the upper nibble.
func High(b byte) byte { return b >> 4 & 0xF }

// Low returns the lower nibble.
func Low(b byte) byte { return b & 0xF }

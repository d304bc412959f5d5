package assembler

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Urethramancer/y86/cpu"
)

// maxAddress is the highest virtual address an image can use.
const maxAddress = 0xFFFFFFFF

// Assembler holds the state for one assembly run: the address counter, the
// ordered line records, the symbol table and the pending relocations.
// An Assembler is not safe for concurrent use.
type Assembler struct {
	vmaddr    int64
	lines     []Line
	symbols   *SymbolTable
	relocs    []Relocation
	relocated bool
	log       *slog.Logger
}

// New creates a new Assembler instance.
func New() *Assembler {
	return &Assembler{
		symbols: NewSymbolTable(),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger routes the assembler's debug records to l.
func (asm *Assembler) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	asm.log = l
}

// Reset releases every table and record so the Assembler can start a new run.
func (asm *Assembler) Reset() {
	asm.vmaddr = 0
	asm.lines = nil
	asm.symbols = NewSymbolTable()
	asm.relocs = nil
	asm.relocated = false
}

// Assemble runs the first pass over every line of r. It stops at the first
// failing line.
func (asm *Assembler) Assemble(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := asm.AssembleLine(strings.TrimSuffix(sc.Text(), "\r")); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return ioError("read source", err)
	}
	return nil
}

// AssembleLine encodes one source line, appending its record to the line
// sequence and updating the symbol table and relocation list.
func (asm *Assembler) AssembleLine(text string) error {
	asm.lines = append(asm.lines, Line{
		Number: len(asm.lines) + 1,
		Source: text,
		Type:   LineComment,
	})
	idx := len(asm.lines) - 1
	asm.relocated = false

	if err := asm.parseLine(idx); err != nil {
		asm.lines[idx].Type = LineFailed
		asm.log.Debug("line failed", "line", idx+1, "error", err)
		return err
	}

	l := &asm.lines[idx]
	if l.Type == LineInstruction {
		asm.log.Debug("encoded line",
			"line", l.Number,
			"addr", fmt.Sprintf("0x%03x", l.Addr),
			"code", hex.EncodeToString(l.Bytes()),
		)
	}
	return nil
}

// parseLine runs the per-line state machine: optional label, optional
// instruction or directive, optional trailing comment.
func (asm *Assembler) parseLine(idx int) error {
	l := &asm.lines[idx]
	s := newScanner(l.Source, l.Number)

	s.skipBlank()
	if s.atEnd() || s.atComment() {
		return nil
	}

	name, ok, err := s.label()
	if err != nil {
		return err
	}
	if ok {
		if !asm.symbols.add(name, uint32(asm.vmaddr), l.Number) {
			return s.errorf(ErrDuplicateSymbol, "duplicate symbol '%s'", name)
		}
		l.Type = LineInstruction
		l.Addr = uint32(asm.vmaddr)

		s.skipBlank()
		if s.atEnd() || s.atComment() {
			return nil
		}
	}

	in, err := s.mnemonic()
	if err != nil {
		return err
	}
	if asm.vmaddr+int64(in.Len) > maxAddress+1 {
		return s.errorf(ErrSyntax, "%s at 0x%x runs past the end of the address space", in.Name, asm.vmaddr)
	}

	l.Type = LineInstruction
	l.Addr = uint32(asm.vmaddr)
	l.Len = in.Len
	l.Code[0] = in.Code
	asm.vmaddr += int64(in.Len)

	if err := asm.encode(s, idx, in); err != nil {
		return err
	}
	return s.end()
}

// encode dispatches on the instruction class and writes the operand bytes.
func (asm *Assembler) encode(s *scanner, idx int, in cpu.Instruction) error {
	l := &asm.lines[idx]

	switch in.ICode() {
	case cpu.IHALT, cpu.INOP, cpu.IRET:
		// Opcode byte only.
		return nil
	case cpu.IRRMOVL:
		return assembleRRMovl(s, l)
	case cpu.IIRMOVL:
		return asm.assembleIRMovl(s, idx)
	case cpu.IRMMOVL:
		return assembleRMMovl(s, l)
	case cpu.IMRMOVL:
		return assembleMRMovl(s, l)
	case cpu.IALU:
		return assembleALU(s, l)
	case cpu.IJXX, cpu.ICALL:
		return asm.assembleFlow(s, idx)
	case cpu.IPUSHL, cpu.IPOPL:
		return assembleStack(s, l)
	case cpu.IDIRECTIVE:
		return asm.assembleDirective(s, idx, in)
	}
	return s.errorf(ErrLexical, "unknown instruction class %x", in.ICode())
}

// Lines returns a copy of the line records in source order.
func (asm *Assembler) Lines() []Line {
	out := make([]Line, len(asm.lines))
	copy(out, asm.lines)
	return out
}

// Symbols returns the symbol table entries in definition order.
func (asm *Assembler) Symbols() []Symbol {
	return asm.symbols.All()
}

// SymbolTable exposes the session's symbol table.
func (asm *Assembler) SymbolTable() *SymbolTable {
	return asm.symbols
}

// Relocations returns a copy of the pending relocations in creation order.
func (asm *Assembler) Relocations() []Relocation {
	out := make([]Relocation, len(asm.relocs))
	copy(out, asm.relocs)
	return out
}

// Assemble takes Y86 assembly source and returns the binary image.
func Assemble(src string) ([]byte, error) {
	asm := New()
	defer asm.Reset()

	if err := asm.Assemble(strings.NewReader(src)); err != nil {
		return nil, err
	}
	if err := asm.Relocate(); err != nil {
		return nil, err
	}
	return asm.Image()
}

package assembler

import "github.com/Urethramancer/y86/cpu"

// LineType classifies a source line.
type LineType int

const (
	// LineComment is a blank or comment-only line.
	LineComment LineType = iota
	// LineInstruction carries a label, an instruction or a directive.
	LineInstruction
	// LineFailed failed to encode.
	LineFailed
)

func (t LineType) String() string {
	switch t {
	case LineComment:
		return "comment"
	case LineInstruction:
		return "instruction"
	case LineFailed:
		return "error"
	}
	return "unknown"
}

// Line is one source line and its encoding.
type Line struct {
	// Number is 1-based.
	Number int
	Source string
	Type   LineType
	// Addr is the virtual address of the first encoded byte.
	Addr uint32
	// Len is the number of valid bytes in Code.
	Len  int
	Code [cpu.MaxInstructionLen]byte
}

// Bytes returns the encoded bytes.
func (l *Line) Bytes() []byte {
	return l.Code[:l.Len]
}

package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInstruction is returned for bytes that do not form a valid encoding.
	ErrInvalidInstruction = errors.New("invalid instruction")
	// ErrTruncated is returned when an encoding runs past the available bytes.
	ErrTruncated = errors.New("truncated instruction")
)

// DecodedInstruction holds the parsed details of one Y86 instruction.
type DecodedInstruction struct {
	Instruction
	RA   byte
	RB   byte
	ValC uint32
}

// Decode reads one instruction from the start of code.
//
// Only encodings the assembler can produce are accepted: register nibbles
// must name a register where one is required and hold the sentinel where
// none is, so that a decoded instruction always re-encodes to the same bytes.
func Decode(code []byte) (DecodedInstruction, error) {
	var d DecodedInstruction
	if len(code) == 0 {
		return d, ErrTruncated
	}

	in, ok := InstructionByCode(code[0])
	if !ok {
		return d, fmt.Errorf("%w: opcode %02x", ErrInvalidInstruction, code[0])
	}
	if len(code) < in.Len {
		return d, fmt.Errorf("%w: %s needs %d bytes, have %d", ErrTruncated, in.Name, in.Len, len(code))
	}

	d.Instruction = in
	d.RA, d.RB = RNONE, RNONE

	switch in.ICode() {
	case IHALT, INOP, IRET:
		return d, nil

	case IRRMOVL, IALU:
		d.RA, d.RB = High(code[1]), Low(code[1])
		if !ValidRegister(d.RA) || !ValidRegister(d.RB) {
			return d, fmt.Errorf("%w: bad registers %02x for %s", ErrInvalidInstruction, code[1], in.Name)
		}

	case IIRMOVL:
		d.RA, d.RB = High(code[1]), Low(code[1])
		if d.RA != RNONE || !ValidRegister(d.RB) {
			return d, fmt.Errorf("%w: bad registers %02x for %s", ErrInvalidInstruction, code[1], in.Name)
		}
		d.ValC = LE(code[2:], 4)

	case IRMMOVL, IMRMOVL:
		d.RA, d.RB = High(code[1]), Low(code[1])
		if !ValidRegister(d.RA) || (d.RB != RNONE && !ValidRegister(d.RB)) {
			return d, fmt.Errorf("%w: bad registers %02x for %s", ErrInvalidInstruction, code[1], in.Name)
		}
		d.ValC = LE(code[2:], 4)

	case IJXX, ICALL:
		d.ValC = LE(code[1:], 4)

	case IPUSHL, IPOPL:
		d.RA, d.RB = High(code[1]), Low(code[1])
		if !ValidRegister(d.RA) || d.RB != RNONE {
			return d, fmt.Errorf("%w: bad registers %02x for %s", ErrInvalidInstruction, code[1], in.Name)
		}
	}

	return d, nil
}

package assembler

import (
	"github.com/Urethramancer/y86/cpu"
)

// assembleDirective handles .byte, .word, .long, .pos and .align.
func (asm *Assembler) assembleDirective(s *scanner, idx int, in cpu.Instruction) error {
	switch in.IFun() {
	case cpu.DDATA:
		return asm.assembleData(s, idx, in.Len)
	case cpu.DPOS:
		return asm.assemblePos(s, idx)
	case cpu.DALIGN:
		return asm.assembleAlign(s, idx)
	}
	return s.errorf(ErrLexical, "unknown directive '%s'", in.Name)
}

// assembleData emits width little-endian bytes of a literal, or registers a
// relocation of the same width for a symbol. Data starts at offset 0,
// replacing the opcode byte.
func (asm *Assembler) assembleData(s *scanner, idx, width int) error {
	v, err := s.data(width)
	if err != nil {
		return err
	}

	l := &asm.lines[idx]
	if v.isSymbol() {
		cpu.PutLE(l.Code[:], 0, width)
		asm.addRelocation(v.symbol, idx, SlotData, 0, width)
		return nil
	}
	cpu.PutLE(l.Code[:], uint32(v.value), width)
	return nil
}

// assemblePos moves the address counter to an absolute position.
func (asm *Assembler) assemblePos(s *scanner, idx int) error {
	v, err := s.numeral()
	if err != nil {
		return err
	}
	if v < 0 || v > maxAddress {
		return s.errorf(ErrSyntax, "position %d out of range", v)
	}

	asm.vmaddr = v
	asm.lines[idx].Addr = uint32(v)
	return nil
}

// assembleAlign rounds the address counter up to a multiple of the divisor.
// Any positive divisor is accepted, not only powers of two.
func (asm *Assembler) assembleAlign(s *scanner, idx int) error {
	n, err := s.numeral()
	if err != nil {
		return err
	}
	if n <= 0 || n > maxAddress {
		return s.errorf(ErrSyntax, "alignment %d out of range", n)
	}

	addr := asm.vmaddr
	if rem := addr % n; rem != 0 {
		addr += n - rem
	}
	if addr > maxAddress {
		return s.errorf(ErrSyntax, "alignment to %d runs past the end of the address space", n)
	}

	asm.vmaddr = addr
	asm.lines[idx].Addr = uint32(addr)
	return nil
}

package assembler

import "github.com/Urethramancer/y86/cpu"

// assembleRRMovl handles rrmovl and cmovXX.
// Syntax: rrmovl rA, rB
// Encoding: 2f | rA rB
func assembleRRMovl(s *scanner, l *Line) error {
	ra, rb, err := scanRegisterPair(s)
	if err != nil {
		return err
	}
	setRegisters(l, ra, rb)
	return nil
}

// assembleIRMovl handles irmovl. A symbolic immediate leaves the constant
// zero and registers a relocation for it.
// Syntax: irmovl $V, rB | irmovl Symbol, rB
// Encoding: 30 | F rB | V V V V
func (asm *Assembler) assembleIRMovl(s *scanner, idx int) error {
	imm, err := s.immediate()
	if err != nil {
		return err
	}
	if err := s.delim(','); err != nil {
		return err
	}
	rb, err := s.register()
	if err != nil {
		return err
	}

	l := &asm.lines[idx]
	setRegisters(l, cpu.RNONE, rb)
	if imm.isSymbol() {
		setWord(l, offValC, 0)
		asm.addRelocation(imm.symbol, idx, SlotValue, offValC, 4)
		return nil
	}
	setWord(l, offValC, imm.value)
	return nil
}

// assembleRMMovl handles rmmovl.
// Syntax: rmmovl rA, D(rB)
// Encoding: 40 | rA rB | D D D D
func assembleRMMovl(s *scanner, l *Line) error {
	ra, err := s.register()
	if err != nil {
		return err
	}
	if err := s.delim(','); err != nil {
		return err
	}
	disp, rb, err := s.memory()
	if err != nil {
		return err
	}
	setRegisters(l, ra, rb)
	setWord(l, offValC, disp)
	return nil
}

// assembleMRMovl handles mrmovl.
// Syntax: mrmovl D(rB), rA
// Encoding: 50 | rA rB | D D D D
func assembleMRMovl(s *scanner, l *Line) error {
	disp, rb, err := s.memory()
	if err != nil {
		return err
	}
	if err := s.delim(','); err != nil {
		return err
	}
	ra, err := s.register()
	if err != nil {
		return err
	}
	setRegisters(l, ra, rb)
	setWord(l, offValC, disp)
	return nil
}

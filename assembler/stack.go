package assembler

import "github.com/Urethramancer/y86/cpu"

// assembleStack handles pushl and popl.
// Syntax: pushl rA | popl rA
// Encoding: a0 | rA F, b0 | rA F
func assembleStack(s *scanner, l *Line) error {
	ra, err := s.register()
	if err != nil {
		return err
	}
	setRegisters(l, ra, cpu.RNONE)
	return nil
}

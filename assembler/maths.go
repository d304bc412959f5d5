package assembler

// assembleALU handles addl, subl, andl and xorl.
// Syntax: OPl rA, rB
// Encoding: 6f | rA rB
func assembleALU(s *scanner, l *Line) error {
	ra, rb, err := scanRegisterPair(s)
	if err != nil {
		return err
	}
	setRegisters(l, ra, rb)
	return nil
}

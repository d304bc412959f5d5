package assembler

// assembleFlow handles jXX and call. The destination is always a symbol and
// is filled in by Relocate.
// Syntax: jXX Dest | call Dest
// Encoding: 7f | D D D D, 80 | D D D D
func (asm *Assembler) assembleFlow(s *scanner, idx int) error {
	name, err := s.target()
	if err != nil {
		return err
	}

	setWord(&asm.lines[idx], offDest, 0)
	asm.addRelocation(name, idx, SlotAddress, offDest, 4)
	return nil
}

package assembler

import "github.com/Urethramancer/y86/cpu"

// Field offsets inside an encoded record.
const (
	offRegisters = 1 // packed rA:rB byte
	offValC      = 2 // 4-byte constant after the register byte
	offDest      = 1 // 4-byte target directly after the opcode
)

// setRegisters writes the packed register byte.
func setRegisters(l *Line, ra, rb byte) {
	l.Code[offRegisters] = cpu.Pack(ra, rb)
}

// setWord writes a 4-byte little-endian field at off.
func setWord(l *Line, off int, v int64) {
	cpu.PutLE(l.Code[off:], uint32(v), 4)
}

// scanRegisterPair reads "rA, rB".
func scanRegisterPair(s *scanner) (byte, byte, error) {
	ra, err := s.register()
	if err != nil {
		return 0, 0, err
	}
	if err := s.delim(','); err != nil {
		return 0, 0, err
	}
	rb, err := s.register()
	if err != nil {
		return 0, 0, err
	}
	return ra, rb, nil
}

package cpu

// Register ids as they appear in the operand nibbles.
const (
	REAX byte = 0
	RECX byte = 1
	REDX byte = 2
	REBX byte = 3
	RESP byte = 4
	REBP byte = 5
	RESI byte = 6
	REDI byte = 7
	// RNONE fills an operand nibble that names no register.
	RNONE byte = 0xF
)

// RegisterNameLen is the fixed width of a register token, sigil included.
const RegisterNameLen = 4

// RegisterNames is indexed by register id.
var RegisterNames = [8]string{
	"%eax",
	"%ecx",
	"%edx",
	"%ebx",
	"%esp",
	"%ebp",
	"%esi",
	"%edi",
}

// LookupRegister matches the first four characters of text against the
// register names. The comparison is case-sensitive.
func LookupRegister(text string) (byte, bool) {
	if len(text) < RegisterNameLen {
		return RNONE, false
	}
	tok := text[:RegisterNameLen]
	for id, name := range RegisterNames {
		if name == tok {
			return byte(id), true
		}
	}
	return RNONE, false
}

// RegisterName returns the source form of a register id, or "" for the
// sentinel and invalid ids.
func RegisterName(id byte) string {
	if int(id) < len(RegisterNames) {
		return RegisterNames[id]
	}
	return ""
}

// ValidRegister reports whether id names one of the eight registers.
func ValidRegister(id byte) bool {
	return int(id) < len(RegisterNames)
}

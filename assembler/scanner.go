package assembler

import (
	"fmt"
	"strconv"

	"github.com/Urethramancer/y86/cpu"
)

// operand is the result of scanning an immediate or data token. Exactly one
// of value and symbol is meaningful: a non-empty symbol marks a deferred
// reference.
type operand struct {
	value  int64
	symbol string
}

func (o operand) isSymbol() bool { return o.symbol != "" }

// scanner walks one source line. Every token parser skips leading blanks and
// either consumes exactly one token or returns an error, after which the
// scanner must not be used again.
type scanner struct {
	text string
	pos  int
	line int
}

func newScanner(text string, line int) *scanner {
	return &scanner{text: text, line: line}
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' }

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// isNumeralStart matches the first character of a numeral, sign included.
func isNumeralStart(c byte) bool { return isDigit(c) || c == '-' || c == '+' }

func isSymbolStart(c byte) bool { return isLetter(c) || c == '_' || c == '.' }

func isSymbolChar(c byte) bool { return isSymbolStart(c) || isDigit(c) }

func validSymbol(name string) bool {
	if name == "" || !isSymbolStart(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isSymbolChar(name[i]) {
			return false
		}
	}
	return true
}

// isSymbolEnd matches the characters that terminate a symbol reference.
func isSymbolEnd(c byte) bool { return isBlank(c) || c == ',' || c == '#' }

func (s *scanner) skipBlank() {
	for s.pos < len(s.text) && isBlank(s.text[s.pos]) {
		s.pos++
	}
}

func (s *scanner) atEnd() bool { return s.pos >= len(s.text) }

func (s *scanner) atComment() bool { return !s.atEnd() && s.text[s.pos] == '#' }

func (s *scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.text[s.pos]
}

func (s *scanner) rest() string { return s.text[s.pos:] }

// word returns the run of non-blank characters at the cursor, for messages.
func (s *scanner) word() string {
	end := s.pos
	for end < len(s.text) && !isBlank(s.text[end]) {
		end++
	}
	return s.text[s.pos:end]
}

func (s *scanner) errorf(kind error, format string, args ...any) error {
	return &LineError{Line: s.line, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// label consumes "name:" if the line starts with one. The name is made of
// letters, digits, '_' and '.', and may not start with a digit.
func (s *scanner) label() (string, bool, error) {
	s.skipBlank()
	end := s.pos
	for end < len(s.text) && !isSymbolEnd(s.text[end]) && s.text[end] != ':' {
		end++
	}
	if end >= len(s.text) || s.text[end] != ':' {
		return "", false, nil
	}

	name := s.text[s.pos:end]
	if !validSymbol(name) {
		return "", false, s.errorf(ErrLexical, "invalid label '%s'", name)
	}
	s.pos = end + 1
	return name, true, nil
}

// mnemonic consumes the longest catalog mnemonic at the cursor.
func (s *scanner) mnemonic() (cpu.Instruction, error) {
	s.skipBlank()
	if s.atEnd() {
		return cpu.Instruction{}, s.errorf(ErrSyntax, "missing instruction")
	}

	in, ok := cpu.LookupInstruction(s.rest())
	if !ok {
		return in, s.errorf(ErrLexical, "invalid instruction '%s'", s.word())
	}
	s.pos += len(in.Name)
	return in, nil
}

// register consumes a four character register token.
func (s *scanner) register() (byte, error) {
	s.skipBlank()
	if s.atEnd() {
		return cpu.RNONE, s.errorf(ErrSyntax, "missing register")
	}

	id, ok := cpu.LookupRegister(s.rest())
	if !ok {
		return cpu.RNONE, s.errorf(ErrLexical, "invalid register '%s'", s.word())
	}
	s.pos += cpu.RegisterNameLen
	return id, nil
}

// delim consumes the required character c.
func (s *scanner) delim(c byte) error {
	s.skipBlank()
	if s.atEnd() {
		return s.errorf(ErrSyntax, "expected '%c' at end of line", c)
	}
	if s.text[s.pos] != c {
		return s.errorf(ErrSyntax, "expected '%c' before '%s'", c, s.rest())
	}
	s.pos++
	return nil
}

// numeral consumes a signed integer in decimal, 0x hexadecimal, 0 octal or
// 0b binary notation.
func (s *scanner) numeral() (int64, error) {
	s.skipBlank()
	if s.atEnd() {
		return 0, s.errorf(ErrSyntax, "missing number")
	}
	if !isNumeralStart(s.peek()) {
		return 0, s.errorf(ErrLexical, "invalid number '%s'", s.word())
	}

	start := s.pos
	end := s.pos
	if s.text[end] == '-' || s.text[end] == '+' {
		end++
	}
	for end < len(s.text) && (isDigit(s.text[end]) || isLetter(s.text[end])) {
		end++
	}

	tok := s.text[start:end]
	v, err := strconv.ParseInt(tok, 0, 64)
	if err != nil {
		return 0, s.errorf(ErrLexical, "invalid number '%s'", tok)
	}
	s.pos = end
	return v, nil
}

// symbol consumes a symbol reference.
func (s *scanner) symbol() (string, error) {
	s.skipBlank()
	if s.atEnd() {
		return "", s.errorf(ErrSyntax, "missing symbol")
	}
	if !isSymbolStart(s.peek()) {
		return "", s.errorf(ErrLexical, "invalid symbol '%s'", s.word())
	}

	end := s.pos
	for end < len(s.text) && !isSymbolEnd(s.text[end]) {
		end++
	}
	name := s.text[s.pos:end]
	if !validSymbol(name) {
		return "", s.errorf(ErrLexical, "invalid symbol '%s'", name)
	}
	s.pos = end
	return name, nil
}

// immediate consumes "$numeral" or a bare symbol. The numeral must follow
// the '$' directly.
func (s *scanner) immediate() (operand, error) {
	s.skipBlank()
	if s.atEnd() {
		return operand{}, s.errorf(ErrSyntax, "missing immediate")
	}

	switch c := s.peek(); {
	case c == '$':
		s.pos++
		if s.atEnd() || isBlank(s.peek()) {
			return operand{}, s.errorf(ErrLexical, "invalid immediate '$%s'", s.rest())
		}
		v, err := s.numeral()
		if err != nil {
			return operand{}, err
		}
		if !cpu.FitsWidth(v, 4) {
			return operand{}, s.errorf(ErrLexical, "immediate %d does not fit in 32 bits", v)
		}
		return operand{value: v}, nil
	case isSymbolStart(c):
		name, err := s.symbol()
		return operand{symbol: name}, err
	}
	return operand{}, s.errorf(ErrLexical, "invalid immediate '%s'", s.word())
}

// data consumes the value of a .byte, .word or .long directive: a numeral
// that fits in width bytes, or a symbol.
func (s *scanner) data(width int) (operand, error) {
	s.skipBlank()
	if s.atEnd() {
		return operand{}, s.errorf(ErrSyntax, "missing value")
	}

	switch c := s.peek(); {
	case isNumeralStart(c):
		v, err := s.numeral()
		if err != nil {
			return operand{}, err
		}
		if !cpu.FitsWidth(v, width) {
			return operand{}, s.errorf(ErrLexical, "value %d does not fit in %d bytes", v, width)
		}
		return operand{value: v}, nil
	case isSymbolStart(c):
		name, err := s.symbol()
		return operand{symbol: name}, err
	}
	return operand{}, s.errorf(ErrLexical, "invalid value '%s'", s.word())
}

// memory consumes "D(reg)", "(reg)" or a bare displacement "D". A missing
// displacement is zero and a missing base register is the sentinel.
func (s *scanner) memory() (int64, byte, error) {
	s.skipBlank()
	if s.atEnd() {
		return 0, cpu.RNONE, s.errorf(ErrSyntax, "missing memory operand")
	}

	var disp int64
	hasDisp := false
	if isNumeralStart(s.peek()) {
		v, err := s.numeral()
		if err != nil {
			return 0, cpu.RNONE, err
		}
		if !cpu.FitsWidth(v, 4) {
			return 0, cpu.RNONE, s.errorf(ErrLexical, "displacement %d does not fit in 32 bits", v)
		}
		disp, hasDisp = v, true
	}

	s.skipBlank()
	if s.peek() != '(' {
		if !hasDisp {
			return 0, cpu.RNONE, s.errorf(ErrSyntax, "invalid memory operand '%s'", s.word())
		}
		return disp, cpu.RNONE, nil
	}

	s.pos++
	base, err := s.register()
	if err != nil {
		return 0, cpu.RNONE, err
	}
	if err := s.delim(')'); err != nil {
		return 0, cpu.RNONE, err
	}
	return disp, base, nil
}

// target consumes the destination of a jump or call, which must be a symbol.
func (s *scanner) target() (string, error) {
	s.skipBlank()
	if s.atEnd() {
		return "", s.errorf(ErrSyntax, "missing target")
	}
	if c := s.peek(); isNumeralStart(c) || c == '$' {
		return "", s.errorf(ErrInvalidTarget, "invalid destination '%s'", s.word())
	}
	return s.symbol()
}

// end checks that nothing but blanks or a comment is left on the line.
func (s *scanner) end() error {
	s.skipBlank()
	if s.atEnd() || s.atComment() {
		return nil
	}
	return s.errorf(ErrSyntax, "unexpected '%s'", s.rest())
}

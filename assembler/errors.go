package assembler

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the package matches exactly one of
// these with errors.Is.
var (
	// ErrLexical is an unmatched register, mnemonic, numeral or symbol token.
	ErrLexical = errors.New("lexical error")
	// ErrSyntax is an operand sequence that does not fit the instruction's grammar.
	ErrSyntax = errors.New("syntax error")
	// ErrDuplicateSymbol is a label defined twice.
	ErrDuplicateSymbol = errors.New("duplicate symbol")
	// ErrInvalidTarget is a numeral where a jump or call needs a symbol.
	ErrInvalidTarget = errors.New("invalid target")
	// ErrUnresolvedSymbol is a reference to a symbol that was never defined.
	ErrUnresolvedSymbol = errors.New("unresolved symbol")
	// ErrIO is a read or write failure on the underlying streams.
	ErrIO = errors.New("i/o error")
	// ErrOverlap is a record placed below bytes that were already written.
	ErrOverlap = errors.New("overlapping output")
)

// LineError is a failure tied to one source line.
type LineError struct {
	Line int
	Kind error
	Msg  string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *LineError) Unwrap() error {
	return e.Kind
}

// SymbolError is an unresolved reference found while relocating. Line is the
// first line that referenced the symbol.
type SymbolError struct {
	Name string
	Line int
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("unknown symbol '%s'", e.Name)
}

func (e *SymbolError) Unwrap() error {
	return ErrUnresolvedSymbol
}

// ioError tags err with ErrIO.
func ioError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
}

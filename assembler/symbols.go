package assembler

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Symbol is a label bound to an address.
type Symbol struct {
	Name string `yaml:"name"`
	Addr uint32 `yaml:"addr"`
	// Line is where the label was defined.
	Line int `yaml:"line"`
}

// SymbolTable maps names to addresses and remembers definition order.
type SymbolTable struct {
	index map[string]int
	list  []Symbol
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{index: make(map[string]int)}
}

// add binds name to addr. It returns false, leaving the existing binding
// alone, if name is already defined.
func (t *SymbolTable) add(name string, addr uint32, line int) bool {
	if _, ok := t.index[name]; ok {
		return false
	}
	t.index[name] = len(t.list)
	t.list = append(t.list, Symbol{Name: name, Addr: addr, Line: line})
	return true
}

// Lookup returns the symbol called name.
func (t *SymbolTable) Lookup(name string) (Symbol, bool) {
	i, ok := t.index[name]
	if !ok {
		return Symbol{}, false
	}
	return t.list[i], true
}

// All returns a copy of the symbols in definition order.
func (t *SymbolTable) All() []Symbol {
	out := make([]Symbol, len(t.list))
	copy(out, t.list)
	return out
}

// Len returns the number of defined symbols.
func (t *SymbolTable) Len() int {
	return len(t.list)
}

// symbolFile is the on-disk layout written by WriteSymbols.
type symbolFile struct {
	Source  string   `yaml:"source,omitempty"`
	Symbols []Symbol `yaml:"symbols"`
}

// WriteSymbols writes the table as YAML. source names the assembly file the
// symbols came from and may be empty.
func (t *SymbolTable) WriteSymbols(w io.Writer, source string) error {
	f := symbolFile{Source: source, Symbols: t.All()}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return ioError("write symbols", err)
	}
	if err := enc.Close(); err != nil {
		return ioError("write symbols", err)
	}
	return nil
}

// ReadSymbols loads a file written by WriteSymbols.
func ReadSymbols(r io.Reader) ([]Symbol, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ioError("read symbols", err)
	}

	var f symbolFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse symbols: %w", err)
	}
	return f.Symbols, nil
}

package assembler

import (
	"fmt"

	"github.com/Urethramancer/y86/cpu"
)

// SlotKind says which field of a record a relocation patches.
type SlotKind int

const (
	// SlotValue is the immediate of irmovl.
	SlotValue SlotKind = iota
	// SlotAddress is the destination of a jump or call.
	SlotAddress
	// SlotData is the value of a .byte, .word or .long directive.
	SlotData
)

func (k SlotKind) String() string {
	switch k {
	case SlotValue:
		return "value"
	case SlotAddress:
		return "address"
	case SlotData:
		return "data"
	}
	return "unknown"
}

// Relocation is a symbol reference waiting for its address.
type Relocation struct {
	Symbol string
	// Index is the position of the owning record in the line sequence.
	Index int
	// Line is the source line number of the reference.
	Line   int
	Kind   SlotKind
	Offset int
	Width  int
}

func (asm *Assembler) addRelocation(name string, idx int, kind SlotKind, off, width int) {
	asm.relocs = append(asm.relocs, Relocation{
		Symbol: name,
		Index:  idx,
		Line:   asm.lines[idx].Number,
		Kind:   kind,
		Offset: off,
		Width:  width,
	})
}

// Relocate patches every pending reference with its symbol's address, in the
// order the references were made. It stops at the first undefined symbol.
func (asm *Assembler) Relocate() error {
	for _, r := range asm.relocs {
		sym, ok := asm.symbols.Lookup(r.Symbol)
		if !ok {
			return &SymbolError{Name: r.Symbol, Line: r.Line}
		}

		l := &asm.lines[r.Index]
		cpu.PutLE(l.Code[r.Offset:], sym.Addr, r.Width)
		asm.log.Debug("relocated",
			"symbol", r.Symbol,
			"line", r.Line,
			"slot", r.Kind.String(),
			"addr", fmt.Sprintf("0x%x", sym.Addr),
		)
	}
	asm.relocated = true
	return nil
}

package disassembler

import (
	"fmt"

	"github.com/Urethramancer/y86/cpu"
)

// LabelType defines the context of a label.
type LabelType int

const (
	// JumpTarget is for a jmp or conditional jump.
	JumpTarget LabelType = iota
	// SubroutineEntry is for a call target.
	SubroutineEntry
)

// isTerminal checks if an instruction unconditionally stops linear execution.
func isTerminal(d cpu.DecodedInstruction) bool {
	switch d.ICode() {
	case cpu.IHALT, cpu.IRET:
		return true
	case cpu.IJXX:
		return d.IFun() == cpu.CYES
	}
	return false
}

// branchTarget returns the destination of a jump or call.
func branchTarget(d cpu.DecodedInstruction) (uint32, bool) {
	switch d.ICode() {
	case cpu.IJXX, cpu.ICALL:
		return d.ValC, true
	}
	return 0, false
}

// labelFor names addr, preferring a known symbol.
func labelFor(addr uint32, kind LabelType, labels map[uint32]string) string {
	if name := labels[addr]; name != "" {
		return name
	}
	return labelName(addr, kind)
}

// labelName generates a name for an address without a symbol.
func labelName(addr uint32, kind LabelType) string {
	if kind == SubroutineEntry {
		return fmt.Sprintf("sub_%04x", addr)
	}
	return fmt.Sprintf("loc_%04x", addr)
}

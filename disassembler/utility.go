package disassembler

import (
	"fmt"

	"github.com/Urethramancer/y86/cpu"
)

// formatOperands renders the operands of a non-branch instruction in the
// form the assembler accepts.
func formatOperands(d cpu.DecodedInstruction) string {
	switch d.ICode() {
	case cpu.IRRMOVL, cpu.IALU:
		return fmt.Sprintf("%s,%s", cpu.RegisterName(d.RA), cpu.RegisterName(d.RB))
	case cpu.IIRMOVL:
		return fmt.Sprintf("$0x%x,%s", d.ValC, cpu.RegisterName(d.RB))
	case cpu.IRMMOVL:
		return fmt.Sprintf("%s,%s", cpu.RegisterName(d.RA), formatMemory(d.ValC, d.RB))
	case cpu.IMRMOVL:
		return fmt.Sprintf("%s,%s", formatMemory(d.ValC, d.RB), cpu.RegisterName(d.RA))
	case cpu.IPUSHL, cpu.IPOPL:
		return cpu.RegisterName(d.RA)
	}
	return ""
}

// formatMemory renders D(rB), or a bare D for absolute addressing.
func formatMemory(disp uint32, base byte) string {
	if base == cpu.RNONE {
		return fmt.Sprintf("0x%x", disp)
	}
	if disp == 0 {
		return fmt.Sprintf("(%s)", cpu.RegisterName(base))
	}
	return fmt.Sprintf("0x%x(%s)", disp, cpu.RegisterName(base))
}

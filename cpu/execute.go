package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrBadAddress is returned when an instruction touches memory outside the CPU's memory.
	ErrBadAddress = errors.New("invalid address")
	// ErrStepLimit is returned by Run when the program did not stop in time.
	ErrStepLimit = errors.New("step limit reached")
)

// Execute fetches, decodes, and executes a single instruction.
func (c *CPU) Execute() error {
	if c.Stat != StatusAOK {
		return nil
	}

	// Fetch
	if uint64(c.PC) >= uint64(len(c.Mem)) {
		c.Stat = StatusADR
		return fmt.Errorf("fetch at 0x%x: %w", c.PC, ErrBadAddress)
	}

	// Decode
	inst, err := Decode(c.Mem[c.PC:])
	if err != nil {
		c.Stat = StatusINS
		return fmt.Errorf("decode at 0x%x failed: %w", c.PC, err)
	}

	next := c.PC + uint32(inst.Len)

	// Execute
	switch inst.ICode() {
	case IHALT:
		c.Stat = StatusHLT
	case INOP:
	case IRRMOVL:
		c.opCMOV(&inst)
	case IIRMOVL:
		c.R[inst.RB] = inst.ValC
	case IRMMOVL:
		err = c.opRMMOVL(&inst)
	case IMRMOVL:
		err = c.opMRMOVL(&inst)
	case IALU:
		c.opALU(&inst)
	case IJXX:
		if c.cond(inst.IFun()) {
			next = inst.ValC
		}
	case ICALL:
		next, err = c.opCALL(&inst, next)
	case IRET:
		next, err = c.opRET()
	case IPUSHL:
		err = c.opPUSHL(&inst)
	case IPOPL:
		err = c.opPOPL(&inst)
	default:
		c.Stat = StatusINS
		return fmt.Errorf("no handler for opcode %02x", inst.Code)
	}

	if err != nil {
		c.Stat = StatusADR
		return fmt.Errorf("execution failed for %s at 0x%x: %w", inst.Name, c.PC, err)
	}

	c.PC = next
	c.Steps++
	return nil
}

// Run executes instructions until the processor leaves the AOK state or
// maxSteps instructions have run. A clean halt returns nil.
func (c *CPU) Run(maxSteps int) error {
	for i := 0; i < maxSteps; i++ {
		if c.Stat != StatusAOK {
			return nil
		}
		if err := c.Execute(); err != nil {
			return err
		}
	}
	if c.Stat == StatusAOK {
		return fmt.Errorf("%w after %d instructions", ErrStepLimit, maxSteps)
	}
	return nil
}

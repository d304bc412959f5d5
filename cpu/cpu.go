package cpu

import (
	"fmt"
	"io"
)

// Status is the processor state code.
type Status int

// Status codes.
const (
	// StatusAOK is normal operation.
	StatusAOK Status = 1
	// StatusHLT is set by the halt instruction.
	StatusHLT Status = 2
	// StatusADR means an invalid memory address was touched.
	StatusADR Status = 3
	// StatusINS means an invalid instruction was fetched.
	StatusINS Status = 4
)

func (s Status) String() string {
	switch s {
	case StatusAOK:
		return "AOK"
	case StatusHLT:
		return "HLT"
	case StatusADR:
		return "ADR"
	case StatusINS:
		return "INS"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// CPU memory and registers.
type CPU struct {
	// R holds the eight general-purpose registers, indexed by register id.
	R [8]uint32
	// PC is the program counter.
	PC uint32

	// Condition codes.
	ZF bool
	SF bool
	OF bool

	// Stat is the processor status.
	Stat Status

	// Mem is the flat little-endian memory.
	Mem []byte

	// Steps counts executed instructions.
	Steps int
}

// New creates a new CPU instance with given memory size.
func New(memsize int) *CPU {
	return &CPU{
		Mem:  make([]byte, memsize),
		Stat: StatusAOK,
		ZF:   true,
	}
}

// LoadCode to specified address and point the PC at it.
func (c *CPU) LoadCode(addr uint32, code []byte) error {
	if uint64(addr)+uint64(len(code)) > uint64(len(c.Mem)) {
		return fmt.Errorf("%d bytes at 0x%x do not fit in %d bytes of memory", len(code), addr, len(c.Mem))
	}

	copy(c.Mem[addr:], code)
	c.PC = addr
	return nil
}

// DumpRegisters writes a readable view of the processor state.
func (c *CPU) DumpRegisters(w io.Writer) {
	for i, name := range RegisterNames {
		fmt.Fprintf(w, "%s: 0x%08x (%d)\n", name, c.R[i], int32(c.R[i]))
	}
	fmt.Fprintf(w, "PC:   0x%08x\n", c.PC)
	fmt.Fprintf(w, "CC:   Z=%d S=%d O=%d\n", b2i(c.ZF), b2i(c.SF), b2i(c.OF))
	fmt.Fprintf(w, "Stat: %s\n", c.Stat)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

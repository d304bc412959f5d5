package cpu

import "fmt"

// ReadU32 reads a little-endian 32-bit value from memory at the given address.
func (c *CPU) ReadU32(addr uint32) (uint32, error) {
	if uint64(addr)+4 > uint64(len(c.Mem)) {
		return 0, fmt.Errorf("read at 0x%x: %w", addr, ErrBadAddress)
	}
	return LE(c.Mem[addr:], 4), nil
}

// WriteU32 writes a 32-bit value to memory at the given address in little-endian format.
func (c *CPU) WriteU32(addr uint32, val uint32) error {
	if uint64(addr)+4 > uint64(len(c.Mem)) {
		return fmt.Errorf("write at 0x%x: %w", addr, ErrBadAddress)
	}
	PutLE(c.Mem[addr:], val, 4)
	return nil
}

// effectiveAddress adds a displacement to a base register. The sentinel base
// means absolute addressing.
func (c *CPU) effectiveAddress(base byte, disp uint32) uint32 {
	if base == RNONE {
		return disp
	}
	return c.R[base] + disp
}

// setFlags updates ZF and SF from a result and stores the overflow flag.
func (c *CPU) setFlags(result uint32, overflow bool) {
	c.ZF = result == 0
	c.SF = int32(result) < 0
	c.OF = overflow
}

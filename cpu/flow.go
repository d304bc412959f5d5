package cpu

// cond evaluates a jXX/cmovXX condition against the current flags.
func (c *CPU) cond(fn byte) bool {
	lt := c.SF != c.OF
	switch fn {
	case CYES:
		return true
	case CLE:
		return lt || c.ZF
	case CL:
		return lt
	case CE:
		return c.ZF
	case CNE:
		return !c.ZF
	case CGE:
		return !lt
	case CG:
		return !lt && !c.ZF
	}
	return false
}

// opCALL pushes the return address and jumps to Dest.
func (c *CPU) opCALL(inst *DecodedInstruction, ret uint32) (uint32, error) {
	if err := c.push(ret); err != nil {
		return 0, err
	}
	return inst.ValC, nil
}

// opRET pops the return address.
func (c *CPU) opRET() (uint32, error) {
	return c.pop()
}

// opPUSHL pushes rA. Pushing %esp stores its value before the decrement.
func (c *CPU) opPUSHL(inst *DecodedInstruction) error {
	return c.push(c.R[inst.RA])
}

// opPOPL pops into rA. Popping into %esp leaves the loaded value in %esp.
func (c *CPU) opPOPL(inst *DecodedInstruction) error {
	v, err := c.pop()
	if err != nil {
		return err
	}
	c.R[inst.RA] = v
	return nil
}

func (c *CPU) push(v uint32) error {
	sp := c.R[RESP] - 4
	if err := c.WriteU32(sp, v); err != nil {
		return err
	}
	c.R[RESP] = sp
	return nil
}

func (c *CPU) pop() (uint32, error) {
	sp := c.R[RESP]
	v, err := c.ReadU32(sp)
	if err != nil {
		return 0, err
	}
	c.R[RESP] = sp + 4
	return v, nil
}

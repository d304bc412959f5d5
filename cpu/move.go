package cpu

// opCMOV handles rrmovl and the conditional moves.
func (c *CPU) opCMOV(inst *DecodedInstruction) {
	if c.cond(inst.IFun()) {
		c.R[inst.RB] = c.R[inst.RA]
	}
}

// opRMMOVL stores rA at D(rB).
func (c *CPU) opRMMOVL(inst *DecodedInstruction) error {
	addr := c.effectiveAddress(inst.RB, inst.ValC)
	return c.WriteU32(addr, c.R[inst.RA])
}

// opMRMOVL loads D(rB) into rA.
func (c *CPU) opMRMOVL(inst *DecodedInstruction) error {
	addr := c.effectiveAddress(inst.RB, inst.ValC)
	v, err := c.ReadU32(addr)
	if err != nil {
		return err
	}
	c.R[inst.RA] = v
	return nil
}

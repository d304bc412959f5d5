package cpu

// opALU handles addl, subl, andl and xorl: rB = rB op rA.
func (c *CPU) opALU(inst *DecodedInstruction) {
	a := c.R[inst.RA]
	b := c.R[inst.RB]

	var result uint32
	overflow := false

	switch inst.IFun() {
	case ALUADD:
		result = b + a
		// Signs of both operands agree but the result's sign differs.
		overflow = (int32(a) < 0) == (int32(b) < 0) && (int32(result) < 0) != (int32(b) < 0)
	case ALUSUB:
		result = b - a
		overflow = (int32(a) < 0) != (int32(b) < 0) && (int32(result) < 0) != (int32(b) < 0)
	case ALUAND:
		result = b & a
	case ALUXOR:
		result = b ^ a
	}

	c.setFlags(result, overflow)
	c.R[inst.RB] = result
}

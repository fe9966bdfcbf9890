package vm

// executeJ executes an absolute jump. JAL additionally links R31
// before the PC/nPC swap.
func (c *CPU) executeJ(ins *JType) error {
	if ins.Opcode == opJAL {
		link := c.linkAddress()
		c.jumpAbsolute(ins.Target)
		c.SetReg(RRA, link)
		return nil
	}
	c.jumpAbsolute(ins.Target)
	return nil
}

// executeREGIMM executes the BGEZ/BGEZAL/BLTZ/BLTZAL family. The AL
// forms set the link register unconditionally before testing the
// branch predicate, matching the architectural behavior.
func (c *CPU) executeREGIMM(ins *REGIMMType) error {
	rs := int32(c.GetReg(ins.Rs))

	if ins.Sub == regimmBGEZAL || ins.Sub == regimmBLTZAL {
		c.SetReg(RRA, c.linkAddress())
	}

	var taken bool
	switch ins.Sub {
	case regimmBGEZ, regimmBGEZAL:
		taken = rs >= 0
	case regimmBLTZ, regimmBLTZAL:
		taken = rs < 0
	}

	if taken {
		c.branch(sext16(ins.Imm16))
	} else {
		c.advance()
	}
	return nil
}

// executeSpecial executes a simulator-internal diagnostic instruction.
func (c *CPU) executeSpecial(ins *SpecialType) error {
	switch ins.Kind {
	case SpecialRegDump:
		c.dumpRegisters()
	}
	c.advance()
	return nil
}

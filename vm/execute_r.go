package vm

import "math"

// executeR dispatches and executes an R-type (funct-coded) instruction.
// Every path here performs exactly one PC/nPC update: a plain advance
// for arithmetic/logical/move ops, or a jump update for JR/JALR.
func (c *CPU) executeR(ins *RType) error {
	switch ins.Funct {
	case functJR:
		c.jumpRegister(c.GetReg(ins.Rs))
		return nil
	case functJALR:
		link := c.linkAddress()
		c.jumpRegister(c.GetReg(ins.Rs))
		c.SetReg(ins.Rd, link)
		return nil
	}

	if err := c.executeRArith(ins); err != nil {
		return err
	}
	c.advance()
	return nil
}

func (c *CPU) executeRArith(ins *RType) error {
	rs, rt := c.GetReg(ins.Rs), c.GetReg(ins.Rt)

	switch ins.Funct {
	case functADD:
		sum, overflow := addOverflow32(int32(rs), int32(rt))
		if overflow {
			return Faultf(FaultArithmetic, "ADD overflow: 0x%X + 0x%X", rs, rt)
		}
		c.SetReg(ins.Rd, uint32(sum))
	case functADDU:
		c.SetReg(ins.Rd, rs+rt)
	case functSUB:
		diff, overflow := subOverflow32(int32(rs), int32(rt))
		if overflow {
			return Faultf(FaultArithmetic, "SUB overflow: 0x%X - 0x%X", rs, rt)
		}
		c.SetReg(ins.Rd, uint32(diff))
	case functSUBU:
		c.SetReg(ins.Rd, rs-rt)
	case functAND:
		c.SetReg(ins.Rd, rs&rt)
	case functOR:
		c.SetReg(ins.Rd, rs|rt)
	case functXOR:
		c.SetReg(ins.Rd, rs^rt)
	case functSLT:
		c.SetReg(ins.Rd, boolToWord(int32(rs) < int32(rt)))
	case functSLTU:
		c.SetReg(ins.Rd, boolToWord(rs < rt))
	case functSLL:
		c.SetReg(ins.Rd, rt<<ins.Shamt)
	case functSLLV:
		c.SetReg(ins.Rd, rt<<(rs&0x1F))
	case functSRL:
		c.SetReg(ins.Rd, rt>>ins.Shamt)
	case functSRLV:
		c.SetReg(ins.Rd, rt>>(rs&0x1F))
	case functSRA:
		c.SetReg(ins.Rd, uint32(int32(rt)>>ins.Shamt))
	case functSRAV:
		c.SetReg(ins.Rd, uint32(int32(rt)>>(rs&0x1F)))
	case functMULT:
		product := int64(int32(rs)) * int64(int32(rt))
		c.HI, c.LO = uint32(uint64(product)>>32), uint32(product)
	case functMULTU:
		product := uint64(rs) * uint64(rt)
		c.HI, c.LO = uint32(product>>32), uint32(product)
	case functDIV:
		if rt != 0 {
			c.LO = uint32(int32(rs) / int32(rt))
			c.HI = uint32(int32(rs) % int32(rt))
		}
	case functDIVU:
		if rt != 0 {
			c.LO = rs / rt
			c.HI = rs % rt
		}
	case functMFHI:
		c.SetReg(ins.Rd, c.HI)
	case functMFLO:
		c.SetReg(ins.Rd, c.LO)
	case functMTHI:
		c.HI = rs
	case functMTLO:
		c.LO = rs
	default:
		return Faultf(FaultGeneric, "unreachable: unhandled r-type funct 0x%02X", ins.Funct)
	}
	return nil
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// addOverflow32 adds two signed 32-bit values, reporting whether the
// true mathematical result falls outside the signed 32-bit range.
func addOverflow32(a, b int32) (int32, bool) {
	sum := int64(a) + int64(b)
	if sum < math.MinInt32 || sum > math.MaxInt32 {
		return 0, true
	}
	return int32(sum), false
}

// subOverflow32 is addOverflow32's counterpart for subtraction.
func subOverflow32(a, b int32) (int32, bool) {
	diff := int64(a) - int64(b)
	if diff < math.MinInt32 || diff > math.MaxInt32 {
		return 0, true
	}
	return int32(diff), false
}

package vm

import (
	"io"
	"os"
)

// CPU is the architectural state of the simulated MIPS-I processor:
// PC/nPC (modeling the branch delay slot without instruction lookahead),
// 31 general registers, HI/LO, and the Memory it exclusively owns.
type CPU struct {
	PC  uint32
	NPC uint32
	R   [32]uint32 // R[0] is always zero; indices 1..31 are live
	HI  uint32
	LO  uint32

	Mem *Memory

	Cycles    uint64
	MaxCycles uint64 // 0 disables the cap

	// Trace, when non-nil, receives one best-effort line per executed
	// instruction. A formatting failure never aborts execution.
	Trace io.Writer

	// Diag is the diagnostic stream for fault messages and REGDUMP.
	// Defaults to stderr.
	Diag io.Writer
}

// NewCPU creates a CPU in its initial architectural state, owning mem.
func NewCPU(mem *Memory) *CPU {
	return &CPU{
		PC:        InitialPC,
		NPC:       InitialPC + 4,
		Mem:       mem,
		MaxCycles: DefaultMaxCycles,
		Diag:      os.Stderr,
	}
}

// GetReg reads a general register; register 0 always reads as zero.
func (c *CPU) GetReg(id RegisterID) uint32 {
	if id == RZero {
		return 0
	}
	return c.R[id]
}

// SetReg writes a general register; writes to register 0 are silent
// no-ops.
func (c *CPU) SetReg(id RegisterID, value uint32) {
	if id == RZero {
		return
	}
	c.R[id] = value
}

// advance performs the canonical non-branch PC/nPC update.
func (c *CPU) advance() {
	c.PC = c.NPC
	c.NPC += 4
}

// branch performs the taken-branch PC/nPC update for a signed 16-bit
// word offset (imm already sign-extended to 32 bits, not yet shifted).
func (c *CPU) branch(imm int32) {
	c.PC = c.NPC
	c.NPC = uint32(int32(c.NPC) + imm<<2)
}

// jumpAbsolute performs the J-type PC/nPC update to a 26-bit target,
// using the previous nPC for the upper four bits.
func (c *CPU) jumpAbsolute(target uint32) {
	upper := c.NPC & 0xF0000000
	c.PC = c.NPC
	c.NPC = upper | (target << 2)
}

// jumpRegister performs the PC/nPC update for JR/JALR: nPC becomes the
// register value.
func (c *CPU) jumpRegister(value uint32) {
	c.PC = c.NPC
	c.NPC = value
}

// linkAddress is the return address recorded by JAL/JALR/BGEZAL/BLTZAL:
// the address after the delay slot.
func (c *CPU) linkAddress() uint32 {
	return c.PC + 8
}

// Step executes exactly one instruction cycle. It returns halted=true
// when PC==0 (the architectural halt convention) without having
// executed anything. Any fault returned is an *Fault.
func (c *CPU) Step() (halted bool, err error) {
	if c.PC == 0 {
		return true, nil
	}
	if c.MaxCycles > 0 && c.Cycles >= c.MaxCycles {
		return false, Faultf(FaultGeneric, "cycle limit exceeded (%d cycles)", c.MaxCycles)
	}
	if c.PC < InstructionStart || c.PC >= InstructionStart+InstructionSize {
		return false, Faultf(FaultMemory, "attempted to execute outside instruction segment at 0x%08X", c.PC)
	}

	word, err := c.Mem.GetWord(c.PC)
	if err != nil {
		return false, err
	}

	if word == 0 {
		c.advance()
		c.Cycles++
		return false, nil
	}

	inst, err := Decode(word)
	if err != nil {
		return false, Faultf(FaultInvalidInstruction, "%v", err)
	}

	if c.Trace != nil {
		c.writeTrace(word, inst)
	}

	if err := c.execute(inst); err != nil {
		return false, err
	}
	c.Cycles++
	return false, nil
}

// Run executes instructions until halt or fault, returning the
// process exit status (low byte of R2) on a clean halt.
func (c *CPU) Run() (int, error) {
	for {
		halted, err := c.Step()
		if err != nil {
			return 0, err
		}
		if halted {
			return int(c.GetReg(RV0) & 0xFF), nil
		}
	}
}

func (c *CPU) execute(inst Instruction) error {
	switch ins := inst.(type) {
	case *RType:
		return c.executeR(ins)
	case *IType:
		return c.executeI(ins)
	case *JType:
		return c.executeJ(ins)
	case *REGIMMType:
		return c.executeREGIMM(ins)
	case *SpecialType:
		return c.executeSpecial(ins)
	default:
		return Faultf(FaultGeneric, "unreachable: unknown instruction variant")
	}
}

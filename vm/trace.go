package vm

import "fmt"

// writeTrace emits one best-effort diagnostic line for the instruction
// about to execute. Formatting never fails: an unrecognized shape
// falls back to the raw hex word.
func (c *CPU) writeTrace(word uint32, inst Instruction) {
	fmt.Fprintf(c.Trace, "0x%08X: %s\n", c.PC, Mnemonic(word, inst))
}

// Mnemonic renders a decoded instruction as a short human-readable
// line, used by the execution trace and (through the disasm package)
// the `decode` CLI subcommand.
func Mnemonic(word uint32, inst Instruction) string {
	switch ins := inst.(type) {
	case *RType:
		return rMnemonic(ins)
	case *IType:
		return iMnemonic(ins)
	case *JType:
		return jMnemonic(ins)
	case *REGIMMType:
		return regimmMnemonic(ins)
	case *SpecialType:
		return "REGDUMP"
	default:
		return fmt.Sprintf("0x%08X", word)
	}
}

func reg(id RegisterID) string {
	return fmt.Sprintf("$%d", id)
}

// dumpRegisters writes a human-readable snapshot of PC, nPC, HI, LO and
// all 31 general registers to the diagnostic stream. Used by the
// REGDUMP instruction; never returns an error since a bad diagnostic
// write must not abort execution.
func (c *CPU) dumpRegisters() {
	if c.Diag == nil {
		return
	}
	fmt.Fprintf(c.Diag, "--- register dump @ PC=0x%08X nPC=0x%08X ---\n", c.PC, c.NPC)
	for row := 0; row < 8; row++ {
		for col := 0; col < 4; col++ {
			id := RegisterID(row + col*8 + 1)
			if int(id) > NumRegisters {
				continue
			}
			fmt.Fprintf(c.Diag, "$%-2d=0x%08X  ", id, c.GetReg(id))
		}
		fmt.Fprintln(c.Diag)
	}
	fmt.Fprintf(c.Diag, "HI=0x%08X  LO=0x%08X\n", c.HI, c.LO)
}

func rMnemonic(ins *RType) string {
	switch ins.Funct {
	case functJALR:
		return fmt.Sprintf("JALR %s, %s", reg(ins.Rd), reg(ins.Rs))
	case functJR:
		return fmt.Sprintf("JR %s", reg(ins.Rs))
	case functSLL:
		return fmt.Sprintf("SLL %s, %s, %d", reg(ins.Rd), reg(ins.Rt), ins.Shamt)
	case functSLLV:
		return fmt.Sprintf("SLLV %s, %s, %s", reg(ins.Rd), reg(ins.Rt), reg(ins.Rs))
	case functSRA:
		return fmt.Sprintf("SRA %s, %s, %d", reg(ins.Rd), reg(ins.Rt), ins.Shamt)
	case functSRAV:
		return fmt.Sprintf("SRAV %s, %s, %s", reg(ins.Rd), reg(ins.Rt), reg(ins.Rs))
	case functSRL:
		return fmt.Sprintf("SRL %s, %s, %d", reg(ins.Rd), reg(ins.Rt), ins.Shamt)
	case functSRLV:
		return fmt.Sprintf("SRLV %s, %s, %s", reg(ins.Rd), reg(ins.Rt), reg(ins.Rs))
	case functSLT:
		return fmt.Sprintf("SLT %s, %s, %s", reg(ins.Rd), reg(ins.Rs), reg(ins.Rt))
	case functSLTU:
		return fmt.Sprintf("SLTU %s, %s, %s", reg(ins.Rd), reg(ins.Rs), reg(ins.Rt))
	case functADD:
		return fmt.Sprintf("ADD %s, %s, %s", reg(ins.Rd), reg(ins.Rs), reg(ins.Rt))
	case functADDU:
		return fmt.Sprintf("ADDU %s, %s, %s", reg(ins.Rd), reg(ins.Rs), reg(ins.Rt))
	case functSUB:
		return fmt.Sprintf("SUB %s, %s, %s", reg(ins.Rd), reg(ins.Rs), reg(ins.Rt))
	case functSUBU:
		return fmt.Sprintf("SUBU %s, %s, %s", reg(ins.Rd), reg(ins.Rs), reg(ins.Rt))
	case functDIV:
		return fmt.Sprintf("DIV %s, %s", reg(ins.Rs), reg(ins.Rt))
	case functDIVU:
		return fmt.Sprintf("DIVU %s, %s", reg(ins.Rs), reg(ins.Rt))
	case functMFHI:
		return fmt.Sprintf("MFHI %s", reg(ins.Rd))
	case functMFLO:
		return fmt.Sprintf("MFLO %s", reg(ins.Rd))
	case functMTHI:
		return fmt.Sprintf("MTHI %s", reg(ins.Rs))
	case functMTLO:
		return fmt.Sprintf("MTLO %s", reg(ins.Rs))
	case functMULT:
		return fmt.Sprintf("MULT %s, %s", reg(ins.Rs), reg(ins.Rt))
	case functMULTU:
		return fmt.Sprintf("MULTU %s, %s", reg(ins.Rs), reg(ins.Rt))
	case functXOR:
		return fmt.Sprintf("XOR %s, %s, %s", reg(ins.Rd), reg(ins.Rs), reg(ins.Rt))
	case functOR:
		return fmt.Sprintf("OR %s, %s, %s", reg(ins.Rd), reg(ins.Rs), reg(ins.Rt))
	case functAND:
		return fmt.Sprintf("AND %s, %s, %s", reg(ins.Rd), reg(ins.Rs), reg(ins.Rt))
	default:
		return fmt.Sprintf("<r-type funct=0x%02X>", ins.Funct)
	}
}

func iMnemonic(ins *IType) string {
	simm := int32(int16(ins.Imm16))
	switch ins.Opcode {
	case opLB:
		return fmt.Sprintf("LB %s, %d(%s)", reg(ins.Rt), simm, reg(ins.Rs))
	case opLBU:
		return fmt.Sprintf("LBU %s, %d(%s)", reg(ins.Rt), simm, reg(ins.Rs))
	case opLH:
		return fmt.Sprintf("LH %s, %d(%s)", reg(ins.Rt), simm, reg(ins.Rs))
	case opLHU:
		return fmt.Sprintf("LHU %s, %d(%s)", reg(ins.Rt), simm, reg(ins.Rs))
	case opLUI:
		return fmt.Sprintf("LUI %s, 0x%04X", reg(ins.Rt), ins.Imm16)
	case opLW:
		return fmt.Sprintf("LW %s, %d(%s)", reg(ins.Rt), simm, reg(ins.Rs))
	case opLWL:
		return fmt.Sprintf("LWL %s, %d(%s)", reg(ins.Rt), simm, reg(ins.Rs))
	case opLWR:
		return fmt.Sprintf("LWR %s, %d(%s)", reg(ins.Rt), simm, reg(ins.Rs))
	case opSB:
		return fmt.Sprintf("SB %s, %d(%s)", reg(ins.Rt), simm, reg(ins.Rs))
	case opSH:
		return fmt.Sprintf("SH %s, %d(%s)", reg(ins.Rt), simm, reg(ins.Rs))
	case opSW:
		return fmt.Sprintf("SW %s, %d(%s)", reg(ins.Rt), simm, reg(ins.Rs))
	case opBEQ:
		return fmt.Sprintf("BEQ %s, %s, %d", reg(ins.Rs), reg(ins.Rt), simm)
	case opBGTZ:
		return fmt.Sprintf("BGTZ %s, %d", reg(ins.Rs), simm)
	case opBLEZ:
		return fmt.Sprintf("BLEZ %s, %d", reg(ins.Rs), simm)
	case opBNE:
		return fmt.Sprintf("BNE %s, %s, %d", reg(ins.Rs), reg(ins.Rt), simm)
	case opORI:
		return fmt.Sprintf("ORI %s, %s, 0x%04X", reg(ins.Rt), reg(ins.Rs), ins.Imm16)
	case opANDI:
		return fmt.Sprintf("ANDI %s, %s, 0x%04X", reg(ins.Rt), reg(ins.Rs), ins.Imm16)
	case opSLTI:
		return fmt.Sprintf("SLTI %s, %s, %d", reg(ins.Rt), reg(ins.Rs), simm)
	case opSLTIU:
		return fmt.Sprintf("SLTIU %s, %s, %d", reg(ins.Rt), reg(ins.Rs), simm)
	case opXORI:
		return fmt.Sprintf("XORI %s, %s, 0x%04X", reg(ins.Rt), reg(ins.Rs), ins.Imm16)
	case opADDI:
		return fmt.Sprintf("ADDI %s, %s, %d", reg(ins.Rt), reg(ins.Rs), simm)
	case opADDIU:
		return fmt.Sprintf("ADDIU %s, %s, %d", reg(ins.Rt), reg(ins.Rs), simm)
	default:
		return fmt.Sprintf("<i-type opcode=0x%02X>", ins.Opcode)
	}
}

func jMnemonic(ins *JType) string {
	if ins.Opcode == opJAL {
		return fmt.Sprintf("JAL 0x%08X", ins.Target<<2)
	}
	return fmt.Sprintf("J 0x%08X", ins.Target<<2)
}

func regimmMnemonic(ins *REGIMMType) string {
	simm := int32(int16(ins.Imm16))
	switch ins.Sub {
	case regimmBGEZ:
		return fmt.Sprintf("BGEZ %s, %d", reg(ins.Rs), simm)
	case regimmBGEZAL:
		return fmt.Sprintf("BGEZAL %s, %d", reg(ins.Rs), simm)
	case regimmBLTZ:
		return fmt.Sprintf("BLTZ %s, %d", reg(ins.Rs), simm)
	case regimmBLTZAL:
		return fmt.Sprintf("BLTZAL %s, %d", reg(ins.Rs), simm)
	default:
		return fmt.Sprintf("<regimm sub=0x%02X>", ins.Sub)
	}
}

package vm

import "fmt"

// Opcodes (bits 31:26), recognized by Decode.
const (
	opSpecial = 0 // R-type, dispatched by funct
	opRegimm  = 1 // dispatched by rt field
	opJ       = 2
	opJAL     = 3
	opBEQ     = 4
	opBNE     = 5
	opBLEZ    = 6
	opBGTZ    = 7
	opADDI    = 8
	opADDIU   = 9
	opSLTI    = 10
	opSLTIU   = 11
	opANDI    = 12
	opORI     = 13
	opXORI    = 14
	opLUI     = 15
	opLB      = 32
	opLH      = 33
	opLWL     = 34
	opLW      = 35
	opLBU     = 36
	opLHU     = 37
	opLWR     = 38
	opSB      = 40
	opSH      = 41
	opSW      = 43
)

// R-type funct codes (bits 5:0).
const (
	functSLL  = 0x00
	functSRL  = 0x02
	functSRA  = 0x03
	functSLLV = 0x04
	functSRLV = 0x06
	functSRAV = 0x07
	functJR   = 0x08
	functJALR = 0x09
	functBRK  = 0x0D // BREAK; REGDUMP diagnostic extension
	functMFHI = 0x10
	functMTHI = 0x11
	functMFLO = 0x12
	functMTLO = 0x13
	functMULT = 0x18
	functMULTU = 0x19
	functDIV  = 0x1A
	functDIVU = 0x1B
	functADD  = 0x20
	functADDU = 0x21
	functSUB  = 0x22
	functSUBU = 0x23
	functAND  = 0x24
	functOR   = 0x25
	functXOR  = 0x26
	functSLT  = 0x2A
	functSLTU = 0x2B
)

// REGIMM sub-codes (rt field, bits 20:16).
const (
	regimmBLTZ   = 0x00
	regimmBGEZ   = 0x01
	regimmBLTZAL = 0x10
	regimmBGEZAL = 0x11
)

// InvalidInstructionError reports a word the decoder could not match
// to any supported instruction.
type InvalidInstructionError struct {
	Word uint32
}

func (e *InvalidInstructionError) Error() string {
	return fmt.Sprintf("invalid instruction: 0x%08X", e.Word)
}

// Decode turns a 32-bit big-endian-loaded instruction word into a
// typed Instruction. It is a pure function: same word, same result,
// no side effects.
func Decode(word uint32) (Instruction, error) {
	opcode := (word >> 26) & 0x3F
	rs := RegisterID((word >> 21) & 0x1F)
	rt := RegisterID((word >> 16) & 0x1F)
	rd := RegisterID((word >> 11) & 0x1F)
	shamt := (word >> 6) & 0x1F
	funct := word & 0x3F
	imm16 := word & 0xFFFF

	switch opcode {
	case opSpecial:
		if funct == functBRK {
			return &SpecialType{Kind: SpecialRegDump}, nil
		}
		switch funct {
		case functSLL, functSRL, functSRA, functSLLV, functSRLV, functSRAV,
			functJR, functJALR, functMFHI, functMTHI, functMFLO, functMTLO,
			functMULT, functMULTU, functDIV, functDIVU,
			functADD, functADDU, functSUB, functSUBU,
			functAND, functOR, functXOR, functSLT, functSLTU:
			return &RType{Funct: funct, Rd: rd, Rs: rs, Rt: rt, Shamt: shamt}, nil
		}
		return nil, &InvalidInstructionError{Word: word}

	case opRegimm:
		switch rt {
		case regimmBGEZ, regimmBGEZAL, regimmBLTZ, regimmBLTZAL:
			return &REGIMMType{Sub: uint32(rt), Rs: rs, Imm16: imm16}, nil
		}
		return nil, &InvalidInstructionError{Word: word}

	case opJ, opJAL:
		return &JType{Opcode: opcode, Target: word & 0x03FFFFFF}, nil

	case opLB, opLBU, opLH, opLHU, opLUI, opLW, opLWL, opLWR,
		opSB, opSH, opSW,
		opBEQ, opBGTZ, opBLEZ, opBNE,
		opORI, opANDI, opSLTI, opSLTIU, opXORI, opADDI, opADDIU:
		return &IType{Opcode: opcode, Rs: rs, Rt: rt, Imm16: imm16}, nil
	}

	return nil, &InvalidInstructionError{Word: word}
}

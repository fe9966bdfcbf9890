package disasm_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mipsim/disasm"
	"mipsim/vm"
)

func TestDecode_ProducesOneLinePerWord(t *testing.T) {
	addiu := uint32(9)<<26 | uint32(1)<<16 | 5 // ADDIU $1, $0, 5
	lines := disasm.Decode([]uint32{addiu, 0})

	require.Len(t, lines, 2)
	assert.Equal(t, uint32(vm.InstructionStart), lines[0].Addr)
	assert.Contains(t, lines[0].Text, "ADDIU")
	assert.Equal(t, uint32(vm.InstructionStart+4), lines[1].Addr)
}

func TestDecode_InvalidWordIsMarked(t *testing.T) {
	lines := disasm.Decode([]uint32{0xFFFFFFFF})
	assert.Contains(t, lines[0].Text, "invalid")
}

func TestWrite_FormatsAddressWordAndText(t *testing.T) {
	var buf bytes.Buffer
	err := disasm.Write(&buf, []disasm.Line{{Addr: vm.InstructionStart, Word: 0, Text: "NOP"}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "0x10000000")
	assert.Contains(t, buf.String(), "NOP")
}

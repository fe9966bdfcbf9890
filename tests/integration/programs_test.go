// Package integration_test exercises whole instruction streams end to
// end through the CPU loop, mirroring spec-level scenarios rather than
// unit-level component behavior.
package integration_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mipsim/vm"
)

func rWord(funct uint32, rs, rt, rd vm.RegisterID, shamt uint32) uint32 {
	return uint32(rs)<<21 | uint32(rt)<<16 | uint32(rd)<<11 | shamt<<6 | funct
}

func iWord(opcode uint32, rs, rt vm.RegisterID, imm16 uint32) uint32 {
	return opcode<<26 | uint32(rs)<<21 | uint32(rt)<<16 | (imm16 & 0xFFFF)
}

func jrTo0() uint32 { return rWord(0x08, 0, 0, 0, 0) } // JR $0, always jumps to address 0

func run(t *testing.T, words []uint32, stdin string) (status int, stdout string, err error) {
	t.Helper()
	var out bytes.Buffer
	mem := vm.NewMemoryIO(words, strings.NewReader(stdin), &out)
	cpu := vm.NewCPU(mem)
	status, err = cpu.Run()
	return status, out.String(), err
}

// Scenario 1: a single NOP word followed by a jump to address 0 halts
// immediately with exit status 0.
func TestScenario_NOPThenHalt(t *testing.T) {
	status, _, err := run(t, []uint32{0, jrTo0()}, "")
	require.NoError(t, err)
	assert.Equal(t, 0, status)
}

// Scenario 2: loading a value into $2 and halting exits with that value.
func TestScenario_ORI_ExitsWithValue(t *testing.T) {
	words := []uint32{
		iWord(13, 0, 2, 0x2A), // ORI $2, $0, 0x2A
		jrTo0(),
	}
	status, _, err := run(t, words, "")
	require.NoError(t, err)
	assert.Equal(t, 42, status)
}

// Scenario 3: ADDI overflow faults with exit code -10.
func TestScenario_ADDI_OverflowFaults(t *testing.T) {
	words := []uint32{
		iWord(15, 0, 1, 0x7FFF),   // LUI $1, 0x7FFF
		iWord(13, 1, 1, 0xFFFF),   // ORI $1, $1, 0xFFFF -> $1 = 0x7FFFFFFF
		iWord(8, 1, 1, 1),         // ADDI $1, $1, 1 -> overflow
	}
	_, _, err := run(t, words, "")
	require.Error(t, err)
	var f *vm.Fault
	require.ErrorAs(t, err, &f)
	assert.Equal(t, -10, f.Kind.ExitCode())
}

// An undecodable word faults with exit code -12, not the generic -20.
func TestScenario_InvalidInstructionFaults(t *testing.T) {
	words := []uint32{0x7C000000} // opcode 0x1F: unassigned in MIPS-I
	_, _, err := run(t, words, "")
	require.Error(t, err)
	var f *vm.Fault
	require.ErrorAs(t, err, &f)
	assert.Equal(t, vm.FaultInvalidInstruction, f.Kind)
	assert.Equal(t, -12, f.Kind.ExitCode())
}

// Scenario 4: writing a byte to the putc address prints it and exits
// with that byte's value.
func TestScenario_PutcPrintsAndExits(t *testing.T) {
	words := []uint32{
		iWord(13, 0, 2, 65),              // ORI $2, $0, 65 ('A')
		iWord(15, 0, 3, 0x3000),          // LUI $3, 0x3000
		iWord(13, 3, 3, 0x0004),          // ORI $3, $3, 4 -> $3 = putc address
		iWord(43, 3, 2, 0),               // SW $2, 0($3)
		jrTo0(),
	}
	status, stdout, err := run(t, words, "")
	require.NoError(t, err)
	assert.Equal(t, 65, status)
	assert.Equal(t, "A", stdout)
}

// Scenario 5: reading a byte from getc and echoing it to putc exits
// with that byte's value.
func TestScenario_GetcEchoesToPutc(t *testing.T) {
	words := []uint32{
		iWord(15, 0, 4, 0x3000),  // LUI $4, 0x3000 -> $4 = getc address
		iWord(35, 4, 2, 0),       // LW $2, 0($4)
		iWord(15, 0, 3, 0x3000),  // LUI $3, 0x3000
		iWord(13, 3, 3, 0x0004),  // ORI $3, $3, 4 -> $3 = putc address
		iWord(43, 3, 2, 0),       // SW $2, 0($3)
		jrTo0(),
	}
	status, stdout, err := run(t, words, "q")
	require.NoError(t, err)
	assert.Equal(t, int('q'), status)
	assert.Equal(t, "q", stdout)
}

// Scenario 6: a word stored to the data segment and reloaded exits
// with its low byte.
func TestScenario_DataStoreLoadRoundTrip(t *testing.T) {
	words := []uint32{
		iWord(15, 0, 1, 0x1234), // LUI $1, 0x1234
		iWord(13, 1, 1, 0x5678), // ORI $1, $1, 0x5678 -> $1 = 0x12345678
		iWord(15, 0, 3, 0x2000), // LUI $3, 0x2000 -> $3 = DataStart
		iWord(43, 3, 1, 0),      // SW $1, 0($3)
		iWord(35, 3, 2, 0),      // LW $2, 0($3)
		jrTo0(),
	}
	status, _, err := run(t, words, "")
	require.NoError(t, err)
	assert.Equal(t, 0x78, status)
}

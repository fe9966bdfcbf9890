package vm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mipsim/vm"
)

func TestMemory_InstructionRoundTrip(t *testing.T) {
	m := vm.NewMemoryIO([]uint32{0xDEADBEEF, 0x00000001}, strings.NewReader(""), &bytes.Buffer{})
	w, err := m.GetWord(vm.InstructionStart)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), w)

	w, err = m.GetWord(vm.InstructionStart + 4)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), w)
}

func TestMemory_InstructionWriteFaults(t *testing.T) {
	m := vm.NewMemoryIO([]uint32{0}, strings.NewReader(""), &bytes.Buffer{})
	err := m.WriteWord(vm.InstructionStart, 1)
	require.Error(t, err)
	var f *vm.Fault
	require.ErrorAs(t, err, &f)
	assert.Equal(t, vm.FaultMemory, f.Kind)
}

func TestMemory_DataWordRoundTrip(t *testing.T) {
	// For every word-aligned data address a and value v:
	// write(a,v); read(a)==v.
	m := vm.NewMemoryIO(nil, strings.NewReader(""), &bytes.Buffer{})
	cases := []struct {
		addr uint32
		val  uint32
	}{
		{vm.DataStart, 0},
		{vm.DataStart + 4, 0xFFFFFFFF},
		{vm.DataStart + 100, 0x12345678},
		{vm.DataStart + 4096, 0x80000000},
	}
	for _, c := range cases {
		require.NoError(t, m.WriteWord(c.addr, c.val))
		got, err := m.GetWord(c.addr)
		require.NoError(t, err)
		assert.Equal(t, c.val, got)
	}
}

func TestMemory_DataSegmentLazyGrowth(t *testing.T) {
	m := vm.NewMemoryIO(nil, strings.NewReader(""), &bytes.Buffer{})
	err := m.WriteWord(vm.DataStart+0x100, 0x12345678)
	require.NoError(t, err)
	w, err := m.GetWord(vm.DataStart + 0x100)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), w)

	// Untouched region reads as zero.
	w, err = m.GetWord(vm.DataStart)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), w)
}

func TestMemory_UnalignedWordAccessFaults(t *testing.T) {
	m := vm.NewMemoryIO(nil, strings.NewReader(""), &bytes.Buffer{})
	_, err := m.GetWord(vm.DataStart + 1)
	require.Error(t, err)
}

func TestMemory_HalfwordBigEndianOrder(t *testing.T) {
	m := vm.NewMemoryIO(nil, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, m.WriteWord(vm.DataStart, 0x11223344))

	hi, err := m.GetHalfword(vm.DataStart)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x1122), hi)

	lo, err := m.GetHalfword(vm.DataStart + 2)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x3344), lo)
}

func TestMemory_ByteAddressing(t *testing.T) {
	m := vm.NewMemoryIO(nil, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, m.WriteWord(vm.DataStart, 0xAABBCCDD))

	for i, want := range []uint32{0xAA, 0xBB, 0xCC, 0xDD} {
		b, err := m.GetByte(vm.DataStart + uint32(i))
		require.NoError(t, err)
		assert.Equal(t, want, b)
	}
}

func TestMemory_Getc_ReadsStdinByte(t *testing.T) {
	m := vm.NewMemoryIO(nil, strings.NewReader("A"), &bytes.Buffer{})
	v, err := m.GetWord(vm.GetcAddr)
	require.NoError(t, err)
	assert.Equal(t, uint32('A'), v)
}

func TestMemory_Getc_EOFReadsZero(t *testing.T) {
	m := vm.NewMemoryIO(nil, strings.NewReader(""), &bytes.Buffer{})
	v, err := m.GetWord(vm.GetcAddr)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), v)
}

func TestMemory_Putc_WritesStdout(t *testing.T) {
	var out bytes.Buffer
	m := vm.NewMemoryIO(nil, strings.NewReader(""), &out)
	require.NoError(t, m.WriteWord(vm.PutcAddr, 'Z'))
	assert.Equal(t, "Z", out.String())
}

func TestMemory_Getc_WriteFaults(t *testing.T) {
	m := vm.NewMemoryIO(nil, strings.NewReader(""), &bytes.Buffer{})
	err := m.WriteWord(vm.GetcAddr, 1)
	require.Error(t, err)
}

func TestMemory_Putc_ReadFaults(t *testing.T) {
	m := vm.NewMemoryIO(nil, strings.NewReader(""), &bytes.Buffer{})
	_, err := m.GetWord(vm.PutcAddr)
	require.Error(t, err)
}

func TestMemory_SubWordAccessToIOAddressFaultsWithoutConsumingInput(t *testing.T) {
	in := strings.NewReader("A")
	m := vm.NewMemoryIO(nil, in, &bytes.Buffer{})

	_, err := m.GetByte(vm.GetcAddr)
	require.Error(t, err, "byte access to getc must fault, not silently succeed")

	// The fault must happen before any stdin byte is consumed.
	v, err := m.GetWord(vm.GetcAddr)
	require.NoError(t, err)
	assert.Equal(t, uint32('A'), v, "earlier faulting byte-probe must not have consumed the pending input byte")
}

func TestMemory_UnmappedAddressFaults(t *testing.T) {
	m := vm.NewMemoryIO(nil, strings.NewReader(""), &bytes.Buffer{})
	_, err := m.GetWord(0x40000000)
	require.Error(t, err)
}

// Package disasm renders a loaded instruction image as human-readable
// assembly, backing the `decode` CLI subcommand.
package disasm

import (
	"fmt"
	"io"

	"mipsim/vm"
)

// Line is one disassembled instruction word at its load address.
type Line struct {
	Addr uint32
	Word uint32
	Text string
}

// Decode disassembles every instruction word in words, which must be
// in load order starting at vm.InstructionStart.
func Decode(words []uint32) []Line {
	lines := make([]Line, len(words))
	for i, w := range words {
		addr := uint32(vm.InstructionStart + i*4)
		inst, err := vm.Decode(w)
		if err != nil {
			lines[i] = Line{Addr: addr, Word: w, Text: fmt.Sprintf("<invalid: 0x%08X>", w)}
			continue
		}
		lines[i] = Line{Addr: addr, Word: w, Text: vm.Mnemonic(w, inst)}
	}
	return lines
}

// Write renders lines as "ADDR: WORD  MNEMONIC" to w, one per line.
func Write(w io.Writer, lines []Line) error {
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "0x%08X: %08X  %s\n", l.Addr, l.Word, l.Text); err != nil {
			return err
		}
	}
	return nil
}

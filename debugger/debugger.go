// Package debugger implements the interactive memory-tester utility:
// a line-oriented REPL, and an optional full-screen TUI, for poking at
// a CPU/Memory pair outside of a normal program run.
package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"mipsim/vm"
)

// Debugger holds the REPL/TUI session state around a single CPU.
type Debugger struct {
	CPU *vm.CPU

	History *CommandHistory

	LastCommand string
	Output      strings.Builder

	// Quit is set once the session requests exit.
	Quit bool
}

// NewDebugger creates a Debugger session over cpu.
func NewDebugger(cpu *vm.CPU, historySize int) *Debugger {
	return &Debugger{
		CPU:     cpu,
		History: NewCommandHistory(historySize),
	}
}

// Printf appends a formatted line to the session's output buffer.
func (d *Debugger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(&d.Output, format, args...)
}

// Println appends a line to the session's output buffer.
func (d *Debugger) Println(args ...interface{}) {
	fmt.Fprintln(&d.Output, args...)
}

// GetOutput drains and returns everything written to Output so far.
func (d *Debugger) GetOutput() string {
	s := d.Output.String()
	d.Output.Reset()
	return s
}

// ExecuteCommand parses and runs one REPL command line. Empty input
// repeats the last command, matching a conventional debugger REPL.
func (d *Debugger) ExecuteCommand(cmdLine string) error {
	cmdLine = strings.TrimSpace(cmdLine)
	if cmdLine == "" {
		cmdLine = d.LastCommand
	}
	if cmdLine != "" {
		d.History.Add(cmdLine)
		d.LastCommand = cmdLine
	}

	parts := strings.Fields(cmdLine)
	if len(parts) == 0 {
		return nil
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]
	return d.handleCommand(cmd, args)
}

func (d *Debugger) handleCommand(cmd string, args []string) error {
	switch cmd {
	case "step", "s":
		return d.cmdStep(args)
	case "run", "r":
		return d.cmdRun(args)
	case "reset":
		return d.cmdReset(args)
	case "registers", "regs", "info":
		return d.cmdRegisters(args)
	case "read", "x":
		return d.cmdRead(args)
	case "write":
		return d.cmdWrite(args)
	case "dump", "d":
		return d.cmdDump(args)
	case "help", "h", "?":
		return d.cmdHelp(args)
	case "quit", "q", "exit":
		d.Quit = true
		return nil
	default:
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", cmd)
	}
}

// parseAddress accepts both "0x..." and decimal address forms.
func parseAddress(s string) (uint32, error) {
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address: %s", s)
	}
	return uint32(v), nil
}

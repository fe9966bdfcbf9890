package debugger

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// RunCLI runs the line-oriented memory-tester REPL, reading commands
// from in and writing prompts and output to out.
func RunCLI(dbg *Debugger, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "(mipsim) ")

		if !scanner.Scan() {
			break
		}
		cmdLine := strings.TrimSpace(scanner.Text())

		if err := dbg.ExecuteCommand(cmdLine); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		if output := dbg.GetOutput(); output != "" {
			fmt.Fprint(out, output)
		}
		if dbg.Quit {
			break
		}
	}

	return scanner.Err()
}

// RunTUI runs the full-screen memory-tester TUI.
func RunTUI(dbg *Debugger) error {
	tui := NewTUI(dbg)
	return tui.Run()
}

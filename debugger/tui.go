package debugger

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"mipsim/vm"
)

// TUI is the full-screen memory-tester interface: a register panel, a
// memory hex-dump panel, an output log, and a command input line.
type TUI struct {
	Debugger *Debugger
	App      *tview.Application

	MainLayout   *tview.Flex
	RegisterView *tview.TextView
	MemoryView   *tview.TextView
	OutputView   *tview.TextView
	CommandInput *tview.InputField

	MemoryAddress uint32
}

// NewTUI builds a TUI session over dbg.
func NewTUI(dbg *Debugger) *TUI {
	t := &TUI{
		Debugger:      dbg,
		App:           tview.NewApplication(),
		MemoryAddress: 0x20000000,
	}
	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	return t
}

func (t *TUI) initializeViews() {
	t.RegisterView = tview.NewTextView().SetDynamicColors(true)
	t.RegisterView.SetBorder(true).SetTitle(" Registers ")

	t.MemoryView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.MemoryView.SetBorder(true).SetTitle(" Memory ")

	t.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.CommandInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	top := tview.NewFlex().
		AddItem(t.RegisterView, 0, 1, false).
		AddItem(t.MemoryView, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(top, 0, 3, false).
		AddItem(t.OutputView, 0, 2, false).
		AddItem(t.CommandInput, 3, 0, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF11:
			t.executeCommand("step")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			t.RefreshAll()
			return nil
		}
		return event
	})
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	cmd := t.CommandInput.GetText()
	if cmd == "" {
		return
	}
	t.executeCommand(cmd)
	t.CommandInput.SetText("")
}

func (t *TUI) executeCommand(cmd string) {
	err := t.Debugger.ExecuteCommand(cmd)
	if output := t.Debugger.GetOutput(); output != "" {
		t.WriteOutput(output)
	}
	if err != nil {
		t.WriteOutput(fmt.Sprintf("[red]error:[white] %v\n", err))
	}
	if t.Debugger.Quit {
		t.App.Stop()
		return
	}
	t.RefreshAll()
}

func (t *TUI) WriteOutput(text string) {
	_, _ = t.OutputView.Write([]byte(text))
	t.OutputView.ScrollToEnd()
}

func (t *TUI) RefreshAll() {
	t.UpdateRegisterView()
	t.UpdateMemoryView()
	t.App.Draw()
}

func (t *TUI) UpdateRegisterView() {
	cpu := t.Debugger.CPU
	var b strings.Builder
	fmt.Fprintf(&b, "PC=0x%08X  nPC=0x%08X\nHI=0x%08X  LO=0x%08X\n\n", cpu.PC, cpu.NPC, cpu.HI, cpu.LO)
	for row := 0; row < 8; row++ {
		for col := 0; col < 4; col++ {
			id := row + col*8 + 1
			if id > 31 {
				continue
			}
			fmt.Fprintf(&b, "$%-2d=0x%08X  ", id, cpu.GetReg(vm.RegisterID(id)))
		}
		b.WriteString("\n")
	}
	t.RegisterView.SetText(b.String())
}

func (t *TUI) UpdateMemoryView() {
	window := t.Debugger.CPU.Mem.Window(t.MemoryAddress, 256)
	var b strings.Builder
	for i := 0; i < len(window); i += 16 {
		end := i + 16
		if end > len(window) {
			end = len(window)
		}
		fmt.Fprintf(&b, "0x%08X: % X\n", t.MemoryAddress+uint32(i), window[i:end])
	}
	t.MemoryView.SetText(b.String())
}

// Run shows the TUI and blocks until the session quits.
func (t *TUI) Run() error {
	t.RefreshAll()
	t.WriteOutput("[green]mipsim memory-tester[white]\n")
	t.WriteOutput("Ctrl-L refresh, F11 step, Ctrl-C quit. Type 'help' for commands.\n\n")
	return t.App.SetRoot(t.MainLayout, true).SetFocus(t.CommandInput).Run()
}

// Stop stops the TUI application.
func (t *TUI) Stop() {
	t.App.Stop()
}

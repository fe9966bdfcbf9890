package debugger

import (
	"fmt"
	"strconv"

	"mipsim/vm"
)

// cmdStep executes a single instruction cycle.
func (d *Debugger) cmdStep(args []string) error {
	halted, err := d.CPU.Step()
	if err != nil {
		d.Printf("fault: %v\n", err)
		return nil
	}
	if halted {
		d.Println("halted")
		return nil
	}
	d.Printf("PC=0x%08X\n", d.CPU.PC)
	return nil
}

// cmdRun executes until halt or fault.
func (d *Debugger) cmdRun(args []string) error {
	status, err := d.CPU.Run()
	if err != nil {
		d.Printf("fault: %v\n", err)
		return nil
	}
	d.Printf("program exited with status %d\n", status)
	return nil
}

// cmdReset reinitializes the architectural registers to their startup
// values, leaving Memory untouched.
func (d *Debugger) cmdReset(args []string) error {
	d.CPU.PC = vm.InitialPC
	d.CPU.NPC = vm.InitialPC + 4
	d.CPU.HI, d.CPU.LO = 0, 0
	d.CPU.Cycles = 0
	for i := 1; i <= vm.NumRegisters; i++ {
		d.CPU.SetReg(vm.RegisterID(i), 0)
	}
	d.Println("reset")
	return nil
}

func (d *Debugger) cmdRegisters(args []string) error {
	d.Printf("PC=0x%08X nPC=0x%08X HI=0x%08X LO=0x%08X\n",
		d.CPU.PC, d.CPU.NPC, d.CPU.HI, d.CPU.LO)
	for row := 0; row < 8; row++ {
		for col := 0; col < 4; col++ {
			id := row + col*8 + 1
			if id > 31 {
				continue
			}
			d.Printf("$%-2d=0x%08X  ", id, d.CPU.GetReg(vm.RegisterID(id)))
		}
		d.Println()
	}
	return nil
}

func (d *Debugger) cmdRead(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: read <address>")
	}
	addr, err := parseAddress(args[0])
	if err != nil {
		return err
	}
	w, err := d.CPU.Mem.GetWord(addr)
	if err != nil {
		return err
	}
	d.Printf("0x%08X: 0x%08X\n", addr, w)
	return nil
}

func (d *Debugger) cmdWrite(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: write <address> <value>")
	}
	addr, err := parseAddress(args[0])
	if err != nil {
		return err
	}
	value, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil {
		return fmt.Errorf("invalid value: %s", args[1])
	}
	if err := d.CPU.Mem.WriteWord(addr, uint32(value)); err != nil {
		return err
	}
	d.Printf("0x%08X <- 0x%08X\n", addr, uint32(value))
	return nil
}

func (d *Debugger) cmdDump(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: dump <address> [length]")
	}
	addr, err := parseAddress(args[0])
	if err != nil {
		return err
	}
	length := 64
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid length: %s", args[1])
		}
		length = n
	}

	bytes := d.CPU.Mem.Window(addr, length)
	for i := 0; i < len(bytes); i += 16 {
		end := i + 16
		if end > len(bytes) {
			end = len(bytes)
		}
		d.Printf("0x%08X: % X\n", addr+uint32(i), bytes[i:end])
	}
	return nil
}

func (d *Debugger) cmdHelp(args []string) error {
	d.Println("Memory-tester commands:")
	d.Println("  step (s)              - execute one instruction")
	d.Println("  run (r)               - run to halt or fault")
	d.Println("  reset                 - reset registers to startup state")
	d.Println("  registers (regs)      - show PC/nPC/HI/LO and all registers")
	d.Println("  read <addr>           - read a word")
	d.Println("  write <addr> <value>  - write a word")
	d.Println("  dump <addr> [len]     - hex-dump a memory window")
	d.Println("  help (h, ?)           - show this help")
	d.Println("  quit (q, exit)        - leave the memory-tester")
	return nil
}

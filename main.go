// Command mipsim runs, disassembles, and interactively inspects
// MIPS-I big-endian binary images.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"mipsim/config"
	"mipsim/debugger"
	"mipsim/disasm"
	"mipsim/loader"
	"mipsim/vm"
)

func main() {
	var (
		traceFlag    = flag.Bool("trace", false, "Enable per-instruction execution trace")
		traceFile    = flag.String("trace-file", "", "Trace output file (default: stderr)")
		maxCycles    = flag.Uint64("max-cycles", 0, "Maximum CPU cycles before a safety-cap fault (0: use config default)")
		configPath   = flag.String("config", "", "Path to a TOML config file (default: platform config dir)")
		memtestMode  = flag.Bool("memtest", false, "Start the interactive memory-tester")
		tuiMode      = flag.Bool("tui", false, "Use the full-screen TUI for -memtest")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mipsim: %v\n", err)
		os.Exit(1)
	}

	if *memtestMode {
		runMemtest(cfg, *tuiMode)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	if args[0] == "decode" {
		if len(args) != 2 {
			printUsage()
			os.Exit(1)
		}
		runDecode(args[1])
		return
	}

	runProgram(cfg, args[0], *traceFlag, *traceFile, *maxCycles)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  mipsim [-trace] [-trace-file FILE] [-max-cycles N] [-config FILE] <image>")
	fmt.Fprintln(os.Stderr, "  mipsim -memtest [-tui] [-config FILE]")
	fmt.Fprintln(os.Stderr, "  mipsim decode <image>")
}

func runDecode(path string) {
	words, err := loader.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mipsim: %v\n", err)
		os.Exit(-21)
	}
	lines := disasm.Decode(words)
	if err := disasm.Write(os.Stdout, lines); err != nil {
		fmt.Fprintf(os.Stderr, "mipsim: %v\n", err)
		os.Exit(1)
	}
}

func runProgram(cfg *config.Config, path string, traceFlag bool, traceFile string, maxCyclesFlag uint64) {
	words, err := loader.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mipsim: %v\n", err)
		os.Exit(-21)
	}

	mem := vm.NewMemory(words)
	cpu := vm.NewCPU(mem)

	if maxCyclesFlag > 0 {
		cpu.MaxCycles = maxCyclesFlag
	} else if cfg.Execution.MaxCycles > 0 {
		cpu.MaxCycles = cfg.Execution.MaxCycles
	}

	enableTrace := traceFlag || cfg.Execution.EnableTrace
	if enableTrace {
		out := traceFile
		if out == "" {
			out = cfg.Trace.OutputFile
		}
		w, closeFn, err := openTraceSink(out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mipsim: %v\n", err)
			os.Exit(1)
		}
		if closeFn != nil {
			defer closeFn()
		}
		cpu.Trace = w
	}

	status, err := cpu.Run()
	if err != nil {
		if f, ok := err.(*vm.Fault); ok {
			fmt.Fprintf(cpu.Diag, "mipsim: %v\n", f)
			os.Exit(f.Kind.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "mipsim: %v\n", err)
		os.Exit(-20)
	}
	os.Exit(status)
}

func openTraceSink(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stderr, nil, nil
	}
	f, err := os.Create(path) // #nosec G304 -- user-specified trace output path
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create trace file: %w", err)
	}
	return f, f.Close, nil
}

func runMemtest(cfg *config.Config, tui bool) {
	mem := vm.NewMemory(nil)
	cpu := vm.NewCPU(mem)
	dbg := debugger.NewDebugger(cpu, cfg.Debugger.HistorySize)

	var err error
	if tui {
		err = debugger.RunTUI(dbg)
	} else {
		err = debugger.RunCLI(dbg, os.Stdin, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "mipsim: %v\n", err)
		os.Exit(1)
	}
}

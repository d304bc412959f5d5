package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Urethramancer/y86/assembler"
	"github.com/Urethramancer/y86/disassembler"
	"github.com/grimdork/climate/arg"
)

// Exit statuses.
const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
	exitIO    = 3
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opt := arg.New("ydis")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "s", "symbols", "YAML symbol file written by yas -s.", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "o", "output", "Write the source here instead of standard output.", "", false, arg.VarString, nil)
	opt.SetPositional("IMAGE", "Binary image to disassemble.", "", true, arg.VarString)

	err := opt.Parse(args[1:])
	if err != nil {
		if err == arg.ErrNoArgs {
			opt.PrintHelp()
			return exitUsage
		}
		fmt.Fprintf(stderr, "Error parsing arguments: %s\n", err)
		return exitUsage
	}

	name := opt.GetPosString("IMAGE")
	if name == "" {
		fmt.Fprintln(stderr, "Error parsing arguments: missing IMAGE")
		return exitUsage
	}

	// Read the binary file directly. Do NOT modify it.
	code, err := os.ReadFile(name)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading input file: %v\n", err)
		return exitIO
	}

	labels, err := loadLabels(opt.GetString("symbols"))
	if err != nil {
		fmt.Fprintf(stderr, "Error reading symbols: %v\n", err)
		return exitIO
	}

	text, err := disassembler.DisassembleWithLabels(code, labels)
	if err != nil {
		fmt.Fprintf(stderr, "Disassembly error: %v\n", err)
		return exitFail
	}

	out := opt.GetString("output")
	if out == "" {
		fmt.Fprint(stdout, text)
		return exitOK
	}
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		fmt.Fprintf(stderr, "Error writing output file: %v\n", err)
		return exitIO
	}
	return exitOK
}

// loadLabels maps addresses to the first symbol defined there.
func loadLabels(name string) (map[uint32]string, error) {
	if name == "" {
		return nil, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	syms, err := assembler.ReadSymbols(f)
	if err != nil {
		return nil, err
	}
	labels := make(map[uint32]string, len(syms))
	for _, s := range syms {
		if _, ok := labels[s.Addr]; !ok {
			labels[s.Addr] = s.Name
		}
	}
	return labels, nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Urethramancer/y86/assembler"
	"github.com/Urethramancer/y86/cpu"
	"github.com/grimdork/climate/arg"
)

// Exit statuses.
const (
	exitOK    = 0
	exitFault = 1
	exitUsage = 2
	exitLimit = 4
)

// This program loads a Y86 image, or assembles a .ys source file, runs it
// and prints the final processor state.
func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opt := arg.New("yrun")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "m", "memory", "Memory size in bytes.", 0x10000, false, arg.VarInt, nil)
	opt.SetOption(arg.GroupDefault, "n", "steps", "Stop after this many instructions.", 1000000, false, arg.VarInt, nil)
	opt.SetPositional("FILE", "Binary image, or assembly source ending in .ys.", "", true, arg.VarString)

	err := opt.Parse(args[1:])
	if err != nil {
		if err == arg.ErrNoArgs {
			opt.PrintHelp()
			return exitUsage
		}
		fmt.Fprintf(stderr, "Error parsing arguments: %s\n", err)
		return exitUsage
	}

	name := opt.GetPosString("FILE")
	if name == "" {
		fmt.Fprintln(stderr, "Error parsing arguments: missing FILE")
		return exitUsage
	}
	memsize := opt.GetInt("memory")
	if memsize <= 0 {
		fmt.Fprintf(stderr, "Error parsing arguments: memory size %d must be positive\n", memsize)
		return exitUsage
	}
	steps := opt.GetInt("steps")
	if steps < 0 {
		fmt.Fprintf(stderr, "Error parsing arguments: step limit %d is negative\n", steps)
		return exitUsage
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	code, err := load(name)
	if err != nil {
		logger.Error("load failed", "file", name, "error", err)
		return exitFault
	}

	c := cpu.New(memsize)
	if err := c.LoadCode(0, code); err != nil {
		logger.Error("load failed", "file", name, "error", err)
		return exitFault
	}
	logger.Info("loaded", "file", name, "bytes", len(code))

	err = c.Run(steps)
	c.DumpRegisters(stdout)
	fmt.Fprintf(stdout, "Steps: %d\n", c.Steps)
	if err != nil {
		logger.Error("execution stopped", "error", err)
		if errors.Is(err, cpu.ErrStepLimit) {
			return exitLimit
		}
		return exitFault
	}
	return exitOK
}

// load reads an image, assembling it first if it is source.
func load(name string) ([]byte, error) {
	if !strings.HasSuffix(name, ".ys") {
		return os.ReadFile(name)
	}
	src, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return assembler.Assemble(string(src))
}

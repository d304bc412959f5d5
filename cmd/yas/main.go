package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Urethramancer/y86/assembler"
	"github.com/grimdork/climate/arg"
	"github.com/k0kubun/pp/v3"
)

// Exit statuses.
const (
	exitOK       = 0
	exitAssembly = 1
	exitUsage    = 2
	exitIO       = 3
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run assembles the file named in args, a full argument vector with the
// program name first, and returns the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	opt := arg.New("yas")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "v", "verbose", "Print the listing to standard output.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "o", "output", "Binary image to write (default: source name with .bin).", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "s", "symbols", "Write the symbol table as YAML to this file.", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "d", "debug", "Log every encoded line and relocation.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "D", "dump", "Pretty-print the symbol and relocation tables.", false, false, arg.VarBool, nil)
	opt.SetPositional("SOURCE", "Y86 assembly source file.", "", true, arg.VarString)

	err := opt.Parse(args[1:])
	if err != nil {
		if err == arg.ErrNoArgs {
			opt.PrintHelp()
			return exitUsage
		}
		fmt.Fprintf(stderr, "Error parsing arguments: %s\n", err)
		return exitUsage
	}

	src := opt.GetPosString("SOURCE")
	if src == "" {
		fmt.Fprintln(stderr, "Error parsing arguments: missing SOURCE")
		return exitUsage
	}

	level := slog.LevelInfo
	if opt.GetBool("debug") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	out := opt.GetString("output")
	if out == "" {
		out = strings.TrimSuffix(src, filepath.Ext(src)) + ".bin"
	}

	f, err := os.Open(src)
	if err != nil {
		report(stderr, err)
		return exitIO
	}
	defer f.Close()

	asm := assembler.New()
	asm.SetLogger(logger)
	err = asm.Assemble(f)
	if err == nil {
		err = asm.Relocate()
	}

	if opt.GetBool("verbose") {
		if lerr := asm.WriteListing(stdout); lerr != nil {
			report(stderr, lerr)
			return exitIO
		}
	}
	if opt.GetBool("dump") {
		pp.Fprintln(stderr, asm.Symbols())
		pp.Fprintln(stderr, asm.Relocations())
	}
	if err != nil {
		report(stderr, err)
		return exitCode(err)
	}

	if err := writeImage(asm, out); err != nil {
		report(stderr, err)
		return exitCode(err)
	}
	logger.Debug("wrote image", "file", out)

	if name := opt.GetString("symbols"); name != "" {
		if err := writeSymbols(asm, name, src); err != nil {
			report(stderr, err)
			return exitIO
		}
		logger.Debug("wrote symbols", "file", name, "count", asm.SymbolTable().Len())
	}
	return exitOK
}

func exitCode(err error) int {
	if errors.Is(err, assembler.ErrIO) {
		return exitIO
	}
	return exitAssembly
}

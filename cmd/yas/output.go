package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Urethramancer/y86/assembler"
	"golang.org/x/term"
)

// writeImage writes the image next to its destination and renames it into
// place, so a failed run never leaves a partial file behind.
func writeImage(asm *assembler.Assembler, name string) error {
	return replaceFile(name, func(f *os.File) error {
		return asm.WriteImage(f)
	})
}

// writeSymbols writes the YAML symbol file the same way.
func writeSymbols(asm *assembler.Assembler, name, source string) error {
	return replaceFile(name, func(f *os.File) error {
		return asm.SymbolTable().WriteSymbols(f, source)
	})
}

func replaceFile(name string, fill func(*os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", assembler.ErrIO, err)
	}
	defer os.Remove(tmp.Name())

	if err := fill(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", assembler.ErrIO, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w: %w", assembler.ErrIO, err)
	}
	if err := os.Rename(tmp.Name(), name); err != nil {
		return fmt.Errorf("%w: %w", assembler.ErrIO, err)
	}
	return nil
}

// report prints err to w, tagged with its source line when it has one. The
// tag is bold on a terminal.
func report(w io.Writer, err error) {
	tag := "[--]:"
	msg := err.Error()
	var le *assembler.LineError
	if errors.As(err, &le) {
		tag = fmt.Sprintf("[L%d]:", le.Line)
		msg = le.Msg
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		tag = "\033[1m" + tag + "\033[0m"
	}
	fmt.Fprintf(w, "%s %s\n", tag, msg)
}

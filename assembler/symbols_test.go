package assembler_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Urethramancer/y86/assembler"
)

func TestSymbolFile(t *testing.T) {
	asm := assembler.New()
	src := "Start: irmovl $1,%eax\nLoop: addl %eax,%eax\njmp Loop\n.pos 0x80\nStack:\n"
	if err := asm.Assemble(strings.NewReader(src)); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := asm.SymbolTable().WriteSymbols(&buf, "loop.ys"); err != nil {
		t.Fatal(err)
	}
	text := buf.String()
	for _, s := range []string{"source: loop.ys", "name: Start", "name: Loop", "addr: 128"} {
		if !strings.Contains(text, s) {
			t.Errorf("missing %q in\n%s", s, text)
		}
	}

	syms, err := assembler.ReadSymbols(&buf)
	if err != nil {
		t.Fatal(err)
	}
	want := []assembler.Symbol{
		{Name: "Start", Addr: 0, Line: 1},
		{Name: "Loop", Addr: 6, Line: 2},
		{Name: "Stack", Addr: 0x80, Line: 5},
	}
	if len(syms) != len(want) {
		t.Fatalf("read %d symbols, want %d", len(syms), len(want))
	}
	for i := range want {
		if syms[i] != want[i] {
			t.Errorf("symbol %d: got %+v, want %+v", i, syms[i], want[i])
		}
	}
}

func TestSymbolTable(t *testing.T) {
	st := assembler.NewSymbolTable()
	if st.Len() != 0 {
		t.Fatal("new table not empty")
	}
	if _, ok := st.Lookup("x"); ok {
		t.Error("lookup on empty table succeeded")
	}

	if _, err := assembler.ReadSymbols(strings.NewReader("symbols: [")); err == nil {
		t.Error("expected a parse error")
	}
}

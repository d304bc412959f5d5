package assembler_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Urethramancer/y86/assembler"
)

func TestListing(t *testing.T) {
	src := "# start\nLoop:\nirmovl $5,%eax\nrrmovl %eax,%ebx\n.pos 0x1234\n.long Loop\n"
	asm := assembler.New()
	if err := asm.Assemble(strings.NewReader(src)); err != nil {
		t.Fatal(err)
	}
	if err := asm.Relocate(); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := asm.WriteListing(&buf); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"                      | # start",
		"  0x000:              | Loop:",
		"  0x000: 30f005000000 | irmovl $5,%eax",
		"  0x006: 2003         | rrmovl %eax,%ebx",
		"  0x234:              | .pos 0x1234",
		"  0x234: 00000000     | .long Loop",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("listing mismatch\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatLineError(t *testing.T) {
	asm := assembler.New()
	if err := asm.AssembleLine("bogus"); err == nil {
		t.Fatal("expected an error")
	}
	l := asm.Lines()[0]
	if got := assembler.FormatLine(&l); got != "                      | bogus" {
		t.Errorf("got %q", got)
	}
}

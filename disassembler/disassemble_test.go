package disassembler_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Urethramancer/y86/assembler"
	"github.com/Urethramancer/y86/disassembler"
)

func TestDisassembleLoop(t *testing.T) {
	code, err := assembler.Assemble("Loop: irmovl $1,%eax\njmp Loop\nhalt")
	if err != nil {
		t.Fatal(err)
	}
	got, err := disassembler.Disassemble(code)
	if err != nil {
		t.Fatal(err)
	}

	want := "loc_0000:\n" +
		"    irmovl   $0x1,%eax\n" +
		"    jmp      loc_0000\n" +
		"    .byte    0x00\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestOperandForms(t *testing.T) {
	tests := []struct {
		src, want string
	}{
		{"rrmovl %esi,%edi", "rrmovl   %esi,%edi"},
		{"cmovge %eax,%ecx", "cmovge   %eax,%ecx"},
		{"irmovl $-1,%edx", "irmovl   $0xffffffff,%edx"},
		{"rmmovl %eax,8(%esp)", "rmmovl   %eax,0x8(%esp)"},
		{"rmmovl %ecx,(%ebx)", "rmmovl   %ecx,(%ebx)"},
		{"mrmovl 0x100,%eax", "mrmovl   0x100,%eax"},
		{"xorl %eax,%eax", "xorl     %eax,%eax"},
		{"pushl %ebp", "pushl    %ebp"},
		{"popl %ebp", "popl     %ebp"},
		{"nop", "nop"},
	}
	for _, tc := range tests {
		code, err := assembler.Assemble(tc.src + "\nhalt")
		if err != nil {
			t.Fatalf("%s: %v", tc.src, err)
		}
		got, err := disassembler.Disassemble(code)
		if err != nil {
			t.Fatal(err)
		}
		if first := strings.TrimSpace(strings.SplitN(got, "\n", 2)[0]); first != tc.want {
			t.Errorf("%s: got %q, want %q", tc.src, first, tc.want)
		}
	}
}

func TestCallLabel(t *testing.T) {
	code, err := assembler.Assemble("call F\nhalt\nF: ret")
	if err != nil {
		t.Fatal(err)
	}
	got, err := disassembler.Disassemble(code)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "call     sub_0006\n") || !strings.Contains(got, "sub_0006:\n    ret\n") {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestInvalidBytes(t *testing.T) {
	got, err := disassembler.Disassemble([]byte{0xF0, 0x27})
	if err != nil {
		t.Fatal(err)
	}
	want := "    .byte    0xf0\n    .byte    0x27\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	if got, _ := disassembler.Disassemble(nil); got != "" {
		t.Errorf("empty image gave %q", got)
	}
}

func TestTargetPastEnd(t *testing.T) {
	code, err := assembler.Assemble("jmp Far\n.pos 0x40\nFar:")
	if err != nil {
		t.Fatal(err)
	}
	got, err := disassembler.Disassemble(code)
	if err != nil {
		t.Fatal(err)
	}
	want := "    jmp      loc_0040\n    .pos     0x40\nloc_0040:\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

// A jump into the middle of an instruction has no label to use and is kept
// as raw bytes.
func TestTargetInsideInstruction(t *testing.T) {
	code, err := assembler.Assemble("irmovl $0x10101010,%eax\njmp Mid\nhalt\n.pos 2\nMid:")
	if err != nil {
		t.Fatal(err)
	}
	got, err := disassembler.Disassemble(code)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, ".byte    0x70\n") {
		t.Errorf("expected the jump as bytes:\n%s", got)
	}
	roundTrip(t, "inside", code)
}

func TestLabels(t *testing.T) {
	asm := assembler.New()
	src := "Start: irmovl $3,%ecx\nLoop: subl %ecx,%ecx\njne Loop\ncall Done\nDone: halt\nData: .long 5\n"
	if err := asm.Assemble(strings.NewReader(src)); err != nil {
		t.Fatal(err)
	}
	code, err := asm.Image()
	if err != nil {
		t.Fatal(err)
	}

	labels := make(map[uint32]string)
	for _, s := range asm.Symbols() {
		if _, ok := labels[s.Addr]; !ok {
			labels[s.Addr] = s.Name
		}
	}
	got, err := disassembler.DisassembleWithLabels(code, labels)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"Start:\n", "Loop:\n", "jne      Loop\n", "call     Done\n", "Done:\n", "Data:\n"} {
		if !strings.Contains(got, s) {
			t.Errorf("missing %q in\n%s", s, got)
		}
	}
}

// roundTrip disassembles code and checks that the result assembles back to
// the same bytes.
func roundTrip(t *testing.T, name string, code []byte) {
	t.Helper()

	src, err := disassembler.Disassemble(code)
	if err != nil {
		t.Fatalf("[%s] disassemble: %v", name, err)
	}
	again, err := assembler.Assemble(src)
	if err != nil {
		t.Fatalf("[%s] reassemble failed: %v\n%s", name, err, src)
	}
	if !bytes.Equal(code, again) {
		t.Errorf("[%s] round trip differs\nsource:\n%s\nbefore: % X\nafter:  % X", name, src, code, again)
	}
}

func TestRoundTrip(t *testing.T) {
	programs := map[string]string{
		"sum": `
	irmovl $0,%eax
	irmovl $5,%ecx
	irmovl $1,%ebx
Loop:
	addl %ecx,%eax
	subl %ebx,%ecx
	jne Loop
	halt
`,
		"call": `
	irmovl Stack,%esp
	call Double
	halt
Double:
	irmovl $21,%eax
	pushl %eax
	popl %edx
	addl %edx,%eax
	ret
	.pos 0x100
Stack:
`,
		"data": `
	irmovl Data,%ebx
	mrmovl 0(%ebx),%eax
	rmmovl %eax,4(%ebx)
	halt
	.align 4
Data:
	.long 10
	.word 0xBEEF
	.byte 7
`,
		"gap": `
	jmp Main
	.pos 0x20
Main:
	cmovle %eax,%ecx
	jle Main
	ret
`,
		"garbage": `
	.byte 0xF0
	.byte 0x27
	.long 0x12345678
`,
	}
	for name, src := range programs {
		code, err := assembler.Assemble(src)
		if err != nil {
			t.Fatalf("[%s] %v", name, err)
		}
		roundTrip(t, name, code)
	}
}

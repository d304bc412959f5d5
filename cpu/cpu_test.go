package cpu

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func TestLookupInstruction(t *testing.T) {
	tests := []struct {
		text string
		name string
		code byte
	}{
		{"cmovle %eax", "cmovle", 0x21},
		{"cmovl %eax", "cmovl", 0x22},
		{"jle x", "jle", 0x71},
		{"jl x", "jl", 0x72},
		{"jge x", "jge", 0x75},
		{"jg x", "jg", 0x76},
		{".long 4", ".long", 0xC0},
		{".align 4", ".align", 0xC2},
	}
	for _, tc := range tests {
		in, ok := LookupInstruction(tc.text)
		if !ok || in.Name != tc.name || in.Code != tc.code {
			t.Errorf("%q: got %+v", tc.text, in)
		}
	}
	if _, ok := LookupInstruction("mov"); ok {
		t.Error("mov matched")
	}
}

func TestLookupRegister(t *testing.T) {
	if id, ok := LookupRegister("%edi,"); !ok || id != REDI {
		t.Errorf("got %x %v", id, ok)
	}
	if _, ok := LookupRegister("%ed"); ok {
		t.Error("short token matched")
	}
	if _, ok := LookupRegister("%EAX"); ok {
		t.Error("upper case matched")
	}
}

func TestFitsWidth(t *testing.T) {
	tests := []struct {
		v     int64
		width int
		ok    bool
	}{
		{255, 1, true},
		{-128, 1, true},
		{256, 1, false},
		{-129, 1, false},
		{0xFFFF, 2, true},
		{0xFFFFFFFF, 4, true},
		{-0x80000000, 4, true},
		{0x100000000, 4, false},
	}
	for _, tc := range tests {
		if got := FitsWidth(tc.v, tc.width); got != tc.ok {
			t.Errorf("FitsWidth(%d, %d) = %v", tc.v, tc.width, got)
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		hex  string
		name string
		ra   byte
		rb   byte
		valC uint32
	}{
		{"00", "halt", RNONE, RNONE, 0},
		{"20 03", "rrmovl", REAX, REBX, 0},
		{"30 F2 FF FF FF FF", "irmovl", RNONE, REDX, 0xFFFFFFFF},
		{"40 04 08 00 00 00", "rmmovl", REAX, RESP, 8},
		{"50 0F 00 01 00 00", "mrmovl", REAX, RNONE, 0x100},
		{"63 67", "xorl", RESI, REDI, 0},
		{"74 10 00 00 00", "jne", RNONE, RNONE, 0x10},
		{"80 06 00 00 00", "call", RNONE, RNONE, 6},
		{"A0 5F", "pushl", REBP, RNONE, 0},
	}
	for _, tc := range tests {
		d, err := Decode(mustHex(t, tc.hex))
		if err != nil {
			t.Errorf("%s: %v", tc.hex, err)
			continue
		}
		if d.Name != tc.name || d.RA != tc.ra || d.RB != tc.rb || d.ValC != tc.valC {
			t.Errorf("%s: got %s %x %x %x", tc.hex, d.Name, d.RA, d.RB, d.ValC)
		}
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		hex string
		err error
	}{
		{"", ErrTruncated},
		{"30 F0 00", ErrTruncated},
		{"C0", ErrInvalidInstruction},
		{"0F", ErrInvalidInstruction},
		{"27", ErrInvalidInstruction},
		{"20 F0", ErrInvalidInstruction},
		{"30 00 00 00 00 00", ErrInvalidInstruction},
		{"A0 00", ErrInvalidInstruction},
		{"40 F0 00 00 00 00", ErrInvalidInstruction},
	}
	for _, tc := range tests {
		_, err := Decode(mustHex(t, tc.hex))
		if !errors.Is(err, tc.err) {
			t.Errorf("%q: expected %v, got %v", tc.hex, tc.err, err)
		}
	}
}

func TestRun(t *testing.T) {
	// irmovl $2,%eax; irmovl $3,%ebx; addl %eax,%ebx; halt
	code := mustHex(t, "30 F0 02 00 00 00 30 F3 03 00 00 00 60 03 00")
	c := New(64)
	if err := c.LoadCode(0, code); err != nil {
		t.Fatal(err)
	}
	if err := c.Run(100); err != nil {
		t.Fatal(err)
	}
	if c.Stat != StatusHLT || c.R[REBX] != 5 || c.Steps != 4 {
		t.Errorf("stat %s, %%ebx %d, steps %d", c.Stat, c.R[REBX], c.Steps)
	}

	var buf bytes.Buffer
	c.DumpRegisters(&buf)
	if !strings.Contains(buf.String(), "%ebx: 0x00000005 (5)") {
		t.Errorf("dump:\n%s", buf.String())
	}
}

func TestRunFaults(t *testing.T) {
	// jmp 0 loops forever
	c := New(16)
	c.LoadCode(0, mustHex(t, "70 00 00 00 00"))
	if err := c.Run(50); !errors.Is(err, ErrStepLimit) {
		t.Errorf("expected step limit, got %v", err)
	}

	// ret with an empty stack reads past memory
	c = New(16)
	c.LoadCode(0, mustHex(t, "90"))
	c.R[RESP] = 16
	if err := c.Run(10); !errors.Is(err, ErrBadAddress) || c.Stat != StatusADR {
		t.Errorf("expected bad address, got %v (%s)", err, c.Stat)
	}

	c = New(16)
	c.LoadCode(0, mustHex(t, "F0"))
	if err := c.Run(10); !errors.Is(err, ErrInvalidInstruction) || c.Stat != StatusINS {
		t.Errorf("expected invalid instruction, got %v (%s)", err, c.Stat)
	}

	if err := New(4).LoadCode(2, []byte{1, 2, 3}); err == nil {
		t.Error("oversized load accepted")
	}
}

func TestALUFlags(t *testing.T) {
	tests := []struct {
		fn         byte
		a, b       uint32
		result     uint32
		zf, sf, of bool
	}{
		{ALUADD, 1, 2, 3, false, false, false},
		{ALUADD, 1, 0x7FFFFFFF, 0x80000000, false, true, true},
		{ALUSUB, 1, 1, 0, true, false, false},
		{ALUSUB, 1, 0x80000000, 0x7FFFFFFF, false, false, true},
		{ALUAND, 0xF0, 0x0F, 0, true, false, false},
		{ALUXOR, 0xFFFFFFFF, 0, 0xFFFFFFFF, false, true, false},
	}
	for _, tc := range tests {
		c := New(0)
		c.R[REAX], c.R[REBX] = tc.a, tc.b
		inst := DecodedInstruction{Instruction: Instruction{Code: Pack(IALU, tc.fn)}, RA: REAX, RB: REBX}
		c.opALU(&inst)
		if c.R[REBX] != tc.result || c.ZF != tc.zf || c.SF != tc.sf || c.OF != tc.of {
			t.Errorf("fn %d %x,%x: got %x Z=%v S=%v O=%v", tc.fn, tc.a, tc.b, c.R[REBX], c.ZF, c.SF, c.OF)
		}
	}
}

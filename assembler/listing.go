package assembler

import (
	"encoding/hex"
	"fmt"
	"io"
)

// FormatLine renders one listing row. Encoded lines show the low 12 bits of
// the address and up to six bytes of code; other lines are indented to the
// same column.
func FormatLine(l *Line) string {
	if l.Type != LineInstruction {
		return fmt.Sprintf("%22s| %s", "", l.Source)
	}
	return fmt.Sprintf("  0x%03x: %-12s | %s", l.Addr&0xfff, hex.EncodeToString(l.Bytes()), l.Source)
}

// WriteListing writes a row per source line to w.
func (asm *Assembler) WriteListing(w io.Writer) error {
	for i := range asm.lines {
		if _, err := fmt.Fprintln(w, FormatLine(&asm.lines[i])); err != nil {
			return ioError("write listing", err)
		}
	}
	return nil
}

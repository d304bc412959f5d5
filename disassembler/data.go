package disassembler

import (
	"fmt"
	"strings"
)

// formatData renders bytes that are not reachable code. Whole 4-byte words
// on 4-byte boundaries become .long, everything else .byte.
func formatData(data []byte, baseAddr uint32) string {
	var sb strings.Builder
	for i := 0; i < len(data); {
		addr := baseAddr + uint32(i)
		if addr%4 == 0 && i+4 <= len(data) {
			v := uint32(data[i]) | uint32(data[i+1])<<8 | uint32(data[i+2])<<16 | uint32(data[i+3])<<24
			fmt.Fprintf(&sb, "    %-8s 0x%08x\n", ".long", v)
			i += 4
			continue
		}
		sb.WriteString(formatHexBytes(data[i : i+1]))
		i++
	}
	return sb.String()
}

// formatHexBytes formats a slice of bytes as .byte directives, one per line.
func formatHexBytes(data []byte) string {
	var sb strings.Builder
	for _, b := range data {
		fmt.Fprintf(&sb, "    %-8s 0x%02x\n", ".byte", b)
	}
	return sb.String()
}

package assembler

import (
	"bytes"
	"fmt"
	"io"
)

// zeros is an endless reader of zero bytes, used to fill gaps on writers
// that cannot seek.
type zeros struct{}

func (zeros) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}

// WriteImage writes the binary image to w. The image starts at address 0.
// A gap before a record is filled only if some record at or after it carries
// bytes, so a trailing .pos or .align never grows the output. Gaps are
// skipped with Seek when w is an io.Seeker and written as zeros otherwise.
// Pending relocations are applied first.
func (asm *Assembler) WriteImage(w io.Writer) error {
	if !asm.relocated && len(asm.relocs) > 0 {
		if err := asm.Relocate(); err != nil {
			return err
		}
	}

	last := -1
	for i := range asm.lines {
		if asm.lines[i].Type == LineInstruction && asm.lines[i].Len > 0 {
			last = i
		}
	}

	seeker, canSeek := w.(io.Seeker)
	var cursor int64
	for i := 0; i <= last; i++ {
		l := &asm.lines[i]
		if l.Type != LineInstruction || l.Len == 0 {
			continue
		}

		addr := int64(l.Addr)
		switch {
		case addr < cursor:
			return &LineError{
				Line: l.Number,
				Kind: ErrOverlap,
				Msg:  fmt.Sprintf("record at 0x%x overlaps bytes already written", l.Addr),
			}
		case addr > cursor:
			gap := addr - cursor
			if canSeek {
				if _, err := seeker.Seek(gap, io.SeekCurrent); err != nil {
					return ioError("seek image", err)
				}
			} else if _, err := io.CopyN(w, zeros{}, gap); err != nil {
				return ioError("write image", err)
			}
			cursor = addr
		}

		n, err := w.Write(l.Bytes())
		if err != nil {
			return ioError("write image", err)
		}
		cursor += int64(n)
	}
	return nil
}

// Image returns the binary image as a byte slice.
func (asm *Assembler) Image() ([]byte, error) {
	var buf bytes.Buffer
	if err := asm.WriteImage(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

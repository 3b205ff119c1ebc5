/*
Package fcb writes packed tile data as Motorola assembler FCB
statements.

Each packed pixel row becomes one FCB statement of $-prefixed hex
bytes. A tile's rows are written together as a block followed by a
blank line, with the mask block, when present, immediately before the
pixel block.
*/
package fcb

import (
	"fmt"
	"io"
	"strings"

	"github.com/bodgit/motorpng/tile"
)

type Encoder struct {
	w        io.Writer
	rowBytes int
}

// NewEncoder returns an Encoder writing to w, splitting packed tile
// data into statements of rowBytes bytes each.
func NewEncoder(w io.Writer, rowBytes int) *Encoder {
	return &Encoder{
		w:        w,
		rowBytes: rowBytes,
	}
}

// Comment writes the lines as a leading assembler comment block.
func (e *Encoder) Comment(lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintf(e.w, "; %s\n", line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(e.w)
	return err
}

// Encode writes a single packed tile, mask first if it has one.
func (e *Encoder) Encode(t tile.PackedTile) error {
	if t.Mask != nil {
		if err := e.block(t.Mask); err != nil {
			return err
		}
	}
	return e.block(t.Pixels)
}

func (e *Encoder) block(b []byte) error {
	for o := 0; o < len(b); o += e.rowBytes {
		end := o + e.rowBytes
		if end > len(b) {
			end = len(b)
		}
		if _, err := fmt.Fprintln(e.w, statement(b[o:end])); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(e.w)
	return err
}

func statement(b []byte) string {
	s := make([]string, len(b))
	for i, v := range b {
		s[i] = fmt.Sprintf("$%02X", v)
	}
	return "\tFCB " + strings.Join(s, ",")
}

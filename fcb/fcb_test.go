package fcb

import (
	"bytes"
	"testing"

	"github.com/bodgit/motorpng/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	b := new(bytes.Buffer)

	e := NewEncoder(b, 2)
	require.NoError(t, e.Encode(tile.PackedTile{
		Pixels: []byte{0xd2, 0x00, 0x0f, 0xf0},
	}))

	assert.Equal(t, "\tFCB $D2,$00\n\tFCB $0F,$F0\n\n", b.String())
}

func TestEncodeMask(t *testing.T) {
	b := new(bytes.Buffer)

	e := NewEncoder(b, 1)
	require.NoError(t, e.Encode(tile.PackedTile{
		Pixels: []byte{0x40, 0x00},
		Mask:   []byte{0x90, 0x00},
	}))

	// Mask block precedes the pixel block
	assert.Equal(t, "\tFCB $90\n\tFCB $00\n\n\tFCB $40\n\tFCB $00\n\n", b.String())
}

func TestComment(t *testing.T) {
	b := new(bytes.Buffer)

	e := NewEncoder(b, 1)
	require.NoError(t, e.Comment("Generated by motorpng", "Output bit depth 2"))

	assert.Equal(t, "; Generated by motorpng\n; Output bit depth 2\n\n", b.String())
}

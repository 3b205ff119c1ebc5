package tile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceGrid [][]int

func (g sliceGrid) Width() int {
	return len(g[0])
}

func (g sliceGrid) Height() int {
	return len(g)
}

func (g sliceGrid) IndexAt(x, y int) int {
	return g[y][x]
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 1, Depth1.MaxIndex())
	assert.Equal(t, 3, Depth2.MaxIndex())
	assert.Equal(t, 8, Depth1.PixelsPerByte())
	assert.Equal(t, 4, Depth2.PixelsPerByte())

	assert.Equal(t, 1, Depth1.RowBytes(8))
	assert.Equal(t, 2, Depth1.RowBytes(9))
	assert.Equal(t, 1, Depth2.RowBytes(4))
	assert.Equal(t, 2, Depth2.RowBytes(5))
}

func TestNormalize(t *testing.T) {
	for _, max := range []int{1, 3} {
		for v := 0; v < 10; v++ {
			n := normalize(v, max)

			if v <= max {
				assert.Equal(t, v, n)
			} else {
				assert.Equal(t, 0, n)
			}

			// Normalizing twice changes nothing
			assert.Equal(t, n, normalize(n, max))
		}
	}
}

func TestMaskValue(t *testing.T) {
	for _, max := range []int{1, 3} {
		for v := 0; v < 10; v++ {
			if v <= max {
				assert.Equal(t, 0, maskValue(v, max))
			} else {
				assert.Equal(t, max, maskValue(v, max))
			}
		}
	}
}

func TestExtract(t *testing.T) {
	grid := sliceGrid{
		{0, 1, 2, 3},
		{4, 5, 6, 7},
		{8, 9, 10, 11},
		{12, 13, 14, 15},
	}

	tiles, err := Extract(grid, Geometry{Width: 2, Height: 2})
	require.NoError(t, err)
	require.Len(t, tiles, 4)

	// Row-major order, reading the top-left cell of each tile
	expected := []int{0, 2, 8, 10}
	for i, tl := range tiles {
		assert.Equal(t, expected[i], tl.IndexAt(0, 0))
	}
}

func TestExtractPartial(t *testing.T) {
	grid := sliceGrid{
		{1, 1, 1, 1},
		{1, 1, 1, 1},
		{1, 1, 1, 1},
		{1, 1, 1, 1},
	}

	tiles, err := Extract(grid, Geometry{Width: 3, Height: 3})
	require.NoError(t, err)
	require.Len(t, tiles, 4)

	// The bottom-right tile only overlaps the grid at its top-left
	// cell, everything else reads as padding
	br := tiles[3]
	assert.Equal(t, 1, br.IndexAt(0, 0))
	assert.Equal(t, 0, br.IndexAt(1, 0))
	assert.Equal(t, 0, br.IndexAt(0, 1))
	assert.Equal(t, 0, br.IndexAt(2, 2))
}

func TestExtractBigTiles(t *testing.T) {
	grid := make(sliceGrid, 4)
	for y := range grid {
		grid[y] = make([]int, 8)
		for x := range grid[y] {
			grid[y][x] = y*8 + x
		}
	}

	tiles, err := Extract(grid, Geometry{Width: 2, Height: 2, BigWidth: 4, BigHeight: 4})
	require.NoError(t, err)
	require.Len(t, tiles, 8)

	// All four tiles of the first big tile before any tile of the
	// second
	var origins []int
	for _, tl := range tiles {
		origins = append(origins, tl.IndexAt(0, 0))
	}
	assert.Equal(t, []int{0, 2, 16, 18, 4, 6, 20, 22}, origins)
}

func TestExtractBadGeometry(t *testing.T) {
	grid := sliceGrid{{0}}

	tt := []struct {
		name string
		geom Geometry
	}{
		{"zero width", Geometry{Width: 0, Height: 8}},
		{"zero height", Geometry{Width: 8, Height: 0}},
		{"negative", Geometry{Width: -8, Height: 8}},
		{"big width only", Geometry{Width: 8, Height: 8, BigWidth: 16}},
		{"big height only", Geometry{Width: 8, Height: 8, BigHeight: 16}},
		{"not a multiple", Geometry{Width: 8, Height: 8, BigWidth: 12, BigHeight: 16}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Extract(grid, tc.geom)
			require.Error(t, err)

			var cerr *ConfigError
			assert.True(t, errors.As(err, &cerr))
		})
	}
}

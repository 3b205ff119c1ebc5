/*
Package tile slices an indexed-palette pixel grid into fixed size tiles
of packed low bit depth pixel data.

The grid is divided into tiles of a configured width and height and
walked in row-major order. Tiles can optionally be grouped into big
tiles; the grid is then walked in row-major order over the big tiles
with the tiles inside each big tile walked in row-major order, keeping
the tiles making up a compound sprite together in the output.

Each tile is packed independently at 1 or 2 bits per pixel. Pixels are
packed into bytes most significant bits first and every pixel row starts
a new byte, with any final partial byte padded with zero bits. A pixel
whose palette index is outside the range addressable at the chosen depth
packs as index zero; an optional mask plane packs the same pixels as the
maximum index and everything else as index zero.
*/
package tile

// Depth is the number of bits used to encode each pixel in the packed
// output.
type Depth int

const (
	Depth1 Depth = 1 + iota
	Depth2
)

// MaxIndex returns the highest palette index addressable at this depth.
func (d Depth) MaxIndex() int {
	return 1<<uint(d) - 1
}

// PixelsPerByte returns the number of pixels packed into each byte.
func (d Depth) PixelsPerByte() int {
	return 8 / int(d)
}

// RowBytes returns the number of bytes a packed pixel row of the given
// width occupies.
func (d Depth) RowBytes(width int) int {
	ppb := d.PixelsPerByte()
	return (width + ppb - 1) / ppb
}

func (d Depth) valid() bool {
	return d == Depth1 || d == Depth2
}

// Grid provides read access to a decoded indexed-palette image. Every
// cell holds a non-negative palette index. IndexAt is only queried
// within [0,Width())x[0,Height()).
type Grid interface {
	Width() int
	Height() int
	IndexAt(x, y int) int
}

// Geometry describes how a grid is divided into tiles. A zero big tile
// size disables big tile grouping, otherwise both big tile dimensions
// must be set and each must be an integer multiple of the corresponding
// tile dimension.
type Geometry struct {
	Width, Height       int
	BigWidth, BigHeight int
}

func (g Geometry) validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return &ConfigError{"tile dimensions must be positive"}
	}
	if (g.BigWidth != 0) != (g.BigHeight != 0) {
		return &ConfigError{"big tile dimensions must both be set"}
	}
	if g.BigWidth < 0 || g.BigHeight < 0 {
		return &ConfigError{"big tile dimensions must be positive"}
	}
	if g.BigWidth != 0 && (g.BigWidth%g.Width != 0 || g.BigHeight%g.Height != 0) {
		return &ConfigError{"big tile dimensions must be a multiple of the tile dimensions"}
	}
	return nil
}

// ConfigError reports an invalid conversion configuration. It is always
// returned before any tile has been processed.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "tile: " + e.Reason
}

// Tile is a rectangular view into a grid. It holds no pixel data of its
// own, only the extraction bounds.
type Tile struct {
	grid Grid
	x, y int
	w, h int
}

// Width returns the width of the tile in pixels.
func (t Tile) Width() int {
	return t.w
}

// Height returns the height of the tile in pixels.
func (t Tile) Height() int {
	return t.h
}

// IndexAt returns the palette index at the tile relative coordinates.
// Cells beyond the edge of the underlying grid read as index zero.
func (t Tile) IndexAt(x, y int) int {
	gx, gy := t.x+x, t.y+y
	if gx >= t.grid.Width() || gy >= t.grid.Height() {
		return 0
	}
	return t.grid.IndexAt(gx, gy)
}

func (t Tile) block(f func(int) int) [][]int {
	block := make([][]int, t.h)
	for y := range block {
		row := make([]int, t.w)
		for x := range row {
			row[x] = f(t.IndexAt(x, y))
		}
		block[y] = row
	}
	return block
}

// Extract divides the grid into tiles according to the geometry and
// returns them in traversal order; row-major across the grid, or
// row-major across the big tiles and then row-major within each big
// tile when big tiles are configured. Tiles overlapping the edge of
// the grid are still full size, reading index zero beyond the edge.
func Extract(g Grid, geom Geometry) ([]Tile, error) {
	if err := geom.validate(); err != nil {
		return nil, err
	}

	w, h := g.Width(), g.Height()

	bw, bh := geom.BigWidth, geom.BigHeight
	if bw == 0 {
		bw, bh = geom.Width, geom.Height
	}

	var tiles []Tile
	for by := 0; by < h; by += bh {
		for bx := 0; bx < w; bx += bw {
			for ty := by; ty < by+bh; ty += geom.Height {
				for tx := bx; tx < bx+bw; tx += geom.Width {
					tiles = append(tiles, Tile{grid: g, x: tx, y: ty, w: geom.Width, h: geom.Height})
				}
			}
		}
	}

	return tiles, nil
}

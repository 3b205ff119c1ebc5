package tile

// normalize clamps a palette index to the range addressable at the
// output depth. Out of range indices become index zero.
func normalize(v, max int) int {
	if v > max {
		return 0
	}
	return v
}

// maskValue derives the mask plane value for a palette index. Out of
// range indices become the maximum index, everything else index zero.
func maskValue(v, max int) int {
	if v > max {
		return max
	}
	return 0
}

// Pack serializes a block of pixel rows into bytes at the given depth.
// Pixels are packed most significant bits first; each row starts a new
// byte and any final partial byte in a row is padded with zero bits.
// Every value must already be within the range addressable at the
// depth, Pack does not re-validate.
func Pack(block [][]int, d Depth) []byte {
	ppb := d.PixelsPerByte()

	var out []byte
	for _, row := range block {
		for x := 0; x < len(row); x += ppb {
			var b byte
			for i := x; i < x+ppb; i++ {
				b <<= uint(d)
				if i < len(row) {
					b |= byte(row[i])
				}
			}
			out = append(out, b)
		}
	}

	return out
}

// PackedTile is the packed pixel data for a single tile, in row order,
// along with its mask plane if mask generation was requested.
type PackedTile struct {
	Pixels []byte
	Mask   []byte
}

// Convert divides the grid into tiles and packs each one at the given
// depth, optionally deriving a mask plane from the same pixels. The
// returned tiles follow the traversal order defined by the geometry.
func Convert(g Grid, geom Geometry, d Depth, mask bool) ([]PackedTile, error) {
	if !d.valid() {
		return nil, &ConfigError{"depth must be 1 or 2 bits per pixel"}
	}

	tiles, err := Extract(g, geom)
	if err != nil {
		return nil, err
	}

	max := d.MaxIndex()

	out := make([]PackedTile, 0, len(tiles))
	for _, t := range tiles {
		p := PackedTile{
			Pixels: Pack(t.block(func(v int) int { return normalize(v, max) }), d),
		}
		if mask {
			p.Mask = Pack(t.block(func(v int) int { return maskValue(v, max) }), d)
		}
		out = append(out, p)
	}

	return out, nil
}

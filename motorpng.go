/*
Package motorpng converts indexed-palette PNG sprite sheets into packed
low bit depth tile data suitable for 8-bit hardware.

A sheet is divided into fixed size tiles, optionally grouped into big
tiles to keep the pieces of a compound sprite together. Pixels are
packed at 1 or 2 bits per pixel and the result is written as Motorola
assembler FCB statements, a raw binary file, or individual PNG files
per tile. Colours outside of the range permitted by the output depth
become colour index zero; optionally generated masks convert out of
range colours to the maximum index and all other colours to index zero.
*/
package motorpng

import (
	"log"

	"github.com/bodgit/motorpng/tile"
)

// Format selects how converted tiles are written out.
type Format int

const (
	// FormatFCB writes tiles as Motorola assembler FCB statements
	FormatFCB Format = iota
	// FormatRaw writes tiles as a raw binary byte stream
	FormatRaw
	// FormatPNG writes each tile as an individual PNG file
	FormatPNG
)

// Config holds the conversion settings. Zero tile dimensions mean the
// whole image; zero big tile dimensions disable big tile grouping.
type Config struct {
	TileWidth, TileHeight       int
	BigTileWidth, BigTileHeight int
	Depth                       tile.Depth
	Mask                        bool
	Format                      Format
	Quantize                    bool
}

// geometry resolves the configured tile sizes against the image size,
// defaulting zero tile dimensions to the whole image and clamping tile
// dimensions to the big tile dimensions.
func (c Config) geometry(width, height int) tile.Geometry {
	g := tile.Geometry{
		Width:     c.TileWidth,
		Height:    c.TileHeight,
		BigWidth:  c.BigTileWidth,
		BigHeight: c.BigTileHeight,
	}

	if g.Width == 0 {
		g.Width = width
	}
	if g.Height == 0 {
		g.Height = height
	}

	if g.BigWidth > 0 && g.Width > g.BigWidth {
		g.Width = g.BigWidth
	}
	if g.BigHeight > 0 && g.Height > g.BigHeight {
		g.Height = g.BigHeight
	}

	return g
}

type Converter struct {
	config Config
	db     *ConvertDB
	logger *log.Logger
}

// New returns a Converter using the given configuration. db records
// converted files so unchanged ones are skipped when scanning and may
// be nil to convert unconditionally.
func New(config Config, db *ConvertDB, logger *log.Logger) *Converter {
	return &Converter{
		config: config,
		db:     db,
		logger: logger,
	}
}

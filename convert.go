package motorpng

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bodgit/motorpng/fcb"
	"github.com/bodgit/motorpng/tile"
	"github.com/ericpauley/go-quantize/quantize"
)

var errNotPaletted = errors.New("motorpng: image does not use an indexed palette")

// palettedGrid adapts an image.Paletted to the tile.Grid interface,
// translating from bounds-relative coordinates.
type palettedGrid struct {
	m *image.Paletted
}

func (g palettedGrid) Width() int {
	return g.m.Bounds().Dx()
}

func (g palettedGrid) Height() int {
	return g.m.Bounds().Dy()
}

func (g palettedGrid) IndexAt(x, y int) int {
	b := g.m.Bounds()
	return int(g.m.ColorIndexAt(b.Min.X+x, b.Min.Y+y))
}

func (c *Converter) decode(r io.Reader) (*image.Paletted, error) {
	m, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	if pm, ok := m.(*image.Paletted); ok {
		return pm, nil
	}

	if !c.config.Quantize {
		return nil, errNotPaletted
	}

	// Reduce to the largest palette the output depth can address
	q := quantize.MedianCutQuantizer{}
	b := m.Bounds()
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, c.config.Depth.MaxIndex()+1), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return pm, nil
}

func (c *Converter) info(infile string, g tile.Grid, geom tile.Geometry) []string {
	info := []string{
		"Generated by motorpng",
		time.Now().Format("2006/01/02 15:04:05"),
		fmt.Sprintf("Source image %s (%dx%d)", infile, g.Width(), g.Height()),
	}
	if geom.BigWidth > 0 {
		info = append(info, fmt.Sprintf("Big tile size %dx%d", geom.BigWidth, geom.BigHeight))
	}
	return append(info,
		fmt.Sprintf("Output size %dx%d", geom.Width, geom.Height),
		fmt.Sprintf("Output bit depth %d", c.config.Depth))
}

// ConvertFile converts the sprite sheet infile and writes the result
// to outfile in the configured format. For FormatPNG, outfile is used
// as the base name for the numbered per-tile files.
func (c *Converter) ConvertFile(infile, outfile string) error {
	f, err := os.Open(infile)
	if err != nil {
		return err
	}
	defer f.Close()

	pm, err := c.decode(f)
	if err != nil {
		return err
	}

	g := palettedGrid{pm}
	geom := c.config.geometry(g.Width(), g.Height())

	for _, line := range c.info(infile, g, geom) {
		c.logger.Println(line)
	}

	switch c.config.Format {
	case FormatFCB:
		return c.writeFCB(infile, g, geom, outfile)
	case FormatRaw:
		return c.writeRaw(g, geom, outfile)
	case FormatPNG:
		return c.writeTilePNGs(pm, geom, outfile)
	default:
		return fmt.Errorf("motorpng: unknown output format %d", c.config.Format)
	}
}

func (c *Converter) writeFCB(infile string, g tile.Grid, geom tile.Geometry, outfile string) error {
	tiles, err := tile.Convert(g, geom, c.config.Depth, c.config.Mask)
	if err != nil {
		return err
	}

	f, err := os.Create(outfile)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	e := fcb.NewEncoder(w, c.config.Depth.RowBytes(geom.Width))
	if err := e.Comment(c.info(infile, g, geom)...); err != nil {
		return err
	}
	for _, t := range tiles {
		if err := e.Encode(t); err != nil {
			return err
		}
	}

	return w.Flush()
}

func (c *Converter) writeRaw(g tile.Grid, geom tile.Geometry, outfile string) error {
	tiles, err := tile.Convert(g, geom, c.config.Depth, c.config.Mask)
	if err != nil {
		return err
	}

	f, err := os.Create(outfile)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	// Each mask immediately precedes its tile
	for _, t := range tiles {
		if t.Mask != nil {
			if _, err := w.Write(t.Mask); err != nil {
				return err
			}
		}
		if _, err := w.Write(t.Pixels); err != nil {
			return err
		}
	}

	return w.Flush()
}

func (c *Converter) writeTilePNGs(pm *image.Paletted, geom tile.Geometry, outfile string) error {
	if c.config.Mask {
		c.logger.Println("Ignoring mask option")
	}

	tiles, err := tile.Extract(palettedGrid{pm}, geom)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(outfile, filepath.Ext(outfile))

	for i, t := range tiles {
		// Tiles keep their original palette indices verbatim
		dup := image.NewPaletted(image.Rect(0, 0, t.Width(), t.Height()), pm.Palette)
		for y := 0; y < t.Height(); y++ {
			for x := 0; x < t.Width(); x++ {
				dup.SetColorIndex(x, y, uint8(t.IndexAt(x, y)))
			}
		}

		if err := func() error {
			f, err := os.Create(fmt.Sprintf("%s_%d.png", base, i))
			if err != nil {
				return err
			}
			defer f.Close()

			return png.Encode(f, dup)
		}(); err != nil {
			return err
		}
	}

	return nil
}

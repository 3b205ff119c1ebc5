package main

import (
	"errors"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"

	"github.com/bodgit/motorpng"
	"github.com/bodgit/motorpng/tile"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func tileFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "width",
			Aliases: []string{"x"},
			Usage:   "width of each tile, 0 for the whole image",
		},
		&cli.IntFlag{
			Name:    "height",
			Aliases: []string{"y"},
			Usage:   "height of each tile, 0 for the whole image",
		},
		&cli.IntFlag{
			Name:    "bigwidth",
			Aliases: []string{"w"},
			Usage:   "width of big tiles",
		},
		&cli.IntFlag{
			Name:    "bigheight",
			Aliases: []string{"z"},
			Usage:   "height of big tiles",
		},
		&cli.IntFlag{
			Name:    "bitdepth",
			Aliases: []string{"b"},
			Value:   2,
			Usage:   "bits per pixel in output",
		},
		&cli.BoolFlag{
			Name:    "mask",
			Aliases: []string{"m"},
			Usage:   "generate masks",
		},
		&cli.BoolFlag{
			Name:    "quantize",
			Aliases: []string{"q"},
			Usage:   "quantize images without an indexed palette",
		},
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func newConfig(c *cli.Context, format motorpng.Format) motorpng.Config {
	return motorpng.Config{
		TileWidth:     c.Int("width"),
		TileHeight:    c.Int("height"),
		BigTileWidth:  c.Int("bigwidth"),
		BigTileHeight: c.Int("bigheight"),
		Depth:         tile.Depth(c.Int("bitdepth")),
		Mask:          c.Bool("mask"),
		Format:        format,
		Quantize:      c.Bool("quantize"),
	}
}

func parseFormat(s string) (motorpng.Format, error) {
	switch s {
	case "fcb":
		return motorpng.FormatFCB, nil
	case "raw":
		return motorpng.FormatRaw, nil
	case "png":
		return motorpng.FormatPNG, nil
	}
	return 0, errors.New("format must be one of fcb, raw or png")
}

func main() {
	app := cli.NewApp()

	app.Name = "motorpng"
	app.Usage = "PNG tile sheet to packed pixel conversion utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "convert",
			Usage:     "Convert a single sprite sheet",
			ArgsUsage: "FILE",
			Flags: append(tileFlags(),
				&cli.StringFlag{
					Name:    "fcb",
					Aliases: []string{"f"},
					Usage:   "output tiles as Motorola FCB statements to `FILE`",
				},
				&cli.StringFlag{
					Name:    "raw",
					Aliases: []string{"r"},
					Usage:   "output tiles to binary `FILE`",
				},
				&cli.StringFlag{
					Name:    "png",
					Aliases: []string{"p"},
					Usage:   "output tiles as separate PNG files named `BASE`_n.png",
				},
			),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				var format motorpng.Format
				var outfile string
				n := 0
				for _, f := range []struct {
					flag   string
					format motorpng.Format
				}{
					{"fcb", motorpng.FormatFCB},
					{"raw", motorpng.FormatRaw},
					{"png", motorpng.FormatPNG},
				} {
					if c.String(f.flag) != "" {
						format, outfile = f.format, c.String(f.flag)
						n++
					}
				}
				if n != 1 {
					return cli.NewExitError("exactly one of --fcb, --raw or --png is required", 1)
				}

				m := motorpng.New(newConfig(c, format), nil, newLogger(c))

				if err := m.ConvertFile(c.Args().First(), outfile); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "scan",
			Usage:     "Convert every sprite sheet under a directory",
			ArgsUsage: "DIRECTORY",
			Flags: append(tileFlags(),
				&cli.StringFlag{
					Name:  "format",
					Value: "fcb",
					Usage: "output format, one of fcb, raw or png",
				},
				&cli.StringFlag{
					Name:  "db",
					Usage: "path to conversion database, for skipping unchanged files",
				},
			),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				format, err := parseFormat(c.String("format"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				var db *motorpng.ConvertDB
				if path := c.String("db"); path != "" {
					db, err = motorpng.NewConvertDB(path)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					defer db.Close()
				}

				m := motorpng.New(newConfig(c, format), db, newLogger(c))

				if err := m.Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

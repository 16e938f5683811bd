package cmd

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/imui/pkg/rendering"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render the demo scene to an image",
		Long: `Render the demo scene with the software rasterizer and write the
last drawn frame to an image file. The format follows the file extension:
.png (default), .bmp or .tiff.

Flags:
  --out FILE       Output file (default: imui.png)
  --frames N       Frames to run after the clicks (default: 1)
  --size WxH       Screen size in pixels (default: 640x240)
  --click X,Y      Tap at X,Y before the final frames (repeatable)

Usage:
  imui render --out demo.png
  imui render --click 40,60 --click 40,60 --out clicked.png`,
		Usage: "imui render [--out FILE] [--frames N] [--size WxH] [--click X,Y]",
		Run:   runRender,
	})
}

func runRender(args []string) error {
	opts, err := parseSceneArgs(args)
	if err != nil {
		return err
	}
	out := "imui.png"
	for i := 0; i < len(opts.rest); i++ {
		switch opts.rest[i] {
		case "--out", "-o":
			if i+1 >= len(opts.rest) {
				return fmt.Errorf("--out requires a file path")
			}
			out = opts.rest[i+1]
			i++
		default:
			return fmt.Errorf("unknown flag %q\n\nUsage: imui render [--out FILE] [--frames N] [--size WxH] [--click X,Y]", opts.rest[i])
		}
	}

	backend := rendering.NewRasterBackend(opts.width, opts.height)
	ctx, err := runScene(backend, opts)
	if err != nil {
		return err
	}
	defer ctx.Destroy()

	if err := writeImage(out, backend.Image()); err != nil {
		return err
	}
	stats := ctx.Stats()
	fmt.Printf("Wrote %s (%dx%d, frame %d, %d widgets)\n", out, opts.width, opts.height, stats.Frame, stats.Live)
	return nil
}

func writeImage(path string, img image.Image) error {
	var encode func(io.Writer, image.Image) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", "":
		encode = png.Encode
	case ".bmp":
		encode = bmp.Encode
	case ".tif", ".tiff":
		encode = func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
		}
	default:
		return fmt.Errorf("unsupported image format %q (use .png, .bmp or .tiff)", filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

package mcmap

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

const maxGIFColors = 256

func uniqueColors(m image.Image, max int) (color.Palette, bool) {
	seen := make(map[color.Color]struct{})
	p := make(color.Palette, 0, max)
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := m.At(x, y)
			if _, ok := seen[c]; ok {
				continue
			}
			if len(p) == max {
				return nil, false
			}
			seen[c] = struct{}{}
			p = append(p, c)
		}
	}
	return p, true
}

// paletted converts m to a paletted image. Mosaics rarely use more than the
// 256 colors a GIF can hold, in which case the colors are kept exactly;
// otherwise a palette is chosen by median cut.
func paletted(m image.Image) *image.Paletted {
	if pm, ok := m.(*image.Paletted); ok && len(pm.Palette) <= maxGIFColors {
		return pm
	}

	b := m.Bounds()
	p, ok := uniqueColors(m, maxGIFColors)
	if !ok {
		q := quantize.MedianCutQuantizer{}
		p = q.Quantize(make(color.Palette, 0, maxGIFColors), m)
	}

	pm := image.NewPaletted(b, p)
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return pm
}

// Encode writes m to w in the format named by ext, such as ".png".
func Encode(w io.Writer, m image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, m)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, m, &jpeg.Options{Quality: 90})
	case ".gif":
		return gif.Encode(w, paletted(m), nil)
	case ".bmp":
		return bmp.Encode(w, m)
	case ".tif", ".tiff":
		return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("unsupported image format %q", ext)
}

// Save writes m to file, choosing the format from the file extension.
// Missing directories are created.
func Save(file string, m image.Image) error {
	ext := filepath.Ext(file)
	// Fail before creating anything
	if err := Encode(io.Discard, image.NewNRGBA(image.Rect(0, 0, 1, 1)), ext); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := Encode(f, m, ext); err != nil {
		f.Close()
		os.Remove(file)
		return fmt.Errorf("%s: %w", file, err)
	}

	return f.Close()
}

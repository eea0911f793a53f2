package mapitem

import (
	"image"
	"image/color"
	"io"

	"github.com/bodgit/mcmap/palette"
)

func init() {
	// Map items are gzip streams
	image.RegisterFormat("mcmap", "\x1f\x8b", decodeImage, decodeConfig)
}

// Image renders the map with the palette p. Pixels with a transparent
// palette entry stay transparent.
func (it *Item) Image(p *palette.Palette) (*image.NRGBA, error) {
	if len(it.Colors) < NumPixels {
		return nil, ErrIncompleteBuffer
	}

	m := image.NewNRGBA(image.Rect(0, 0, Width, Height))
	for i, b := range it.Colors[:NumPixels] {
		c := p.Color(b)
		m.Pix[i*4+0] = c.R
		m.Pix[i*4+1] = c.G
		m.Pix[i*4+2] = c.B
		m.Pix[i*4+3] = c.A
	}

	return m, nil
}

func decodeImage(r io.Reader) (image.Image, error) {
	it, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return it.Image(&palette.Default)
}

func decodeConfig(r io.Reader) (image.Config, error) {
	if _, err := Decode(r); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      Width,
		Height:     Height,
	}, nil
}

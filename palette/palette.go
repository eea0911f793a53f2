/*
Package palette implements the map color palette.

Each map pixel stores a single byte. The upper six bits select one of 64 base
colors and the lower two bits select a shade of that color, so a table of at
most 64 base colors expands into exactly 256 palette entries. Base colors
that are not defined expand into fully transparent entries.
*/
package palette

import "image/color"

const (
	numBaseColors = 64
	numShades     = 4

	// Size is the number of entries in a Palette
	Size = numBaseColors * numShades
)

// Brightness multipliers for each shade, out of 255
var multipliers = [numShades]uint16{180, 220, 255, 135}

// BaseColors maps a base color index (0-63) to its color.
type BaseColors map[uint8]color.NRGBA

// Palette has a color for every possible value of a map pixel.
type Palette [Size]color.NRGBA

// Generate expands the base colors into a full palette.
func Generate(base BaseColors) Palette {
	var p Palette
	for i := 0; i < numBaseColors; i++ {
		c, ok := base[uint8(i)]
		if !ok {
			// Zero value is transparent black
			continue
		}
		for j, m := range multipliers {
			p[i*numShades+j] = color.NRGBA{
				R: uint8(uint16(c.R) * m / 255),
				G: uint8(uint16(c.G) * m / 255),
				B: uint8(uint16(c.B) * m / 255),
				A: c.A,
			}
		}
	}
	return p
}

// Color returns the palette entry for the raw pixel value b.
func (p *Palette) Color(b byte) color.NRGBA {
	return p[b]
}

// ColorPalette returns p as a color.Palette, suitable for image.Paletted.
func (p *Palette) ColorPalette() color.Palette {
	cp := make(color.Palette, Size)
	for i := range p {
		cp[i] = p[i]
	}
	return cp
}

// Default is the palette generated from BaseColors2699.
var Default = Generate(BaseColors2699)

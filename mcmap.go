/*
Package mcmap is a library for turning map item files from a voxel-world
save into images, either one image per map or a single mosaic stitched
together from many maps by their world coordinates.
*/
package mcmap

import (
	"image"

	"github.com/bodgit/mcmap/mapitem"
	"github.com/bodgit/mcmap/palette"
	"github.com/sirupsen/logrus"
)

type Mapper struct {
	logger  logrus.FieldLogger
	palette *palette.Palette
}

func New(logger logrus.FieldLogger) *Mapper {
	return &Mapper{
		logger:  logger,
		palette: &palette.Default,
	}
}

// Palette returns the palette used to render maps.
func (m *Mapper) Palette() *palette.Palette {
	return m.palette
}

// Image renders a single map.
func (m *Mapper) Image(it *mapitem.Item) (image.Image, error) {
	return it.Image(m.palette)
}

package mcmap

import (
	"errors"
	"fmt"
	"image"
	"iter"
	"strings"

	"github.com/bodgit/mcmap/mapitem"
	"github.com/bodgit/mcmap/palette"
)

// Largest canvas that will be allocated, 4 GiB of pixel data
const maxCanvasPixels = 1 << 30

var (
	// ErrNoMaps is returned when filtering leaves nothing to draw
	ErrNoMaps = errors.New("no map files after filtering")
	// ErrInvalidRect is returned for inverted rectangles
	ErrInvalidRect = errors.New("invalid coordinates")
	// ErrTooLarge is returned when the canvas would be too big to allocate
	ErrTooLarge = errors.New("image too large")
	// ErrInvalidScale is returned for scales outside 0 to mapitem.MaxScale
	ErrInvalidScale = errors.New("invalid scale")
)

func validScale(scale int8) bool {
	return scale >= 0 && scale <= mapitem.MaxScale
}

// GeometryError is returned when a mosaic cannot be laid out.
type GeometryError struct {
	Rect mapitem.Rect
	Err  error
}

func (e *GeometryError) Error() string {
	if e.Err == ErrNoMaps || e.Err == ErrInvalidScale {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Rect)
}

func (e *GeometryError) Unwrap() error {
	return e.Err
}

// Filter selects maps by scale and, optionally, by dimension.
type Filter struct {
	Scale int8
	// Dimension is compared case-insensitively with the readable
	// dimension, such as "the nether". Empty matches every dimension.
	Dimension string
}

// Match reports whether the map passes the filter.
func (f Filter) Match(it *mapitem.Item) bool {
	if it.Scale != f.Scale {
		return false
	}
	if f.Dimension != "" && !strings.EqualFold(it.PrettyDimension(), f.Dimension) {
		return false
	}
	return true
}

// CompositeOptions control Composite.
type CompositeOptions struct {
	Filter
	// Rect is the area of the world to draw. If nil the area covered by
	// all maps passing the filter is used.
	Rect *mapitem.Rect
	// Palette defaults to palette.Default
	Palette *palette.Palette
	// Progress, if set, is called once for every map passing the filter
	Progress func()
}

// Composite draws every map passing the filter onto a single image in the
// order given. Where maps overlap the later map wins, except where its
// pixels are transparent.
func Composite(items []*mapitem.Item, opts CompositeOptions) (*image.NRGBA, error) {
	var (
		filtered []*mapitem.Item
		bounds   mapitem.Rect
	)
	for _, it := range items {
		if !opts.Match(it) {
			continue
		}
		if len(filtered) == 0 {
			bounds = it.Bounds()
		} else {
			bounds = bounds.Union(it.Bounds())
		}
		filtered = append(filtered, it)
	}
	if len(filtered) == 0 {
		return nil, &GeometryError{Err: ErrNoMaps}
	}

	if opts.Rect != nil {
		bounds = *opts.Rect
	}

	p := opts.Palette
	if p == nil {
		p = &palette.Default
	}

	c, err := newCanvas(bounds, opts.Scale)
	if err != nil {
		return nil, err
	}

	for _, it := range filtered {
		if _, err := c.draw(it, p); err != nil {
			return nil, err
		}
		if opts.Progress != nil {
			opts.Progress()
		}
	}

	return c.img, nil
}

type canvas struct {
	img    *image.NRGBA
	rect   mapitem.Rect
	factor int64
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	return -floorDiv(-a, b)
}

func newCanvas(r mapitem.Rect, scale int8) (*canvas, error) {
	if !validScale(scale) {
		return nil, &GeometryError{Rect: r, Err: ErrInvalidScale}
	}
	if !r.Valid() {
		return nil, &GeometryError{Rect: r, Err: ErrInvalidRect}
	}

	factor := int64(1) << uint(scale)
	w, h := ceilDiv(r.Width(), factor), ceilDiv(r.Height(), factor)
	if w > maxCanvasPixels/h {
		return nil, &GeometryError{Rect: r, Err: ErrTooLarge}
	}

	return &canvas{
		img:    image.NewNRGBA(image.Rect(0, 0, int(w), int(h))),
		rect:   r,
		factor: factor,
	}, nil
}

// draw renders it onto the canvas if it overlaps, skipping transparent
// pixels and anything falling outside the canvas
func (c *canvas) draw(it *mapitem.Item, p *palette.Palette) (bool, error) {
	if !it.Bounds().Overlaps(c.rect) {
		return false, nil
	}

	src, err := it.Image(p)
	if err != nil {
		return false, err
	}

	ox := int(floorDiv(int64(it.Left())-int64(c.rect.Left), c.factor))
	oy := int(floorDiv(int64(it.Top())-int64(c.rect.Top), c.factor))

	dst := c.img
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	for y := 0; y < mapitem.Height; y++ {
		dy := oy + y
		if dy < 0 || dy >= h {
			continue
		}
		for x := 0; x < mapitem.Width; x++ {
			dx := ox + x
			if dx < 0 || dx >= w {
				continue
			}
			si := src.PixOffset(x, y)
			if src.Pix[si+3] == 0 {
				continue
			}
			di := dst.PixOffset(dx, dy)
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}

	return true, nil
}

// Project is a mosaic of map files. Files are decoded once to work out the
// area they cover and again when drawn, so only one map is held in memory
// at a time.
type Project struct {
	Filter
	Rect mapitem.Rect
	Maps *Maps

	mapper *Mapper
}

// NewProject filters maps and works out the area they cover. Files that
// fail to decode are logged and left out.
func (m *Mapper) NewProject(maps iter.Seq2[*mapitem.Item, error], f Filter) (*Project, error) {
	if !validScale(f.Scale) {
		return nil, &GeometryError{Err: ErrInvalidScale}
	}

	var (
		paths  []string
		bounds mapitem.Rect
	)
	for it, err := range maps {
		if err != nil {
			m.logger.WithError(err).Warn("Skipping map")
			continue
		}
		if !f.Match(it) {
			continue
		}
		if len(paths) == 0 {
			bounds = it.Bounds()
		} else {
			bounds = bounds.Union(it.Bounds())
		}
		paths = append(paths, it.Path)
	}
	if len(paths) == 0 {
		return nil, &GeometryError{Err: ErrNoMaps}
	}

	m.logger.WithField("area", bounds).Debugf("%d map files after filtering", len(paths))

	return &Project{
		Filter: f,
		Rect:   bounds,
		Maps:   FromPaths(paths),
		mapper: m,
	}, nil
}

// Edges optionally override the edges of a project's area.
type Edges struct {
	Left, Top, Right, Bottom *int32
}

// Restrict replaces any edge set in e and warns about edges that do not
// fall on a pixel boundary.
func (p *Project) Restrict(e Edges) error {
	r := p.Rect
	for _, edge := range []struct {
		v   *int32
		dst *int32
	}{
		{e.Left, &r.Left},
		{e.Top, &r.Top},
		{e.Right, &r.Right},
		{e.Bottom, &r.Bottom},
	} {
		if edge.v != nil {
			*edge.dst = *edge.v
		}
	}
	if !r.Valid() {
		return &GeometryError{Rect: r, Err: ErrInvalidRect}
	}

	for _, w := range CheckGrid(r, p.Scale) {
		p.mapper.logger.WithField("edge", w.Edge).Warn(w.String())
	}

	p.Rect = r

	return nil
}

// Size returns the size in pixels of the finished image.
func (p *Project) Size() (int, int) {
	factor := int64(1) << uint(p.Scale)
	return int(ceilDiv(p.Rect.Width(), factor)), int(ceilDiv(p.Rect.Height(), factor))
}

// Render draws every map in the project. progress, if not nil, is called
// once for every map file.
func (p *Project) Render(progress func()) (*image.NRGBA, error) {
	c, err := newCanvas(p.Rect, p.Scale)
	if err != nil {
		return nil, err
	}

	for it, err := range p.Maps.All() {
		if progress != nil {
			progress()
		}
		if err != nil {
			p.mapper.logger.WithError(err).Warn("Skipping map")
			continue
		}
		drawn, err := c.draw(it, p.mapper.palette)
		if err != nil {
			return nil, fmt.Errorf("could not draw %s: %w", it.Path, err)
		}
		if drawn {
			p.mapper.logger.WithField("path", it.Path).Debugf("Added %s", it.Bounds())
		}
	}

	return c.img, nil
}

// GridWarning describes a coordinate that is not on a pixel boundary.
type GridWarning struct {
	Edge  string
	Value int32
	// Nearest valid values either side
	Lower, Upper int32
}

func (w GridWarning) String() string {
	return fmt.Sprintf("The %s coordinate %d is not on the edge of a pixel, which may give unexpected results. Try %d or %d instead.", w.Edge, w.Value, w.Lower, w.Upper)
}

// CheckGrid returns a warning for each edge of r that does not line up with
// the pixel grid of maps at the given scale. Left and top edges must be a
// multiple of 2^scale, right and bottom edges one less than a multiple.
// There are no warnings for an invalid scale.
func CheckGrid(r mapitem.Rect, scale int8) []GridWarning {
	if !validScale(scale) {
		return nil
	}

	factor := int64(1) << uint(scale)

	var warnings []GridWarning
	for _, edge := range []struct {
		name      string
		value     int32
		remainder int64
	}{
		{"left", r.Left, 0},
		{"top", r.Top, 0},
		{"right", r.Right, factor - 1},
		{"bottom", r.Bottom, factor - 1},
	} {
		v := int64(edge.value)
		// Euclidean remainder
		rem := v - edge.remainder - floorDiv(v-edge.remainder, factor)*factor
		if rem == 0 {
			continue
		}
		lower := v - rem
		warnings = append(warnings, GridWarning{
			Edge:  edge.name,
			Value: edge.value,
			Lower: int32(lower),
			Upper: int32(lower + factor),
		})
	}

	return warnings
}

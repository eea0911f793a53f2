package mcmap

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/mcmap/mapitem"
	"github.com/bodgit/mcmap/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int32ptr(v int32) *int32 {
	return &v
}

func transparent(c color.Color) bool {
	_, _, _, a := c.RGBA()
	return a == 0
}

func TestComposite(t *testing.T) {
	a := solidItem(0, 0, 0, mapitem.Overworld, green)
	b := solidItem(64, 0, 0, mapitem.Overworld, red)

	img, err := Composite([]*mapitem.Item{a, b}, CompositeOptions{})
	require.NoError(t, err)

	// -64 to 127 across, -64 to 63 down
	assert.Equal(t, image.Rect(0, 0, 192, 128), img.Bounds())

	assert.Equal(t, palette.Default.Color(green), img.At(10, 10))
	// Overlap, the later map wins
	assert.Equal(t, palette.Default.Color(red), img.At(100, 10))
	assert.Equal(t, palette.Default.Color(red), img.At(191, 127))

	img, err = Composite([]*mapitem.Item{b, a}, CompositeOptions{})
	require.NoError(t, err)
	assert.Equal(t, palette.Default.Color(green), img.At(100, 10))
	assert.Equal(t, palette.Default.Color(red), img.At(150, 10))
}

func TestCompositeTransparent(t *testing.T) {
	a := solidItem(0, 0, 0, mapitem.Overworld, green)
	b := solidItem(0, 0, 0, mapitem.Overworld, 0)
	b.Colors[0] = red

	img, err := Composite([]*mapitem.Item{a, b}, CompositeOptions{})
	require.NoError(t, err)

	assert.Equal(t, palette.Default.Color(red), img.At(0, 0))
	assert.Equal(t, palette.Default.Color(green), img.At(1, 0))
	assert.Equal(t, palette.Default.Color(green), img.At(127, 127))
}

func TestCompositeGap(t *testing.T) {
	a := solidItem(0, 0, 0, mapitem.Overworld, green)
	b := solidItem(256, 0, 0, mapitem.Overworld, red)

	img, err := Composite([]*mapitem.Item{a, b}, CompositeOptions{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 384, 128), img.Bounds())
	assert.True(t, transparent(img.At(200, 64)))
	assert.Equal(t, palette.Default.Color(red), img.At(300, 64))
}

func TestCompositeFilter(t *testing.T) {
	items := []*mapitem.Item{
		solidItem(0, 0, 0, mapitem.Overworld, green),
		solidItem(1024, 1024, 0, mapitem.TheNether, red),
		solidItem(0, 0, 1, mapitem.TheNether, white),
	}

	img, err := Composite(items, CompositeOptions{Filter: Filter{Dimension: "the nether"}})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 128, 128), img.Bounds())
	assert.Equal(t, palette.Default.Color(red), img.At(0, 0))

	img, err = Composite(items, CompositeOptions{Filter: Filter{Scale: 1}})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 128, 128), img.Bounds())
	assert.Equal(t, palette.Default.Color(white), img.At(64, 64))

	var progress int
	_, err = Composite(items, CompositeOptions{Progress: func() { progress++ }})
	require.NoError(t, err)
	assert.Equal(t, 2, progress)
}

func TestCompositeNoMaps(t *testing.T) {
	items := []*mapitem.Item{
		solidItem(0, 0, 0, mapitem.Overworld, green),
	}

	for _, opts := range []CompositeOptions{
		{Filter: Filter{Scale: 3}},
		{Filter: Filter{Dimension: "The End"}},
	} {
		_, err := Composite(items, opts)
		assert.ErrorIs(t, err, ErrNoMaps)

		var gerr *GeometryError
		assert.True(t, errors.As(err, &gerr))
	}

	_, err := Composite(nil, CompositeOptions{})
	assert.ErrorIs(t, err, ErrNoMaps)
}

func TestCompositeRect(t *testing.T) {
	items := []*mapitem.Item{
		solidItem(0, 0, 0, mapitem.Overworld, green),
	}

	// Only the bottom right quarter of the map
	img, err := Composite(items, CompositeOptions{Rect: &mapitem.Rect{Left: 0, Top: 0, Right: 99, Bottom: 99}})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())
	assert.Equal(t, palette.Default.Color(green), img.At(63, 63))
	assert.True(t, transparent(img.At(64, 64)))

	// Nothing overlaps
	img, err = Composite(items, CompositeOptions{Rect: &mapitem.Rect{Left: 1000, Top: 1000, Right: 1009, Bottom: 1009}})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 10), img.Bounds())
	for _, v := range img.Pix {
		if v != 0 {
			t.Fatal("canvas is not empty")
		}
	}

	_, err = Composite(items, CompositeOptions{Rect: &mapitem.Rect{Left: 10, Top: 0, Right: 0, Bottom: 10}})
	assert.ErrorIs(t, err, ErrInvalidRect)

	_, err = Composite(items, CompositeOptions{Rect: &mapitem.Rect{Left: -2000000000, Top: -2000000000, Right: 2000000000, Bottom: 2000000000}})
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestCompositeScaled(t *testing.T) {
	it := solidItem(0, 0, 2, mapitem.Overworld, green)
	it.Colors[0] = red

	img, err := Composite([]*mapitem.Item{it}, CompositeOptions{Filter: Filter{Scale: 2}})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 128, 128), img.Bounds())
	assert.Equal(t, palette.Default.Color(red), img.At(0, 0))

	// A rect that is not on the pixel grid shifts the map by a pixel
	img, err = Composite([]*mapitem.Item{it}, CompositeOptions{
		Filter: Filter{Scale: 2},
		Rect:   &mapitem.Rect{Left: -262, Top: -256, Right: 255, Bottom: 255},
	})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 130, 128), img.Bounds())
	assert.True(t, transparent(img.At(0, 0)))
	assert.Equal(t, palette.Default.Color(red), img.At(1, 0))
}

func TestCheckGrid(t *testing.T) {
	assert.Empty(t, CheckGrid(mapitem.Rect{Left: 3, Top: -3, Right: 4, Bottom: -4}, 0))
	assert.Empty(t, CheckGrid(mapitem.Rect{Left: -128, Top: -128, Right: 127, Bottom: 127}, 1))

	got := CheckGrid(mapitem.Rect{Left: 3, Top: -3, Right: 4, Bottom: -4}, 2)
	assert.Equal(t, []GridWarning{
		{Edge: "left", Value: 3, Lower: 0, Upper: 4},
		{Edge: "top", Value: -3, Lower: -4, Upper: 0},
		{Edge: "right", Value: 4, Lower: 3, Upper: 7},
		{Edge: "bottom", Value: -4, Lower: -5, Upper: -1},
	}, got)
	assert.Contains(t, got[0].String(), "Try 0 or 4 instead")

	got = CheckGrid(mapitem.Rect{Left: 0, Top: 0, Right: 127, Bottom: 100}, 3)
	assert.Equal(t, []GridWarning{
		{Edge: "bottom", Value: 100, Lower: 95, Upper: 103},
	}, got)
}

func TestProject(t *testing.T) {
	dir := t.TempDir()
	writeMap(t, dir, "map_0.dat", solidItem(0, 0, 1, mapitem.Overworld, green))
	writeMap(t, dir, "map_1.dat", solidItem(256, 0, 1, mapitem.Overworld, red))
	writeMap(t, dir, "map_2.dat", solidItem(0, 0, 0, mapitem.Overworld, white))
	writeMap(t, dir, "map_3.dat", solidItem(0, 0, 1, mapitem.TheEnd, white))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "map_4.dat"), []byte{0x1f, 0x8b}, 0o644))

	m, hook := newTestMapper(t)

	maps, err := m.Locate(dir, false)
	require.NoError(t, err)
	maps.Sort(SortByName)
	require.Equal(t, 5, maps.Len())

	p, err := m.NewProject(maps.All(), Filter{Scale: 1, Dimension: "Overworld"})
	require.NoError(t, err)
	assert.Equal(t, mapitem.Rect{Left: -128, Top: -128, Right: 383, Bottom: 127}, p.Rect)
	assert.Equal(t, 2, p.Maps.Len())
	assert.Equal(t, 1, warnCount(hook))

	w, h := p.Size()
	assert.Equal(t, 256, w)
	assert.Equal(t, 128, h)

	var progress int
	img, err := p.Render(func() { progress++ })
	require.NoError(t, err)
	assert.Equal(t, 2, progress)
	assert.Equal(t, image.Rect(0, 0, 256, 128), img.Bounds())
	assert.Equal(t, palette.Default.Color(green), img.At(10, 10))
	assert.Equal(t, palette.Default.Color(red), img.At(200, 10))
}

func TestProjectRestrict(t *testing.T) {
	dir := t.TempDir()
	writeMap(t, dir, "map_0.dat", solidItem(0, 0, 1, mapitem.Overworld, green))

	m, hook := newTestMapper(t)

	maps, err := m.Locate(dir, false)
	require.NoError(t, err)

	p, err := m.NewProject(maps.All(), Filter{Scale: 1})
	require.NoError(t, err)

	require.NoError(t, p.Restrict(Edges{Left: int32ptr(0), Bottom: int32ptr(63)}))
	assert.Equal(t, mapitem.Rect{Left: 0, Top: -128, Right: 127, Bottom: 63}, p.Rect)
	assert.Equal(t, 0, warnCount(hook))

	require.NoError(t, p.Restrict(Edges{Left: int32ptr(1)}))
	assert.Equal(t, 1, warnCount(hook))

	img, err := p.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 96), img.Bounds())

	err = p.Restrict(Edges{Left: int32ptr(500)})
	assert.ErrorIs(t, err, ErrInvalidRect)
	// Unchanged on error
	assert.Equal(t, int32(1), p.Rect.Left)
}

func TestNewProjectNoMaps(t *testing.T) {
	m, _ := newTestMapper(t)

	_, err := m.NewProject(FromPaths(nil).All(), Filter{})
	assert.ErrorIs(t, err, ErrNoMaps)
}

func TestInvalidScale(t *testing.T) {
	r := mapitem.Rect{Left: 1, Top: 1, Right: 2, Bottom: 2}
	for _, scale := range []int8{-1, mapitem.MaxScale + 1, 100} {
		assert.Nil(t, CheckGrid(r, scale), "scale %d", scale)

		it := solidItem(0, 0, scale, mapitem.Overworld, green)
		_, err := Composite([]*mapitem.Item{it}, CompositeOptions{Filter: Filter{Scale: scale}})
		assert.ErrorIs(t, err, ErrInvalidScale, "scale %d", scale)

		m, _ := newTestMapper(t)
		_, err = m.NewProject(FromPaths(nil).All(), Filter{Scale: scale})
		assert.ErrorIs(t, err, ErrInvalidScale, "scale %d", scale)
	}
}

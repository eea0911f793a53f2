/*
Package mapitem implements a decoder and encoder for map item files.

A map item is a gzip compressed NBT record, usually named map_<n>.dat. It
describes a 128 by 128 pixel snapshot of the world centered on a given
coordinate. Each pixel covers a square of 2^scale by 2^scale blocks so a map
always covers 128*2^scale blocks along each axis regardless of its scale.
*/
package mapitem

import "fmt"

const (
	// Width and Height are the fixed pixel dimensions of every map
	Width  = 128
	Height = Width

	// NumPixels is the required length of the colors buffer
	NumPixels = Width * Height

	// MaxScale is the most zoomed out scale
	MaxScale = 4

	// FilePrefix and FileExt describe the name of map item files
	FilePrefix = "map_"
	FileExt    = ".dat"
)

// Pos is a block position in the world.
type Pos struct {
	X, Y, Z int32
}

// Banner is a banner marker placed on the map.
type Banner struct {
	Color BannerColor
	// Custom name as JSON text, nil if the banner is unnamed
	Name *string
	Pos  Pos
}

// Marker is an item frame marker.
type Marker struct {
	EntityID int32
	// Degrees, 0 to 360
	Rotation int32
	Pos      Pos
}

// Item is a decoded map item.
type Item struct {
	// Path is where the item was read from. It is not part of the record.
	Path string

	DataVersion int32

	Scale int8
	// Dimension is always a namespaced identifier or, for unknown legacy
	// codes, the code in decimal
	Dimension string

	TrackingPosition  bool
	UnlimitedTracking bool
	Locked            bool

	XCenter int32
	ZCenter int32

	Banners []Banner
	Frames  []Marker

	// Colors holds NumPixels palette indices, row major
	Colors []byte
}

// BlocksPerPixel returns the number of blocks along each axis covered by a
// single pixel.
func (it *Item) BlocksPerPixel() int32 {
	return int32(1) << uint(it.Scale)
}

// ScaleDescription returns the scale as a ratio, such as "1:4".
func (it *Item) ScaleDescription() string {
	return fmt.Sprintf("1:%d", it.BlocksPerPixel())
}

// Left returns the X coordinate of the left edge.
func (it *Item) Left() int32 {
	return it.XCenter - Width/2*it.BlocksPerPixel()
}

// Top returns the Z coordinate of the top edge.
func (it *Item) Top() int32 {
	return it.ZCenter - Height/2*it.BlocksPerPixel()
}

// Right returns the X coordinate of the right edge.
func (it *Item) Right() int32 {
	return it.XCenter + Width/2*it.BlocksPerPixel() - 1
}

// Bottom returns the Z coordinate of the bottom edge.
func (it *Item) Bottom() int32 {
	return it.ZCenter + Height/2*it.BlocksPerPixel() - 1
}

// Bounds returns the area of the world covered by the map.
func (it *Item) Bounds() Rect {
	return Rect{
		Left:   it.Left(),
		Top:    it.Top(),
		Right:  it.Right(),
		Bottom: it.Bottom(),
	}
}

func (it *Item) String() string {
	return fmt.Sprintf("%s [scale: %d, dimension: %s, bounds: %s, %d colors]", it.Path, it.Scale, it.Dimension, it.Bounds(), len(it.Colors))
}

// Rect is an inclusive rectangle of world coordinates. X grows to the right
// and Z grows downwards.
type Rect struct {
	Left, Top, Right, Bottom int32
}

// Valid reports whether r has non-negative width and height.
func (r Rect) Valid() bool {
	return r.Left <= r.Right && r.Top <= r.Bottom
}

// Width returns the number of blocks along the X axis.
func (r Rect) Width() int64 {
	return int64(r.Right) - int64(r.Left) + 1
}

// Height returns the number of blocks along the Z axis.
func (r Rect) Height() int64 {
	return int64(r.Bottom) - int64(r.Top) + 1
}

// Overlaps reports whether r and s share at least one block.
func (r Rect) Overlaps(s Rect) bool {
	return r.Left <= s.Right && r.Top <= s.Bottom && r.Right >= s.Left && r.Bottom >= s.Top
}

// Union returns the smallest rectangle containing both r and s.
func (r Rect) Union(s Rect) Rect {
	return Rect{
		Left:   min(r.Left, s.Left),
		Top:    min(r.Top, s.Top),
		Right:  max(r.Right, s.Right),
		Bottom: max(r.Bottom, s.Bottom),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d, %d)-(%d, %d)", r.Left, r.Top, r.Right, r.Bottom)
}

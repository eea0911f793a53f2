package mapitem

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
)

type compound = map[string]any

type decoder struct {
	// Field path prefix for errors
	path string
}

func (d *decoder) errorf(name string, err error) error {
	return &DecodeError{Field: d.path + name, Err: err}
}

func (d *decoder) child(name string) *decoder {
	return &decoder{path: d.path + name + "."}
}

func (d *decoder) lookup(c compound, name string, required bool) (any, bool, error) {
	v, ok := c[name]
	if !ok {
		if required {
			return nil, false, d.errorf(name, ErrMissingField)
		}
		return nil, false, nil
	}
	return v, true, nil
}

func (d *decoder) wrongType(name string, v any) error {
	return d.errorf(name, fmt.Errorf("%w %T", ErrWrongType, v))
}

func (d *decoder) byteField(c compound, name string, required bool) (int8, error) {
	v, ok, err := d.lookup(c, name, required)
	if !ok {
		return 0, err
	}
	switch b := v.(type) {
	case int8:
		return b, nil
	case uint8:
		return int8(b), nil
	}
	return 0, d.wrongType(name, v)
}

func (d *decoder) intField(c compound, name string, required bool) (int32, error) {
	v, ok, err := d.lookup(c, name, required)
	if !ok {
		return 0, err
	}
	if i, ok := v.(int32); ok {
		return i, nil
	}
	return 0, d.wrongType(name, v)
}

func (d *decoder) stringField(c compound, name string, required bool) (*string, error) {
	v, ok, err := d.lookup(c, name, required)
	if !ok {
		return nil, err
	}
	if s, ok := v.(string); ok {
		return &s, nil
	}
	return nil, d.wrongType(name, v)
}

func (d *decoder) compoundField(c compound, name string) (compound, error) {
	v, _, err := d.lookup(c, name, true)
	if err != nil {
		return nil, err
	}
	if m, ok := v.(compound); ok {
		return m, nil
	}
	return nil, d.wrongType(name, v)
}

func (d *decoder) listField(c compound, name string) ([]compound, error) {
	v, ok, err := d.lookup(c, name, false)
	if !ok {
		return nil, err
	}
	switch l := v.(type) {
	case nil:
		return nil, nil
	case []compound:
		return l, nil
	case []any:
		list := make([]compound, 0, len(l))
		for i, e := range l {
			m, ok := e.(compound)
			if !ok {
				return nil, d.wrongType(fmt.Sprintf("%s[%d]", name, i), e)
			}
			list = append(list, m)
		}
		return list, nil
	}
	return nil, d.wrongType(name, v)
}

func (d *decoder) bytesField(c compound, name string) ([]byte, error) {
	v, _, err := d.lookup(c, name, true)
	if err != nil {
		return nil, err
	}
	switch b := v.(type) {
	case []byte:
		return b, nil
	case []int8:
		buf := make([]byte, len(b))
		for i := range b {
			buf[i] = byte(b[i])
		}
		return buf, nil
	}
	return nil, d.wrongType(name, v)
}

// dimension accepts the namespaced string form and the legacy numeric form
func (d *decoder) dimension(c compound, name string) (string, error) {
	v, _, err := d.lookup(c, name, true)
	if err != nil {
		return "", err
	}
	switch dim := v.(type) {
	case string:
		return dim, nil
	case int8:
		return legacyDimension(int32(dim)), nil
	case uint8:
		return legacyDimension(int32(int8(dim))), nil
	case int32:
		return legacyDimension(dim), nil
	}
	return "", d.wrongType(name, v)
}

// pos accepts both a compound with X, Y and Z fields and a three element
// int array
func (d *decoder) pos(c compound, name string) (Pos, error) {
	v, _, err := d.lookup(c, name, true)
	if err != nil {
		return Pos{}, err
	}
	switch p := v.(type) {
	case compound:
		cd := d.child(name)
		var pos Pos
		if pos.X, err = cd.intField(p, "X", true); err != nil {
			return Pos{}, err
		}
		if pos.Y, err = cd.intField(p, "Y", true); err != nil {
			return Pos{}, err
		}
		if pos.Z, err = cd.intField(p, "Z", true); err != nil {
			return Pos{}, err
		}
		return pos, nil
	case []int32:
		if len(p) != 3 {
			return Pos{}, d.errorf(name, fmt.Errorf("%w: %d coordinates", ErrOutOfRange, len(p)))
		}
		return Pos{X: p[0], Y: p[1], Z: p[2]}, nil
	}
	return Pos{}, d.wrongType(name, v)
}

func (d *decoder) banner(c compound) (Banner, error) {
	var (
		b   Banner
		err error
	)
	color, err := d.stringField(c, "Color", true)
	if err != nil {
		return b, err
	}
	if b.Color, err = ParseBannerColor(*color); err != nil {
		return b, d.errorf("Color", err)
	}
	if b.Name, err = d.stringField(c, "Name", false); err != nil {
		return b, err
	}
	if b.Pos, err = d.pos(c, "Pos"); err != nil {
		return b, err
	}
	return b, nil
}

func (d *decoder) marker(c compound) (Marker, error) {
	var (
		m   Marker
		err error
	)
	if m.EntityID, err = d.intField(c, "EntityId", true); err != nil {
		return m, err
	}
	if m.Rotation, err = d.intField(c, "Rotation", true); err != nil {
		return m, err
	}
	if m.Pos, err = d.pos(c, "Pos"); err != nil {
		return m, err
	}
	return m, nil
}

func (d *decoder) flag(c compound, name string) (bool, error) {
	b, err := d.byteField(c, name, false)
	return b != 0, err
}

func (d *decoder) data(c compound, it *Item) error {
	var err error

	if it.Scale, err = d.byteField(c, "scale", true); err != nil {
		return err
	}
	if it.Scale < 0 || it.Scale > MaxScale {
		return d.errorf("scale", fmt.Errorf("%w: %d", ErrOutOfRange, it.Scale))
	}

	if it.Dimension, err = d.dimension(c, "dimension"); err != nil {
		return err
	}

	if it.TrackingPosition, err = d.flag(c, "trackingPosition"); err != nil {
		return err
	}
	if it.UnlimitedTracking, err = d.flag(c, "unlimitedTracking"); err != nil {
		return err
	}
	if it.Locked, err = d.flag(c, "locked"); err != nil {
		return err
	}

	if it.XCenter, err = d.intField(c, "xCenter", true); err != nil {
		return err
	}
	if it.ZCenter, err = d.intField(c, "zCenter", true); err != nil {
		return err
	}

	banners, err := d.listField(c, "banners")
	if err != nil {
		return err
	}
	for i, b := range banners {
		banner, err := d.child(fmt.Sprintf("banners[%d]", i)).banner(b)
		if err != nil {
			return err
		}
		it.Banners = append(it.Banners, banner)
	}

	frames, err := d.listField(c, "frames")
	if err != nil {
		return err
	}
	for i, f := range frames {
		marker, err := d.child(fmt.Sprintf("frames[%d]", i)).marker(f)
		if err != nil {
			return err
		}
		it.Frames = append(it.Frames, marker)
	}

	if it.Colors, err = d.bytesField(c, "colors"); err != nil {
		return err
	}
	switch {
	case len(it.Colors) < NumPixels:
		return d.errorf("colors", fmt.Errorf("%w: %d bytes", ErrIncompleteBuffer, len(it.Colors)))
	case len(it.Colors) > NumPixels:
		return d.errorf("colors", fmt.Errorf("%w: %d bytes", ErrTooMuchData, len(it.Colors)))
	}

	return nil
}

// FromTree builds an item from an already decoded NBT tree. Compounds are
// map[string]any, lists are []any and the remaining tags use the Go types
// of the NBT decoder.
func FromTree(root map[string]any) (*Item, error) {
	d := &decoder{}
	it := new(Item)

	data, err := d.compoundField(root, "data")
	if err != nil {
		return nil, err
	}
	if err := d.child("data").data(data, it); err != nil {
		return nil, err
	}

	// Saves older than 1.9 carry no data version
	if it.DataVersion, err = d.intField(root, "DataVersion", false); err != nil {
		return nil, err
	}

	return it, nil
}

// Decode reads a gzip compressed map item from r.
func Decode(r io.Reader) (*Item, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	defer zr.Close()

	root := make(map[string]any)
	if _, err := nbt.NewDecoder(zr).Decode(&root); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return FromTree(root)
}

// ReadFile decodes the map item stored in file.
func ReadFile(file string) (*Item, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	it, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	it.Path = file

	return it, nil
}

func legacyDimension(code int32) string {
	switch code {
	case 0:
		return Overworld
	case -1:
		return TheNether
	case 1:
		return TheEnd
	}
	return strconv.Itoa(int(code))
}

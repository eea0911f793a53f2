package mapitem

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
)

type nbtPos struct {
	X int32 `nbt:"X"`
	Y int32 `nbt:"Y"`
	Z int32 `nbt:"Z"`
}

type nbtBanner struct {
	Color string  `nbt:"Color"`
	Name  *string `nbt:"Name,omitempty"`
	Pos   nbtPos  `nbt:"Pos"`
}

type nbtMarker struct {
	EntityID int32  `nbt:"EntityId"`
	Rotation int32  `nbt:"Rotation"`
	Pos      nbtPos `nbt:"Pos"`
}

type nbtData struct {
	Scale             int8        `nbt:"scale"`
	Dimension         string      `nbt:"dimension"`
	TrackingPosition  int8        `nbt:"trackingPosition"`
	UnlimitedTracking int8        `nbt:"unlimitedTracking"`
	Locked            int8        `nbt:"locked"`
	XCenter           int32       `nbt:"xCenter"`
	ZCenter           int32       `nbt:"zCenter"`
	Banners           []nbtBanner `nbt:"banners"`
	Frames            []nbtMarker `nbt:"frames"`
	Colors            []byte      `nbt:"colors"`
}

type nbtItem struct {
	Data        nbtData `nbt:"data"`
	DataVersion int32   `nbt:"DataVersion"`
}

func boolByte(b bool) int8 {
	if b {
		return 1
	}
	return 0
}

func toNBTPos(p Pos) nbtPos {
	return nbtPos{X: p.X, Y: p.Y, Z: p.Z}
}

// Encode writes the item to w as a gzip compressed NBT record.
func (it *Item) Encode(w io.Writer) error {
	if len(it.Colors) != NumPixels {
		return errors.New("mapitem: colors must hold exactly 16384 entries")
	}

	v := nbtItem{
		Data: nbtData{
			Scale:             it.Scale,
			Dimension:         it.Dimension,
			TrackingPosition:  boolByte(it.TrackingPosition),
			UnlimitedTracking: boolByte(it.UnlimitedTracking),
			Locked:            boolByte(it.Locked),
			XCenter:           it.XCenter,
			ZCenter:           it.ZCenter,
			Banners:           make([]nbtBanner, 0, len(it.Banners)),
			Frames:            make([]nbtMarker, 0, len(it.Frames)),
			Colors:            it.Colors,
		},
		DataVersion: it.DataVersion,
	}
	for _, b := range it.Banners {
		v.Data.Banners = append(v.Data.Banners, nbtBanner{Color: b.Color.ID(), Name: b.Name, Pos: toNBTPos(b.Pos)})
	}
	for _, m := range it.Frames {
		v.Data.Frames = append(v.Data.Frames, nbtMarker{EntityID: m.EntityID, Rotation: m.Rotation, Pos: toNBTPos(m.Pos)})
	}

	zw := gzip.NewWriter(w)
	if err := nbt.NewEncoder(zw).Encode(v, ""); err != nil {
		return err
	}
	return zw.Close()
}

// WriteFile encodes the item to file, creating any missing directories.
func (it *Item) WriteFile(file string) error {
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := it.Encode(f); err != nil {
		f.Close()
		os.Remove(file)
		return fmt.Errorf("%s: %w", file, err)
	}

	return f.Close()
}

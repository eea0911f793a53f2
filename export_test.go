package mcmap

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(colors int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for i := 0; i < 64*64; i++ {
		c := i % colors
		m.SetNRGBA(i%64, i/64, color.NRGBA{R: uint8(c), G: uint8(c >> 8), B: 100, A: 255})
	}
	return m
}

func TestEncode(t *testing.T) {
	tables := []struct {
		ext    string
		format string
	}{
		{".png", "png"},
		{".jpg", "jpeg"},
		{".JPEG", "jpeg"},
		{".gif", "gif"},
		{".bmp", "bmp"},
		{".tif", "tiff"},
		{".tiff", "tiff"},
	}

	m := testImage(16)

	for _, table := range tables {
		t.Run(table.ext, func(t *testing.T) {
			b := new(bytes.Buffer)
			require.NoError(t, Encode(b, m, table.ext))

			cfg, format, err := image.DecodeConfig(b)
			require.NoError(t, err)
			assert.Equal(t, table.format, format)
			assert.Equal(t, 64, cfg.Width)
			assert.Equal(t, 64, cfg.Height)
		})
	}

	assert.Error(t, Encode(new(bytes.Buffer), m, ".webp"))
	assert.Error(t, Encode(new(bytes.Buffer), m, ""))
}

func TestPaletted(t *testing.T) {
	m := testImage(3)
	pm := paletted(m)
	assert.Len(t, pm.Palette, 3)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if m.At(x, y) != color.NRGBAModel.Convert(pm.At(x, y)) {
				t.Fatalf("pixel (%d, %d) changed", x, y)
			}
		}
	}

	// Too many colors to keep
	pm = paletted(testImage(1000))
	assert.LessOrEqual(t, len(pm.Palette), 256)
	assert.Equal(t, image.Rect(0, 0, 64, 64), pm.Bounds())
}

func TestSave(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "a", "b", "mosaic.png")
	require.NoError(t, Save(file, testImage(16)))

	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()

	m, format, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 64, 64), m.Bounds())

	bad := filepath.Join(dir, "c", "mosaic.webp")
	assert.Error(t, Save(bad, testImage(16)))
	_, err = os.Stat(filepath.Dir(bad))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveFailure(t *testing.T) {
	file := filepath.Join(t.TempDir(), "empty.png")

	// Zero sized images can't be encoded, nothing should be left behind
	assert.Error(t, Save(file, image.NewNRGBA(image.Rect(0, 0, 0, 0))))
	_, err := os.Stat(file)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

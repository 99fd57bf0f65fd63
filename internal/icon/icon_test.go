package icon

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: uint8(255 - x%64)})
		}
	}
	return img
}

func writeMaster(t *testing.T, img image.Image) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "icon-master.png")
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return p
}

func TestLoadMissing(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nope.png")
	img, err := Load(p)
	assert.Nil(t, img)

	var missing *MissingInputError
	require.True(t, errors.As(err, &missing), "got %T", err)
	assert.Equal(t, p, missing.Path)
	assert.Contains(t, err.Error(), p)
}

func TestLoadGarbage(t *testing.T) {
	p := filepath.Join(t.TempDir(), "icon-master.png")
	require.NoError(t, os.WriteFile(p, []byte("not a png"), 0644))

	_, err := Load(p)
	var decErr *DecodeError
	require.True(t, errors.As(err, &decErr), "got %T", err)
	assert.Equal(t, p, decErr.Path)
}

func TestLoadConvertsToNRGBA(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 40, 30))
	src.SetGray(3, 4, color.Gray{Y: 200})
	p := writeMaster(t, src)

	img, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 30), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 200, G: 200, B: 200, A: 255}, img.NRGBAAt(3, 4))
}

func TestToNRGBAZeroOrigin(t *testing.T) {
	src := gradient(20, 20).SubImage(image.Rect(5, 5, 15, 15))
	got := ToNRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 10, 10), got.Bounds())
	assert.Equal(t, src.At(5, 5), got.At(0, 0))
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		warns int
	}{
		{"full size", 1024, 1024, 0},
		{"larger", 2048, 2048, 0},
		{"small", 512, 512, 1},
		{"non-square", 1200, 1024, 1},
		{"small non-square", 300, 200, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewNRGBA(image.Rect(0, 0, tt.w, tt.h))
			assert.Len(t, Check(img), tt.warns)
		})
	}
}

func TestResizeDimensions(t *testing.T) {
	src := gradient(256, 256)
	for _, size := range []int{16, 32, 48, 64, 128, 256, 512, 1024} {
		got := Resize(src, size, DefaultFilter)
		assert.Equal(t, image.Rect(0, 0, size, size), got.Bounds(), "size %d", size)
	}
}

func TestResizeStretchesNonSquare(t *testing.T) {
	got := Resize(gradient(200, 100), 64, DefaultFilter)
	assert.Equal(t, 64, got.Bounds().Dx())
	assert.Equal(t, 64, got.Bounds().Dy())
}

func TestResizeDoesNotAliasSource(t *testing.T) {
	src := gradient(64, 64)
	before := append([]uint8(nil), src.Pix...)

	got := Resize(src, 64, DefaultFilter)
	got.Pix[0] ^= 0xff

	assert.Equal(t, before, src.Pix, "source must not be modified")
}

func TestResizeDeterministic(t *testing.T) {
	src := gradient(300, 300)
	a := Resize(src, 48, DefaultFilter)
	b := Resize(src, 48, DefaultFilter)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestResizeChecked(t *testing.T) {
	_, err := ResizeChecked(gradient(8, 8), 0, DefaultFilter)
	assert.Error(t, err)

	img, err := ResizeChecked(gradient(8, 8), 4, DefaultFilter)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFilter, f)

	for _, name := range []string{"nearest", "bilinear", "bicubic", "mitchell", "lanczos2", "Lanczos3"} {
		_, err := ParseFilter(name)
		assert.NoError(t, err, name)
	}

	_, err = ParseFilter("box")
	assert.Error(t, err)
}

func TestWritePNG(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "icon.png")
	require.NoError(t, WritePNG(p, Resize(gradient(100, 100), 32, DefaultFilter)))

	f, err := os.Open(p)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Width)
	assert.Equal(t, 32, cfg.Height)
}

func TestWritePNGError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	err := WritePNG(filepath.Join(blocker, "icon.png"), gradient(4, 4))
	var wErr *WriteError
	require.True(t, errors.As(err, &wErr), "got %T", err)
}

package ico

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	return img
}

func encode(t *testing.T, base image.Image, rest ...image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, base, rest...))
	return buf.Bytes()
}

func TestEncodeDirectoryOrder(t *testing.T) {
	data := encode(t, square(256), square(16), square(32), square(48), square(64), square(128))

	entries, err := ReadDirectory(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, entries, 6)

	want := []int{256, 16, 32, 48, 64, 128}
	for i, e := range entries {
		assert.Equal(t, want[i], e.Width, "entry %d width", i)
		assert.Equal(t, want[i], e.Height, "entry %d height", i)
		assert.Equal(t, 32, e.BitCount)
	}
}

func TestEncodeOffsetsPointAtPNGs(t *testing.T) {
	frames := []image.Image{square(32), square(16)}
	data := encode(t, frames[0], frames[1])

	entries, err := ReadDirectory(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, headerSize+directorySize*2, entries[0].Offset)
	assert.Equal(t, entries[0].Offset+entries[0].Size, entries[1].Offset)
	assert.Equal(t, len(data), entries[1].Offset+entries[1].Size)

	for i, e := range entries {
		img, err := png.Decode(bytes.NewReader(data[e.Offset : e.Offset+e.Size]))
		require.NoError(t, err, "entry %d", i)
		assert.Equal(t, frames[i].Bounds(), img.Bounds())
	}
}

func TestEncodeSingleFrame(t *testing.T) {
	data := encode(t, square(48))
	entries, err := ReadDirectory(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 48, entries[0].Width)
}

func TestEncodeRejectsOversizedFrame(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, square(512))

	var fErr *FormatError
	require.True(t, errors.As(err, &fErr), "got %T", err)
	assert.Zero(t, buf.Len(), "nothing should be written on error")
}

func TestReadDirectoryErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short header", []byte{0, 0, 1}},
		{"cursor type", []byte{0, 0, 2, 0, 1, 0}},
		{"zero count", []byte{0, 0, 1, 0, 0, 0}},
		{"truncated directory", []byte{0, 0, 1, 0, 1, 0, 16, 16}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDirectory(bytes.NewReader(tt.data))
			var fErr *FormatError
			assert.True(t, errors.As(err, &fErr), "got %v", err)
		})
	}
}

func TestVerify(t *testing.T) {
	data := encode(t, square(256), square(16), square(32))
	assert.NoError(t, Verify(data, []int{256, 16, 32}))
}

func TestVerifyWrongSize(t *testing.T) {
	data := encode(t, square(64))
	err := Verify(data, []int{256})
	var fErr *FormatError
	require.True(t, errors.As(err, &fErr), "got %T", err)
	assert.Contains(t, err.Error(), "64x64")
}

func TestVerifyWrongPrimary(t *testing.T) {
	data := encode(t, square(16), square(256))

	err := Verify(data, []int{256, 16})
	var fErr *FormatError
	require.True(t, errors.As(err, &fErr), "got %T", err)
	assert.Contains(t, err.Error(), "entry 0 is 16x16")
}

func TestVerifyWrongCount(t *testing.T) {
	data := encode(t, square(256), square(16))

	err := Verify(data, []int{256, 16, 32})
	assert.ErrorContains(t, err, "has 2 images, want 3")
}

func TestVerifyPayloadMismatch(t *testing.T) {
	data := encode(t, square(32))
	// claim 48x48 in the directory while the PNG stays 32x32
	data[headerSize] = 48
	data[headerSize+1] = 48

	err := Verify(data, []int{48})
	assert.ErrorContains(t, err, "payload is 32x32")
}

func TestVerifyGarbage(t *testing.T) {
	assert.Error(t, Verify([]byte("definitely not an icon"), []int{256}))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEncodeWrapsWriteError(t *testing.T) {
	err := Encode(failingWriter{}, square(16))

	var fErr *FormatError
	require.True(t, errors.As(err, &fErr), "got %T", err)
	assert.ErrorContains(t, err, "disk full")
}

package icon

import (
	"bytes"
	"image"
	"image/png"

	"github.com/Mavwarf/appicon/internal/paths"
)

var encoder = png.Encoder{CompressionLevel: png.BestCompression}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := encoder.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePNG encodes img and writes it to path atomically.
func WritePNG(path string, img image.Image) error {
	data, err := EncodePNG(img)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := paths.AtomicWrite(path, data); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// Package icon loads the master icon image and produces resized copies of it.
package icon

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"

	"golang.org/x/image/draw"
)

// MinMasterSize is the edge length the master image is expected to have.
// Smaller masters are accepted but get upscaled for the largest targets.
const MinMasterSize = 1024

// Load opens and decodes the PNG at path into an NRGBA raster.
// A missing file yields *MissingInputError, undecodable data *DecodeError.
func Load(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingInputError{Path: path}
		}
		return nil, fmt.Errorf("opening master icon: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if img.Bounds().Empty() {
		return nil, &DecodeError{Path: path, Err: errors.New("image has no pixels")}
	}
	return ToNRGBA(img), nil
}

// ToNRGBA returns img as a zero-origin *image.NRGBA. The result never
// aliases img's pixel buffer.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Check returns human-readable warnings for a master image that is
// usable but not what the size tables were designed for.
func Check(img image.Image) []string {
	var warns []string
	b := img.Bounds()
	if b.Dx() != b.Dy() {
		warns = append(warns, fmt.Sprintf("master is not square (%dx%d), output will be stretched", b.Dx(), b.Dy()))
	}
	if b.Dx() < MinMasterSize || b.Dy() < MinMasterSize {
		warns = append(warns, fmt.Sprintf("master is smaller than %dx%d (%dx%d), large sizes will be upscaled",
			MinMasterSize, MinMasterSize, b.Dx(), b.Dy()))
	}
	return warns
}

package icon

import (
	"fmt"
	"image"
	"strings"

	"github.com/nfnt/resize"
)

// Filter is the interpolation kernel used when resizing.
type Filter = resize.InterpolationFunction

// DefaultFilter is Lanczos with a 3-lobe kernel.
const DefaultFilter = resize.Lanczos3

var filters = map[string]Filter{
	"nearest":  resize.NearestNeighbor,
	"bilinear": resize.Bilinear,
	"bicubic":  resize.Bicubic,
	"mitchell": resize.MitchellNetravali,
	"lanczos2": resize.Lanczos2,
	"lanczos3": resize.Lanczos3,
}

// ParseFilter maps a filter name to its kernel. The empty name selects
// DefaultFilter.
func ParseFilter(name string) (Filter, error) {
	if name == "" {
		return DefaultFilter, nil
	}
	f, ok := filters[strings.ToLower(name)]
	if !ok {
		return DefaultFilter, fmt.Errorf("unknown filter %q", name)
	}
	return f, nil
}

// Resize returns a new size×size copy of src. Non-square sources are
// stretched, not cropped. src is never modified.
func Resize(src image.Image, size int, f Filter) *image.NRGBA {
	out := resize.Resize(uint(size), uint(size), src, f)
	if nrgba, ok := out.(*image.NRGBA); ok && out != src && nrgba.Rect.Min == (image.Point{}) {
		return nrgba
	}
	// resize hands back src itself when no scaling is needed.
	return ToNRGBA(out)
}

// ResizeChecked is Resize with validation of size.
func ResizeChecked(src image.Image, size int, f Filter) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid icon size %d", size)
	}
	return Resize(src, size, f), nil
}

// Package iconset writes Apple iconset staging directories and compiles
// them into .icns containers.
package iconset

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Mavwarf/appicon/internal/icon"
	"github.com/Mavwarf/appicon/internal/paths"
)

// Entry is one named PNG inside an iconset.
type Entry struct {
	Name string
	Size int
}

// Entries lists the files iconutil expects, with their pixel size.
var Entries = []Entry{
	{"icon_16x16.png", 16},
	{"icon_16x16@2x.png", 32},
	{"icon_32x32.png", 32},
	{"icon_32x32@2x.png", 64},
	{"icon_128x128.png", 128},
	{"icon_128x128@2x.png", 256},
	{"icon_256x256.png", 256},
	{"icon_256x256@2x.png", 512},
	{"icon_512x512.png", 512},
	{"icon_512x512@2x.png", 1024},
}

// EntryName builds the iconset file name for a point size and scale.
func EntryName(points, scale int) string {
	if scale > 1 {
		return fmt.Sprintf("icon_%dx%d@%dx.png", points, points, scale)
	}
	return fmt.Sprintf("icon_%dx%d.png", points, points)
}

// Write resizes master into every entry under dir and returns the written
// paths. dir is created if missing; existing files are overwritten.
func Write(dir string, master image.Image, f icon.Filter, log *slog.Logger) ([]string, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(dir, paths.DirPerm); err != nil {
		return nil, &icon.WriteError{Path: dir, Err: err}
	}
	written := make([]string, 0, len(Entries))
	for _, e := range Entries {
		p := filepath.Join(dir, e.Name)
		if err := icon.WritePNG(p, icon.Resize(master, e.Size, f)); err != nil {
			return written, err
		}
		log.Info("written", "file", e.Name, "size", fmt.Sprintf("%dx%d", e.Size, e.Size))
		written = append(written, p)
	}
	return written, nil
}

package paths

import (
	"os"
	"path/filepath"
)

const (
	AssetsDirName  = "assets"
	MasterFileName = "icon-master.png"
	ICNSFileName   = "icon.icns"
	PNGFileName    = "icon.png"
	ICOFileName    = "icon.ico"
	IconsetDirName = "icon.iconset"
	DirPerm        = 0755
	FilePerm       = 0644
)

// Layout resolves the fixed input and output locations relative to a
// project root. The zero value resolves against the current directory.
type Layout struct {
	Root string
}

// Assets returns <root>/assets.
func (l Layout) Assets() string { return filepath.Join(l.Root, AssetsDirName) }

// Master returns the path of the master image.
func (l Layout) Master() string { return filepath.Join(l.Assets(), MasterFileName) }

// ICNS returns the macOS icon path.
func (l Layout) ICNS() string { return filepath.Join(l.Assets(), ICNSFileName) }

// PNG returns the Linux icon path.
func (l Layout) PNG() string { return filepath.Join(l.Assets(), PNGFileName) }

// ICO returns the Windows icon path.
func (l Layout) ICO() string { return filepath.Join(l.Assets(), ICOFileName) }

// Iconset returns the macOS staging directory.
func (l Layout) Iconset() string { return filepath.Join(l.Assets(), IconsetDirName) }

// AtomicWrite writes data to path via a temporary file + rename to avoid
// partial writes. The parent directory is created if needed.
func AtomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, FilePerm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

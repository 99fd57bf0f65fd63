package runner

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Mavwarf/appicon/internal/config"
	"github.com/Mavwarf/appicon/internal/ico"
	"github.com/Mavwarf/appicon/internal/icon"
	"github.com/Mavwarf/appicon/internal/iconset"
	"github.com/Mavwarf/appicon/internal/paths"
)

// LinuxSize is the edge length of the Linux PNG.
const LinuxSize = 512

// WindowsBaseSize is the ICO frame written first, as the primary image.
const WindowsBaseSize = 256

// WindowsSizes lists every frame in the Windows icon.
var WindowsSizes = []int{16, 32, 48, 64, 128, 256}

// EmitMacOS writes icon.icns. In iconutil mode it only runs when the
// platform is darwin and otherwise reports a skip, which is not an error.
func EmitMacOS(ctx context.Context, master image.Image, opts Options) (Result, error) {
	log := opts.logger()
	out := opts.Layout.ICNS()

	switch opts.ICNSMode {
	case config.ICNSOff:
		log.Info("skipped", "file", paths.ICNSFileName, "reason", "disabled")
		return Result{Skipped: true, Reason: "disabled"}, nil
	case config.ICNSNative:
		if err := iconset.EncodeNative(out, master, opts.Filter); err != nil {
			return Result{}, err
		}
		log.Info("written", "file", paths.ICNSFileName, "encoder", "native")
		return Result{Files: []string{out}}, nil
	}

	if opts.Platform != "darwin" {
		log.Info("skipped", "file", paths.ICNSFileName, "reason", "macOS only")
		return Result{Skipped: true, Reason: "macOS only"}, nil
	}

	dir := opts.Layout.Iconset()
	written, err := iconset.Write(dir, master, opts.Filter, log)
	if err != nil {
		return Result{Files: written}, err
	}
	if err := opts.compiler().Compile(ctx, dir, out); err != nil {
		return Result{Files: written}, err
	}
	log.Info("written", "file", paths.ICNSFileName, "encoder", iconset.Tool)

	if opts.KeepIconset {
		return Result{Files: append(written, out)}, nil
	}
	if err := os.RemoveAll(dir); err != nil {
		log.Warn("could not remove iconset", "dir", dir, "err", err)
		return Result{Files: append(written, out)}, nil
	}
	log.Debug("removed iconset", "dir", dir)
	return Result{Files: []string{out}}, nil
}

// EmitLinux writes a single LinuxSize PNG to path.
func EmitLinux(master image.Image, path string, f icon.Filter, log *slog.Logger) (Result, error) {
	if err := icon.WritePNG(path, icon.Resize(master, LinuxSize, f)); err != nil {
		return Result{}, err
	}
	logger(log).Info("written", "file", filepath.Base(path), "size", fmt.Sprintf("%dx%d", LinuxSize, LinuxSize))
	return Result{Files: []string{path}}, nil
}

// EmitWindows writes an ICO with every WindowsSizes frame to path. The
// WindowsBaseSize frame is stored first; the container is decoded once
// more before it replaces path.
func EmitWindows(master image.Image, path string, f icon.Filter, log *slog.Logger) (Result, error) {
	var rest []int
	for _, s := range WindowsSizes {
		if s != WindowsBaseSize {
			rest = append(rest, s)
		}
	}
	base := icon.Resize(master, WindowsBaseSize, f)

	var buf bytes.Buffer
	if err := ico.Encode(&buf, base, squares(master, rest, f)...); err != nil {
		return Result{}, err
	}
	if err := ico.Verify(buf.Bytes(), append([]int{WindowsBaseSize}, rest...)); err != nil {
		return Result{}, err
	}
	if err := paths.AtomicWrite(path, buf.Bytes()); err != nil {
		return Result{}, &icon.WriteError{Path: path, Err: err}
	}
	logger(log).Info("written", "file", filepath.Base(path), "frames", len(WindowsSizes),
		"primary", fmt.Sprintf("%dx%d", WindowsBaseSize, WindowsBaseSize))
	return Result{Files: []string{path}}, nil
}

// squares resizes master to each size.
func squares(master image.Image, sizes []int, f icon.Filter) []image.Image {
	out := make([]image.Image, len(sizes))
	for i, s := range sizes {
		out[i] = icon.Resize(master, s, f)
	}
	return out
}

func logger(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}

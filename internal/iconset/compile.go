package iconset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os/exec"

	"github.com/jackmordaunt/icns/v3"
	"golang.org/x/sys/execabs"

	"github.com/Mavwarf/appicon/internal/icon"
	"github.com/Mavwarf/appicon/internal/paths"
)

// Tool is the macOS icon compiler.
const Tool = "iconutil"

// ExternalToolError reports a failed icon compiler run. ExitCode is -1
// when the tool could not be started.
type ExternalToolError struct {
	Tool     string
	ExitCode int
	Output   []byte
	Err      error
}

func (e *ExternalToolError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Tool, e.ExitCode)
	if e.ExitCode < 0 {
		msg = fmt.Sprintf("%s failed", e.Tool)
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
	}
	if out := bytes.TrimSpace(e.Output); len(out) > 0 {
		msg += "\n" + string(out)
	}
	return msg
}

func (e *ExternalToolError) Unwrap() error { return e.Err }

// Compiler packs an iconset directory into an .icns file.
type Compiler interface {
	Compile(ctx context.Context, iconsetDir, out string) error
}

// Iconutil runs Apple's iconutil. The zero value looks the tool up on PATH.
type Iconutil struct {
	// Path overrides the executable location.
	Path string
}

// Compile runs `iconutil -c icns <iconsetDir> -o <out>`.
func (c Iconutil) Compile(ctx context.Context, iconsetDir, out string) error {
	bin := c.Path
	if bin == "" {
		p, err := execabs.LookPath(Tool)
		if err != nil {
			return &ExternalToolError{Tool: Tool, ExitCode: -1, Err: fmt.Errorf("not found on PATH: %w", err)}
		}
		bin = p
	}
	cmd := execabs.CommandContext(ctx, bin, "-c", "icns", iconsetDir, "-o", out)
	if output, err := cmd.CombinedOutput(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return &ExternalToolError{Tool: Tool, ExitCode: code, Output: output, Err: err}
	}
	return nil
}

// NativeSize is the edge length the master is stretched to before native
// encoding, so every chunk is a downscale of the same square.
const NativeSize = 1024

// NativeChunks maps the chunk types written by EncodeNative to their edge
// length. ic10..ic14 and ic11/ic12 are the @2x entries. The 16×16 and
// 32×32 @1x entries have no PNG chunk type and are not written; macOS
// derives them from the @2x chunks.
var NativeChunks = map[string]int{
	"ic10": 1024,
	"ic14": 512,
	"ic09": 512,
	"ic13": 256,
	"ic08": 256,
	"ic07": 128,
	"ic12": 64,
	"ic11": 32,
}

// EncodeNative writes an .icns for master without iconutil, so it works
// on any platform. master is first resized to NativeSize with f.
func EncodeNative(out string, master image.Image, f icon.Filter) error {
	var buf bytes.Buffer
	if err := icns.Encode(&buf, icon.Resize(master, NativeSize, f)); err != nil {
		return &icon.WriteError{Path: out, Err: fmt.Errorf("encoding icns: %w", err)}
	}
	if err := paths.AtomicWrite(out, buf.Bytes()); err != nil {
		return &icon.WriteError{Path: out, Err: err}
	}
	return nil
}

// Package ico writes Windows icon containers with PNG-compressed frames.
package ico

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"

	goico "github.com/sergeymakinen/go-ico"
)

const (
	headerSize    = 6
	directorySize = 16

	// MaxSize is the largest edge length an ICO entry can describe.
	MaxSize = 256
)

type header struct {
	Reserved  uint16
	ImageType uint16
	Count     uint16
}

type directory struct {
	Width       uint8
	Height      uint8
	ColorCount  uint8
	Reserved    uint8
	Planes      uint16
	BitCount    uint16
	BytesInRes  uint32
	ImageOffset uint32
}

// Entry describes one frame listed in an ICO directory.
type Entry struct {
	Width, Height int
	BitCount      int
	Size          int
	Offset        int
}

// FormatError reports an ICO stream that could not be written or read back.
type FormatError struct {
	Msg string
	Err error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return "ico: " + e.Msg + ": " + e.Err.Error()
	}
	return "ico: " + e.Msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// Encode writes an ICO container to w. base becomes the first directory
// entry, which Windows and installer tooling treat as the primary image;
// rest follow in the order given.
func Encode(w io.Writer, base image.Image, rest ...image.Image) error {
	frames := append([]image.Image{base}, rest...)

	payloads := make([][]byte, len(frames))
	dirs := make([]directory, len(frames))
	offset := headerSize + directorySize*len(frames)
	for i, img := range frames {
		b := img.Bounds()
		if b.Dx() <= 0 || b.Dy() <= 0 || b.Dx() > MaxSize || b.Dy() > MaxSize {
			return &FormatError{Msg: fmt.Sprintf("frame %d has unsupported size %dx%d", i, b.Dx(), b.Dy())}
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return &FormatError{Msg: fmt.Sprintf("encoding frame %d", i), Err: err}
		}
		payloads[i] = buf.Bytes()
		dirs[i] = directory{
			// 0 stands for 256
			Width:       uint8(b.Dx() % MaxSize),
			Height:      uint8(b.Dy() % MaxSize),
			Planes:      1,
			BitCount:    32,
			BytesInRes:  uint32(buf.Len()),
			ImageOffset: uint32(offset),
		}
		offset += buf.Len()
	}

	bw := &bytes.Buffer{}
	if err := binary.Write(bw, binary.LittleEndian, header{ImageType: 1, Count: uint16(len(frames))}); err != nil {
		return &FormatError{Msg: "writing header", Err: err}
	}
	if err := binary.Write(bw, binary.LittleEndian, dirs); err != nil {
		return &FormatError{Msg: "writing directory", Err: err}
	}
	for _, p := range payloads {
		bw.Write(p)
	}
	if _, err := w.Write(bw.Bytes()); err != nil {
		return &FormatError{Msg: "writing container", Err: err}
	}
	return nil
}

// ReadDirectory parses the header and directory of an ICO stream.
func ReadDirectory(r io.Reader) ([]Entry, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, &FormatError{Msg: "reading header", Err: err}
	}
	if h.Reserved != 0 || h.ImageType != 1 {
		return nil, &FormatError{Msg: fmt.Sprintf("image type should be 1 (got: %d)", h.ImageType)}
	}
	if h.Count == 0 {
		return nil, &FormatError{Msg: "no images"}
	}

	dirs := make([]directory, h.Count)
	if err := binary.Read(r, binary.LittleEndian, dirs); err != nil {
		return nil, &FormatError{Msg: "reading directory", Err: err}
	}

	entries := make([]Entry, len(dirs))
	for i, d := range dirs {
		entries[i] = Entry{
			Width:    edge(d.Width),
			Height:   edge(d.Height),
			BitCount: int(d.BitCount),
			Size:     int(d.BytesInRes),
			Offset:   int(d.ImageOffset),
		}
	}
	return entries, nil
}

// when width or height is 0, it is treated as 256 instead.
func edge(v uint8) int {
	if v == 0 {
		return MaxSize
	}
	return int(v)
}

// Verify checks that data lists exactly sizes, in order, so sizes[0] is
// the primary image. Every payload must be a PNG of its listed size and the
// whole container must decode with an independent ICO decoder.
func Verify(data []byte, sizes []int) error {
	entries, err := ReadDirectory(bytes.NewReader(data))
	if err != nil {
		return err
	}
	if len(entries) != len(sizes) {
		return &FormatError{Msg: fmt.Sprintf("container has %d images, want %d", len(entries), len(sizes))}
	}
	largest := 0
	for i, e := range entries {
		want := sizes[i]
		if e.Width != want || e.Height != want {
			return &FormatError{Msg: fmt.Sprintf("entry %d is %dx%d, want %dx%d", i, e.Width, e.Height, want, want)}
		}
		if e.Offset < 0 || e.Size <= 0 || e.Offset+e.Size > len(data) {
			return &FormatError{Msg: fmt.Sprintf("entry %d points outside the container", i)}
		}
		cfg, err := png.DecodeConfig(bytes.NewReader(data[e.Offset : e.Offset+e.Size]))
		if err != nil {
			return &FormatError{Msg: fmt.Sprintf("decoding entry %d", i), Err: err}
		}
		if cfg.Width != want || cfg.Height != want {
			return &FormatError{Msg: fmt.Sprintf("entry %d payload is %dx%d, want %dx%d", i, cfg.Width, cfg.Height, want, want)}
		}
		largest = max(largest, want)
	}

	img, err := goico.Decode(bytes.NewReader(data))
	if err != nil {
		return &FormatError{Msg: "verifying container", Err: err}
	}
	if b := img.Bounds(); b.Dx() != largest || b.Dy() != largest {
		return &FormatError{Msg: fmt.Sprintf("decoded image is %dx%d, want %dx%d", b.Dx(), b.Dy(), largest, largest)}
	}
	return nil
}

package image

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jmylchreest/swatch/internal/security"
	"github.com/ulikunitz/xz"
)

// ErrRawSize is returned when raw input does not hold exactly width*height
// RGBA pixels.
var ErrRawSize = errors.New("raw pixel data does not match dimensions")

// maxRawPixels bounds raw input to a 16384x16384 image.
const maxRawPixels = 16384 * 16384

// RawLoader loads headerless, non-premultiplied RGBA pixel dumps. Files
// ending in .xz are decompressed first.
type RawLoader struct {
	Width  int
	Height int
}

// NewRawLoader creates a RawLoader for width x height images.
func NewRawLoader(width, height int) (*RawLoader, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raw dimensions %dx%d", width, height)
	}
	if width*height > maxRawPixels {
		return nil, fmt.Errorf("raw dimensions %dx%d too large", width, height)
	}
	return &RawLoader{Width: width, Height: height}, nil
}

// Load reads the raw pixels at path.
func (l *RawLoader) Load(path string) (image.Image, error) {
	file, err := openRegularFile(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	if strings.EqualFold(filepath.Ext(path), ".xz") {
		xzr, err := xz.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xzr
	}
	return l.Read(r)
}

// Read reads exactly Width*Height*4 bytes from r.
func (l *RawLoader) Read(r io.Reader) (image.Image, error) {
	want := l.Width * l.Height * 4

	// One spare byte distinguishes an exact fit from oversized input.
	pix, err := io.ReadAll(security.NewLimitedReader(r, int64(want)+1))
	if errors.Is(err, security.ErrSizeLimitExceeded) {
		return nil, fmt.Errorf("%w: more than %d bytes for %dx%d", ErrRawSize, want, l.Width, l.Height)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read raw pixels: %w", err)
	}
	if len(pix) != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d for %dx%d", ErrRawSize, len(pix), want, l.Width, l.Height)
	}

	return &image.NRGBA{
		Pix:    pix,
		Stride: l.Width * 4,
		Rect:   image.Rect(0, 0, l.Width, l.Height),
	}, nil
}

// ParseSize parses a "WIDTHxHEIGHT" string.
func ParseSize(s string) (width, height int, err error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q: expected WIDTHxHEIGHT", s)
	}
	if width, err = strconv.Atoi(w); err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	if height, err = strconv.Atoi(h); err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: dimensions must be positive", s)
	}
	return width, height, nil
}

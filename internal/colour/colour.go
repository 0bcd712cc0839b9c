// Package colour extracts perceptual colour palettes from RGBA pixel buffers.
//
// Pixels are reduced with a median-cut quantizer into a bounded set of
// PaletteColors, which are then scored against named Targets (Vibrant,
// Muted, ...) to select one swatch per target.
package colour

import (
	"fmt"
	"image/color"
	"strings"
)

// Colour is a non-premultiplied 8-bit RGBA colour.
type Colour struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Colour {
	return Colour{R: r, G: g, B: b, A: 255}
}

// FromColor converts any color.Color to a Colour.
func FromColor(c color.Color) Colour {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Colour{R: n.R, G: n.G, B: n.B, A: n.A}
}

// RGBA implements color.Color.
func (c Colour) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Opaque returns the colour with alpha forced to 255.
func (c Colour) Opaque() Colour {
	c.A = 255
	return c
}

// WithAlpha returns the colour with the given alpha.
func (c Colour) WithAlpha(a uint8) Colour {
	c.A = a
	return c
}

// key packs the RGB channels into a single integer. Alpha is ignored.
func (c Colour) key() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Hex returns the colour as "#rrggbb".
func (c Colour) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String returns the colour in the format "rgb(r, g, b)".
func (c Colour) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa" (leading # optional).
func ParseHex(s string) (Colour, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	var r, g, b uint8
	a := uint8(255)
	switch len(hex) {
	case 3:
		if _, err := fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b); err != nil {
			return Colour{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return Colour{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
		}
	case 8:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return Colour{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
		}
	default:
		return Colour{}, fmt.Errorf("invalid hex colour %q: must be 3, 6 or 8 hex digits", s)
	}
	return Colour{R: r, G: g, B: b, A: a}, nil
}

// PaletteColor is a colour paired with the number of source pixels it
// represents. Back-filled swatches carry a population of 0.
type PaletteColor struct {
	Colour     Colour `json:"colour"`
	Population int    `json:"population"`
}

// String returns a human-readable representation.
func (pc PaletteColor) String() string {
	return fmt.Sprintf("%s (population %d)", pc.Colour.Hex(), pc.Population)
}

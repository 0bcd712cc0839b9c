package colour

import (
	"math"
)

// HSL returns hue (0-360), saturation (0-1) and lightness (0-1).
func (c Colour) HSL() (h, s, l float64) {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	l = (maxVal + minVal) / 2.0

	if delta == 0 {
		return 0, 0, l
	}

	if l < 0.5 {
		s = delta / (maxVal + minVal)
	} else {
		s = delta / (2.0 - maxVal - minVal)
	}

	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	case b:
		h = (r-g)/delta + 4
	}

	h *= 60
	return h, s, l
}

// FromHSL converts HSL to an opaque Colour.
// h is hue (0-360), s is saturation (0-1), l is lightness (0-1).
func FromHSL(h, s, l float64) Colour {
	s = clampUnit(s)
	l = clampUnit(l)
	if s == 0 {
		v := unitToByte(l)
		return RGB(v, v, v)
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB(
		unitToByte(hueToRGB(p, q, h+120)),
		unitToByte(hueToRGB(p, q, h)),
		unitToByte(hueToRGB(p, q, h-120)),
	)
}

func hueToRGB(p, q, t float64) float64 {
	t = math.Mod(t, 360)
	if t < 0 {
		t += 360
	}

	if t < 60 {
		return p + (q-p)*t/60
	}
	if t < 180 {
		return q
	}
	if t < 240 {
		return p + (q-p)*(240-t)/60
	}
	return p
}

// Lighter moves every channel up by 255*factor, clamped to 255.
func (c Colour) Lighter(factor float64) Colour {
	d := 255 * factor
	return Colour{
		R: clampByte(float64(c.R) + d),
		G: clampByte(float64(c.G) + d),
		B: clampByte(float64(c.B) + d),
		A: c.A,
	}
}

// Darker moves every channel down by 255*factor, clamped to 0.
func (c Colour) Darker(factor float64) Colour {
	d := 255 * factor
	return Colour{
		R: clampByte(float64(c.R) - d),
		G: clampByte(float64(c.G) - d),
		B: clampByte(float64(c.B) - d),
		A: c.A,
	}
}

// Saturated raises HSL saturation by amount, clamped to 1.
func (c Colour) Saturated(amount float64) Colour {
	h, s, l := c.HSL()
	return FromHSL(h, s+amount, l).WithAlpha(c.A)
}

// Desaturated lowers HSL saturation by amount, clamped to 0.
func (c Colour) Desaturated(amount float64) Colour {
	h, s, l := c.HSL()
	return FromHSL(h, s-amount, l).WithAlpha(c.A)
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func clampByte(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, v)))
}

func unitToByte(v float64) uint8 {
	return clampByte(math.Round(v * 255))
}

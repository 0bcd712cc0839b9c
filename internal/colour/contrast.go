package colour

import (
	"fmt"
	"math"
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c Colour) float64 {
	r := gammaCorrect(float64(c.R) / 255.0)
	g := gammaCorrect(float64(c.G) / 255.0)
	b := gammaCorrect(float64(c.B) / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// gammaCorrect linearises an sRGB component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the WCAG 2.0 contrast ratio of two opaque colours.
// Returns a value between 1 and 21.
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 Colour) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// AlphaBlend composites c over an opaque background.
func AlphaBlend(c, background Colour) Colour {
	alpha := int(c.A)
	inv := 255 - alpha
	return RGB(
		uint8((int(c.R)*alpha+int(background.R)*inv)/255),
		uint8((int(c.G)*alpha+int(background.G)*inv)/255),
		uint8((int(c.B)*alpha+int(background.B)*inv)/255),
	)
}

// CalculateContrast returns the contrast ratio of foreground drawn on
// background. A translucent foreground is blended over the background first.
func CalculateContrast(foreground, background Colour) (float64, error) {
	if background.A != 255 {
		return 0, fmt.Errorf("%w: %s alpha %d", ErrTranslucentBackground, background.Hex(), background.A)
	}
	if foreground.A < 255 {
		foreground = AlphaBlend(foreground, background)
	}
	return ContrastRatio(foreground, background), nil
}

const (
	minAlphaSearchMaxIterations = 10
	minAlphaSearchPrecision     = 1
)

// MinimumAlpha finds the lowest alpha at which foreground still reaches
// minContrastRatio against background. ok is false when the fully opaque
// foreground already falls short.
func MinimumAlpha(foreground, background Colour, minContrastRatio float64) (alpha uint8, ok bool, err error) {
	if background.A != 255 {
		return 0, false, fmt.Errorf("%w: %s alpha %d", ErrTranslucentBackground, background.Hex(), background.A)
	}

	contrastAt := func(a int) float64 {
		ratio, _ := CalculateContrast(foreground.WithAlpha(uint8(a)), background)
		return ratio
	}

	if contrastAt(255) < minContrastRatio {
		return 0, false, nil
	}

	minAlpha, maxAlpha := 0, 255
	for i := 0; i <= minAlphaSearchMaxIterations && maxAlpha-minAlpha > minAlphaSearchPrecision; i++ {
		test := (minAlpha + maxAlpha) / 2
		if contrastAt(test) < minContrastRatio {
			minAlpha = test
		} else {
			maxAlpha = test
		}
	}
	return uint8(maxAlpha), true, nil
}

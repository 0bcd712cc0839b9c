package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// ColourPreview returns a solid block of width spaces on a c background.
func ColourPreview(c Colour, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// ColourPreviewWithText centres text in a block of c, using black or white
// text depending on which reads better.
func ColourPreviewWithText(c Colour, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	fg := RGB(255, 255, 255)
	if ContrastRatio(c, RGB(0, 0, 0)) > ContrastRatio(c, fg) {
		fg = RGB(0, 0, 0)
	}

	displayText := text
	if len(text) > width {
		displayText = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		displayText = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	fgCode := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg.R, fg.G, fg.B, ansiSuffix)
	return bg + fgCode + displayText + ansiReset
}

// FormatColourWithPreview formats a colour with its preview and hex code.
func FormatColourWithPreview(c Colour, width int) string {
	return fmt.Sprintf("%s %s", ColourPreview(c, width), c.Hex())
}

// FormatColourWithLabel formats a colour with a label and preview.
func FormatColourWithLabel(c Colour, label string, width int) string {
	return fmt.Sprintf("%s  %-14s %s", ColourPreview(c, width), label, c.Hex())
}

// StringWithPreview renders the palette like String, with a colour block in
// front of every entry when preview is set.
func (p *Palette) StringWithPreview(preview bool) string {
	if !preview {
		return p.String()
	}
	if len(p.colors) == 0 {
		return "Empty palette\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colours:\n", len(p.colors))
	for _, pc := range p.colors {
		fmt.Fprintf(&sb, "  %s  population=%d\n", FormatColourWithPreview(pc.Colour, defaultWidth), pc.Population)
	}
	if swatches := p.Swatches(); len(swatches) > 0 {
		sb.WriteString("Swatches:\n")
		for _, s := range swatches {
			label := s.Target.Name
			if s.Derived {
				label += "*"
			}
			sb.WriteString("  " + FormatColourWithLabel(s.Color.Colour, label, defaultWidth) + "\n")
		}
	}
	return sb.String()
}

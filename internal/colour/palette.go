package colour

import (
	"encoding/json"
	"fmt"
	"image"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Options control palette generation from a bitmap.
type Options struct {
	// MaxColors bounds the quantized palette. Zero means DefaultMaxColors,
	// not "unbounded". Only negative values skip median cut and return the
	// full quantized histogram.
	MaxColors int

	// Region restricts sampling. The zero rectangle samples the whole image.
	Region image.Rectangle

	// Filters reject colours from the palette. Nil allows everything.
	Filters []Filter

	// Targets are scored in addition to the six base targets.
	Targets []Target

	// FillMissingBaseTargets derives absent base swatches from siblings.
	FillMissingBaseTargets bool

	Logger hclog.Logger
}

// Generate quantizes bm and selects swatches for every target.
// Invalid bitmaps and regions are rejected before any work is done.
func Generate(bm *Bitmap, opts Options) (*Palette, error) {
	maxColors := opts.MaxColors
	if maxColors == 0 {
		maxColors = DefaultMaxColors
	}
	filters := opts.Filters
	if len(filters) == 0 {
		filters = []Filter{AnyFilter{}}
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	colors, err := NewQuantizer(maxColors, filters, logger).Quantize(bm, opts.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to quantize colours: %w", err)
	}

	p := NewPalette(colors, opts.Targets, opts.FillMissingBaseTargets)
	logger.Debug("generated palette", "colours", len(p.colors), "swatches", len(p.swatches))
	return p, nil
}

// Swatch is a target paired with the colour selected for it.
type Swatch struct {
	Target Target       `json:"target"`
	Color  PaletteColor `json:"color"`
	// Derived is true for swatches back-filled from a sibling.
	Derived bool `json:"derived"`
}

// Palette is the result of swatch selection. It is read-only once built.
type Palette struct {
	colors   []PaletteColor
	targets  []Target
	swatches map[targetKey]PaletteColor
	derived  map[targetKey]bool
}

// NewPalette sorts colors by population and selects the best colour for each
// of targets plus the base targets. colors and targets are not modified.
func NewPalette(colors []PaletteColor, targets []Target, fillMissingBaseTargets bool) *Palette {
	sorted := slices.Clone(colors)
	slices.SortStableFunc(sorted, func(a, b PaletteColor) int {
		return b.Population - a.Population
	})

	p := &Palette{
		colors:   sorted,
		targets:  mergeTargets(targets),
		swatches: make(map[targetKey]PaletteColor),
		derived:  make(map[targetKey]bool),
	}

	sel := newSelector(sorted)
	for _, t := range p.targets {
		scored := t
		scored.NormalizeWeights()
		if pc, ok := sel.selectFor(scored); ok {
			p.swatches[t.key()] = pc
		}
	}

	if fillMissingBaseTargets {
		for _, t := range fillMissingBaseSwatches(p.swatches) {
			p.derived[t.key()] = true
		}
	}
	return p
}

// Colors returns the quantized colours, most populous first.
func (p *Palette) Colors() []PaletteColor {
	return slices.Clone(p.colors)
}

// Len returns the number of quantized colours.
func (p *Palette) Len() int {
	return len(p.colors)
}

// Dominant returns the most populous colour. It is absent for empty palettes.
func (p *Palette) Dominant() (PaletteColor, bool) {
	if len(p.colors) == 0 {
		return PaletteColor{}, false
	}
	return p.colors[0], true
}

// Swatch returns the colour selected for t.
func (p *Palette) Swatch(t Target) (PaletteColor, bool) {
	pc, ok := p.swatches[t.key()]
	return pc, ok
}

// Has reports whether a colour was selected for t.
func (p *Palette) Has(t Target) bool {
	_, ok := p.swatches[t.key()]
	return ok
}

// Lookup returns the colour selected for t, or ErrSwatchNotFound.
func (p *Palette) Lookup(t Target) (PaletteColor, error) {
	if pc, ok := p.swatches[t.key()]; ok {
		return pc, nil
	}
	return PaletteColor{}, fmt.Errorf("%w: %s", ErrSwatchNotFound, t.Name)
}

// Base target accessors.
func (p *Palette) Vibrant() (PaletteColor, bool)      { return p.Swatch(Vibrant) }
func (p *Palette) LightVibrant() (PaletteColor, bool) { return p.Swatch(LightVibrant) }
func (p *Palette) DarkVibrant() (PaletteColor, bool)  { return p.Swatch(DarkVibrant) }
func (p *Palette) Muted() (PaletteColor, bool)        { return p.Swatch(Muted) }
func (p *Palette) LightMuted() (PaletteColor, bool)   { return p.Swatch(LightMuted) }
func (p *Palette) DarkMuted() (PaletteColor, bool)    { return p.Swatch(DarkMuted) }

// Swatches returns the selected and back-filled swatches in target
// processing order.
func (p *Palette) Swatches() []Swatch {
	out := make([]Swatch, 0, len(p.swatches))
	for _, t := range p.targets {
		if pc, ok := p.swatches[t.key()]; ok {
			out = append(out, Swatch{Target: t, Color: pc, Derived: p.derived[t.key()]})
		}
	}
	return out
}

// ToHex returns the quantized colours as hex strings.
func (p *Palette) ToHex() []string {
	hex := make([]string, len(p.colors))
	for i, pc := range p.colors {
		hex[i] = pc.Colour.Hex()
	}
	return hex
}

// ColorJSON represents a palette colour in JSON output.
type ColorJSON struct {
	Hex        string `json:"hex"`
	RGB        Colour `json:"rgb"`
	Population int    `json:"population"`
}

// SwatchJSON represents a selected swatch in JSON output.
type SwatchJSON struct {
	Target  string    `json:"target"`
	Color   ColorJSON `json:"color"`
	Derived bool      `json:"derived,omitempty"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count    int          `json:"count"`
	Dominant *ColorJSON   `json:"dominant,omitempty"`
	Colors   []ColorJSON  `json:"colors"`
	Swatches []SwatchJSON `json:"swatches"`
}

func toColorJSON(pc PaletteColor) ColorJSON {
	return ColorJSON{Hex: pc.Colour.Hex(), RGB: pc.Colour, Population: pc.Population}
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	out := PaletteJSON{
		Count:    len(p.colors),
		Colors:   make([]ColorJSON, len(p.colors)),
		Swatches: []SwatchJSON{},
	}
	for i, pc := range p.colors {
		out.Colors[i] = toColorJSON(pc)
	}
	if d, ok := p.Dominant(); ok {
		dj := toColorJSON(d)
		out.Dominant = &dj
	}
	for _, s := range p.Swatches() {
		out.Swatches = append(out.Swatches, SwatchJSON{
			Target:  s.Target.Name,
			Color:   toColorJSON(s.Color),
			Derived: s.Derived,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

// String returns a human-readable representation of the palette.
func (p *Palette) String() string {
	if len(p.colors) == 0 {
		return "Empty palette\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colours:\n", len(p.colors))
	for i, pc := range p.colors {
		fmt.Fprintf(&sb, "  %2d: %s %s population=%d\n", i+1, pc.Colour.Hex(), pc.Colour, pc.Population)
	}
	if swatches := p.Swatches(); len(swatches) > 0 {
		sb.WriteString("Swatches:\n")
		for _, s := range swatches {
			suffix := ""
			if s.Derived {
				suffix = " (derived)"
			}
			fmt.Fprintf(&sb, "  %-14s %s%s\n", s.Target.Name, s.Color.Colour.Hex(), suffix)
		}
	}
	return sb.String()
}

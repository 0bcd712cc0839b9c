package colour

// transform derives one colour from another.
type transform func(Colour) Colour

func lighter(f float64) transform     { return func(c Colour) Colour { return c.Lighter(f) } }
func darker(f float64) transform      { return func(c Colour) Colour { return c.Darker(f) } }
func saturated(f float64) transform   { return func(c Colour) Colour { return c.Saturated(f) } }
func desaturated(f float64) transform { return func(c Colour) Colour { return c.Desaturated(f) } }

// derivation builds a missing swatch from a sibling, applying transforms in
// order.
type derivation struct {
	source     Target
	transforms []transform
}

func derive(source Target, transforms ...transform) derivation {
	return derivation{source: source, transforms: transforms}
}

// backfillRule lists, in priority order, the siblings a missing base target
// may be derived from.
type backfillRule struct {
	target  Target
	sources []derivation
}

// backfillRules is processed top to bottom; a swatch derived by an earlier
// rule may serve as the source for a later one.
var backfillRules = []backfillRule{
	{Vibrant, []derivation{
		derive(LightVibrant, saturated(0.5)),
		derive(DarkVibrant, lighter(0.5), saturated(0.5)),
		derive(Muted, desaturated(0.5)),
		derive(LightMuted, darker(0.5), saturated(0.5)),
		derive(DarkMuted, lighter(0.5), saturated(0.5)),
	}},
	{Muted, []derivation{
		derive(LightMuted, saturated(0.5)),
		derive(DarkMuted, lighter(0.5), saturated(0.5)),
		derive(Vibrant, saturated(0.5)),
		derive(LightVibrant, darker(0.5), saturated(0.5)),
		derive(DarkVibrant, lighter(0.5), saturated(0.5)),
	}},
	{LightMuted, []derivation{
		derive(Muted, lighter(0.3)),
		derive(DarkMuted, lighter(0.8)),
		derive(LightVibrant, desaturated(0.5)),
		derive(Vibrant, lighter(0.3), desaturated(0.5)),
		derive(DarkVibrant, lighter(0.8), desaturated(0.5)),
	}},
	{DarkMuted, []derivation{
		derive(Muted, darker(0.3)),
		derive(LightMuted, darker(0.8)),
		derive(DarkVibrant, desaturated(0.5)),
		derive(Vibrant, darker(0.3), desaturated(0.5)),
		derive(LightVibrant, darker(0.8), desaturated(0.5)),
	}},
	{DarkVibrant, []derivation{
		derive(Vibrant, darker(0.3)),
		derive(LightVibrant, darker(0.8)),
		derive(DarkMuted, saturated(0.5)),
		derive(Muted, darker(0.3), saturated(0.5)),
		derive(LightMuted, darker(0.8), saturated(0.5)),
	}},
	{LightVibrant, []derivation{
		derive(Vibrant, lighter(0.3)),
		derive(DarkVibrant, lighter(0.8)),
		derive(LightMuted, saturated(0.5)),
		derive(Muted, lighter(0.3), saturated(0.5)),
		derive(DarkMuted, lighter(0.8), saturated(0.5)),
	}},
}

// fillMissingBaseSwatches derives every absent base swatch from the first
// present sibling in its rule. Derived swatches have population 0.
func fillMissingBaseSwatches(swatches map[targetKey]PaletteColor) []Target {
	var filled []Target
	for _, rule := range backfillRules {
		if _, ok := swatches[rule.target.key()]; ok {
			continue
		}
		for _, d := range rule.sources {
			src, ok := swatches[d.source.key()]
			if !ok {
				continue
			}
			c := src.Colour
			for _, fn := range d.transforms {
				c = fn(c)
			}
			swatches[rule.target.key()] = PaletteColor{Colour: c, Population: 0}
			filled = append(filled, rule.target)
			break
		}
	}
	return filled
}

package colour

import "math"

// mergeTargets returns the caller's targets followed by every base target,
// dropping any target numerically equal to one already listed.
func mergeTargets(targets []Target) []Target {
	merged := make([]Target, 0, len(targets)+6)
	seen := make(map[targetKey]bool, len(targets)+6)
	for _, t := range append(append([]Target(nil), targets...), BaseTargets()...) {
		k := t.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		merged = append(merged, t)
	}
	return merged
}

// selector scores population-sorted colours against targets.
type selector struct {
	colors             []PaletteColor
	dominantPopulation int
	used               map[uint32]bool
}

func newSelector(sorted []PaletteColor) *selector {
	s := &selector{
		colors: sorted,
		used:   make(map[uint32]bool),
	}
	if len(sorted) > 0 {
		s.dominantPopulation = sorted[0].Population
	}
	return s
}

// selectFor returns the best eligible colour for t. t must already have
// normalized weights. Exclusive targets claim the colour they select.
func (s *selector) selectFor(t Target) (PaletteColor, bool) {
	best, ok := s.maxScored(t)
	if ok && t.Exclusive {
		s.used[best.Colour.key()] = true
	}
	return best, ok
}

func (s *selector) maxScored(t Target) (PaletteColor, bool) {
	var (
		best      PaletteColor
		bestScore float64
		found     bool
	)
	for _, pc := range s.colors {
		if !s.eligible(pc, t) {
			continue
		}
		score := s.score(pc, t)
		if !found || score > bestScore {
			best, bestScore, found = pc, score, true
		}
	}
	return best, found
}

func (s *selector) eligible(pc PaletteColor, t Target) bool {
	_, sat, light := pc.Colour.HSL()
	return sat >= t.MinimumSaturation &&
		sat <= t.MaximumSaturation &&
		light >= t.MinimumLightness &&
		light <= t.MaximumLightness &&
		!s.used[pc.Colour.key()]
}

func (s *selector) score(pc PaletteColor, t Target) float64 {
	_, sat, light := pc.Colour.HSL()

	var satScore, lightScore, popScore float64
	if t.SaturationWeight != 0 {
		satScore = t.SaturationWeight * (1 - math.Abs(sat-t.TargetSaturation))
	}
	if t.LightnessWeight != 0 {
		lightScore = t.LightnessWeight * (1 - math.Abs(light-t.TargetLightness))
	}
	if t.PopulationWeight != 0 && s.dominantPopulation > 0 {
		popScore = t.PopulationWeight * (float64(pc.Population) / float64(s.dominantPopulation))
	}
	return satScore + lightScore + popScore
}

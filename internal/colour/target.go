package colour

import "fmt"

// Target describes the swatch a caller wants: acceptable saturation and
// lightness bands, the ideal values inside them, and how much saturation,
// lightness and population each count towards the score.
type Target struct {
	Name string `json:"name"`

	MinimumSaturation float64 `json:"minimumSaturation"`
	TargetSaturation  float64 `json:"targetSaturation"`
	MaximumSaturation float64 `json:"maximumSaturation"`

	MinimumLightness float64 `json:"minimumLightness"`
	TargetLightness  float64 `json:"targetLightness"`
	MaximumLightness float64 `json:"maximumLightness"`

	SaturationWeight float64 `json:"saturationWeight"`
	LightnessWeight  float64 `json:"lightnessWeight"`
	PopulationWeight float64 `json:"populationWeight"`

	// Exclusive targets claim their selected colour so later targets
	// cannot pick it.
	Exclusive bool `json:"exclusive"`
}

const (
	targetDarkLightness = 0.26
	maxDarkLightness    = 0.45

	minLightLightness    = 0.55
	targetLightLightness = 0.74

	minNormalLightness = 0.3
	maxNormalLightness = 0.7

	targetMutedSaturation = 0.3
	maxMutedSaturation    = 0.4

	targetVibrantSaturation = 1.0
	minVibrantSaturation    = 0.35

	weightSaturation = 0.24
	weightLightness  = 0.52
	weightPopulation = 0.24
)

// NewTarget returns a target that accepts any colour, aims for mid
// saturation and lightness, and uses the default weights.
func NewTarget(name string) Target {
	return Target{
		Name:              name,
		MinimumSaturation: 0,
		TargetSaturation:  0.5,
		MaximumSaturation: 1,
		MinimumLightness:  0,
		TargetLightness:   0.5,
		MaximumLightness:  1,
		SaturationWeight:  weightSaturation,
		LightnessWeight:   weightLightness,
		PopulationWeight:  weightPopulation,
		Exclusive:         true,
	}
}

// The six base targets. They are always scored, whatever targets a caller
// supplies.
var (
	LightVibrant = func() Target {
		t := NewTarget("LightVibrant")
		t.TargetLightness = targetLightLightness
		t.MinimumLightness = minLightLightness
		t.MinimumSaturation = minVibrantSaturation
		t.TargetSaturation = targetVibrantSaturation
		return t
	}()

	Vibrant = func() Target {
		t := NewTarget("Vibrant")
		t.MinimumLightness = minNormalLightness
		t.MaximumLightness = maxNormalLightness
		t.MinimumSaturation = minVibrantSaturation
		t.TargetSaturation = targetVibrantSaturation
		return t
	}()

	DarkVibrant = func() Target {
		t := NewTarget("DarkVibrant")
		t.TargetLightness = targetDarkLightness
		t.MaximumLightness = maxDarkLightness
		t.MinimumSaturation = minVibrantSaturation
		t.TargetSaturation = targetVibrantSaturation
		return t
	}()

	LightMuted = func() Target {
		t := NewTarget("LightMuted")
		t.TargetLightness = targetLightLightness
		t.MinimumLightness = minLightLightness
		t.TargetSaturation = targetMutedSaturation
		t.MaximumSaturation = maxMutedSaturation
		return t
	}()

	Muted = func() Target {
		t := NewTarget("Muted")
		t.MinimumLightness = minNormalLightness
		t.MaximumLightness = maxNormalLightness
		t.TargetSaturation = targetMutedSaturation
		t.MaximumSaturation = maxMutedSaturation
		return t
	}()

	DarkMuted = func() Target {
		t := NewTarget("DarkMuted")
		t.TargetLightness = targetDarkLightness
		t.MaximumLightness = maxDarkLightness
		t.TargetSaturation = targetMutedSaturation
		t.MaximumSaturation = maxMutedSaturation
		return t
	}()
)

// BaseTargets returns copies of the six base targets in scoring order.
func BaseTargets() []Target {
	return []Target{
		LightVibrant,
		Vibrant,
		DarkVibrant,
		LightMuted,
		Muted,
		DarkMuted,
	}
}

// BaseTargetByName looks up a base target by its name.
func BaseTargetByName(name string) (Target, bool) {
	for _, t := range BaseTargets() {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

// NormalizeWeights scales the three weights so they sum to 1. Weights
// summing to exactly 0 are left alone.
func (t *Target) NormalizeWeights() {
	sum := t.SaturationWeight + t.LightnessWeight + t.PopulationWeight
	if sum != 0 {
		t.SaturationWeight /= sum
		t.LightnessWeight /= sum
		t.PopulationWeight /= sum
	}
}

// targetKey is the numeric profile of a target. Name and Exclusive do not
// take part in equality.
type targetKey struct {
	minSat, targetSat, maxSat         float64
	minLight, targetLight, maxLight   float64
	satWeight, lightWeight, popWeight float64
}

func (t Target) key() targetKey {
	return targetKey{
		minSat:      t.MinimumSaturation,
		targetSat:   t.TargetSaturation,
		maxSat:      t.MaximumSaturation,
		minLight:    t.MinimumLightness,
		targetLight: t.TargetLightness,
		maxLight:    t.MaximumLightness,
		satWeight:   t.SaturationWeight,
		lightWeight: t.LightnessWeight,
		popWeight:   t.PopulationWeight,
	}
}

// Equal reports whether two targets share the same nine numeric fields.
func (t Target) Equal(other Target) bool {
	return t.key() == other.key()
}

// Validate checks that every bound and target lies in [0, 1] and that the
// weights are non-negative. Impossible bands (min > max) are allowed; they
// simply never match.
func (t Target) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"minimum saturation", t.MinimumSaturation},
		{"target saturation", t.TargetSaturation},
		{"maximum saturation", t.MaximumSaturation},
		{"minimum lightness", t.MinimumLightness},
		{"target lightness", t.TargetLightness},
		{"maximum lightness", t.MaximumLightness},
	}
	for _, f := range fields {
		if f.value < 0 || f.value > 1 {
			return fmt.Errorf("target %q: %s %.3f out of range [0, 1]", t.Name, f.name, f.value)
		}
	}
	if t.SaturationWeight < 0 || t.LightnessWeight < 0 || t.PopulationWeight < 0 {
		return fmt.Errorf("target %q: weights must not be negative", t.Name)
	}
	return nil
}

// String returns a compact description of the target.
func (t Target) String() string {
	return fmt.Sprintf("%s: saturation %.2f/%.2f/%.2f, lightness %.2f/%.2f/%.2f, weights %.2f/%.2f/%.2f",
		t.Name,
		t.MinimumSaturation, t.TargetSaturation, t.MaximumSaturation,
		t.MinimumLightness, t.TargetLightness, t.MaximumLightness,
		t.SaturationWeight, t.LightnessWeight, t.PopulationWeight)
}

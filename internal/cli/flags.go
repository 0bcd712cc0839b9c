package cli

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/spf13/pflag"
)

// regionValue is a pflag.Value for "x0,y0,x1,y1" rectangles.
type regionValue struct {
	rect image.Rectangle
}

var _ pflag.Value = (*regionValue)(nil)

func (r *regionValue) String() string {
	if r.rect.Empty() {
		return ""
	}
	return fmt.Sprintf("%d,%d,%d,%d", r.rect.Min.X, r.rect.Min.Y, r.rect.Max.X, r.rect.Max.Y)
}

func (r *regionValue) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return fmt.Errorf("expected x0,y0,x1,y1, got %q", s)
	}
	var coords [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("invalid coordinate %q: %w", p, err)
		}
		if n < 0 {
			return fmt.Errorf("coordinate %d must not be negative", n)
		}
		coords[i] = n
	}
	if coords[2] <= coords[0] || coords[3] <= coords[1] {
		return fmt.Errorf("region %q is empty", s)
	}
	r.rect = image.Rect(coords[0], coords[1], coords[2], coords[3])
	return nil
}

func (r *regionValue) Type() string { return "region" }

// targetsValue is a repeatable pflag.Value holding custom targets, each
// given as comma-separated key=value pairs.
type targetsValue struct {
	targets []colour.Target
}

var _ pflag.Value = (*targetsValue)(nil)

func (t *targetsValue) String() string {
	names := make([]string, len(t.targets))
	for i, target := range t.targets {
		names[i] = target.Name
	}
	return strings.Join(names, ",")
}

func (t *targetsValue) Set(s string) error {
	target, err := parseTarget(s)
	if err != nil {
		return err
	}
	t.targets = append(t.targets, target)
	return nil
}

func (t *targetsValue) Type() string { return "target" }

// targetFields maps --target keys to the float fields they set.
var targetFields = map[string]func(*colour.Target) *float64{
	"min-sat":      func(t *colour.Target) *float64 { return &t.MinimumSaturation },
	"target-sat":   func(t *colour.Target) *float64 { return &t.TargetSaturation },
	"max-sat":      func(t *colour.Target) *float64 { return &t.MaximumSaturation },
	"min-light":    func(t *colour.Target) *float64 { return &t.MinimumLightness },
	"target-light": func(t *colour.Target) *float64 { return &t.TargetLightness },
	"max-light":    func(t *colour.Target) *float64 { return &t.MaximumLightness },
	"sat-weight":   func(t *colour.Target) *float64 { return &t.SaturationWeight },
	"light-weight": func(t *colour.Target) *float64 { return &t.LightnessWeight },
	"pop-weight":   func(t *colour.Target) *float64 { return &t.PopulationWeight },
}

// parseTarget parses "name=Brand,base=Vibrant,min-sat=0.5,exclusive=false".
// A base key starts from a copy of that base target, otherwise the
// defaults of colour.NewTarget apply.
func parseTarget(s string) (colour.Target, error) {
	pairs := make(map[string]string)
	var order []string
	for _, field := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(field), "=")
		if !ok || key == "" {
			return colour.Target{}, fmt.Errorf("invalid target field %q: expected key=value", field)
		}
		if _, dup := pairs[key]; dup {
			return colour.Target{}, fmt.Errorf("duplicate target field %q", key)
		}
		pairs[key] = value
		order = append(order, key)
	}

	name := pairs["name"]
	if name == "" {
		return colour.Target{}, fmt.Errorf("target %q needs a name", s)
	}

	target := colour.NewTarget(name)
	if base, ok := pairs["base"]; ok {
		b, found := colour.BaseTargetByName(base)
		if !found {
			return colour.Target{}, fmt.Errorf("unknown base target %q", base)
		}
		target = b
		target.Name = name
	}

	for _, key := range order {
		value := pairs[key]
		switch key {
		case "name", "base":
			continue
		case "exclusive":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return colour.Target{}, fmt.Errorf("invalid exclusive value %q: %w", value, err)
			}
			target.Exclusive = b
		default:
			field, known := targetFields[key]
			if !known {
				return colour.Target{}, fmt.Errorf("unknown target field %q", key)
			}
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return colour.Target{}, fmt.Errorf("invalid %s value %q: %w", key, value, err)
			}
			*field(&target) = f
		}
	}

	if err := target.Validate(); err != nil {
		return colour.Target{}, err
	}
	return target, nil
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Environment variables that override extract flag defaults.
const (
	envColours      = "SWATCH_COLOURS"
	envFilter       = "SWATCH_FILTER"
	envFill         = "SWATCH_FILL"
	envFormat       = "SWATCH_FORMAT"
	envMaxDimension = "SWATCH_MAX_DIMENSION"
)

// lookupFunc matches os.LookupEnv.
type lookupFunc func(key string) (string, bool)

// extractDefaults are the extract flag defaults after applying the
// environment.
type extractDefaults struct {
	Colours      int
	Filter       string
	Fill         bool
	Format       string
	MaxDimension int

	// Warnings describe environment values that were ignored. They are
	// logged once the command runs and its logger exists.
	Warnings []string
}

func builtinExtractDefaults() extractDefaults {
	return extractDefaults{
		Colours: colour.DefaultMaxColors,
		Filter:  colour.FilterNameAny,
		Format:  formatText,
	}
}

// loadExtractDefaults applies SWATCH_* variables over the built-in defaults.
// Invalid values keep the built-in default.
func loadExtractDefaults(lookup lookupFunc) extractDefaults {
	d := builtinExtractDefaults()
	if lookup == nil {
		return d
	}

	if v, ok := lookup(envColours); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 256 {
			d.warn(envColours, v, "expected an integer between 1 and 256")
		} else {
			d.Colours = n
		}
	}
	if v, ok := lookup(envFilter); ok {
		if _, known := colour.FilterByName(v); known {
			d.Filter = v
		} else {
			d.warn(envFilter, v, "unknown filter")
		}
	}
	if v, ok := lookup(envFill); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			d.warn(envFill, v, "expected a boolean")
		} else {
			d.Fill = b
		}
	}
	if v, ok := lookup(envFormat); ok {
		if isValidFormat(v) {
			d.Format = v
		} else {
			d.warn(envFormat, v, "unknown format")
		}
	}
	if v, ok := lookup(envMaxDimension); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			d.warn(envMaxDimension, v, "expected a non-negative integer")
		} else {
			d.MaxDimension = n
		}
	}
	return d
}

func (d *extractDefaults) warn(key, value, reason string) {
	d.Warnings = append(d.Warnings, fmt.Sprintf("ignoring %s=%q: %s", key, value, reason))
}

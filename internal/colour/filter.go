package colour

// Filter decides whether a colour may appear in a palette.
type Filter interface {
	IsAllowed(c Colour) bool
}

// FilterFunc adapts a function to the Filter interface.
type FilterFunc func(c Colour) bool

// IsAllowed implements Filter.
func (f FilterFunc) IsAllowed(c Colour) bool {
	return f(c)
}

// AnyFilter accepts every colour.
type AnyFilter struct{}

// IsAllowed implements Filter.
func (AnyFilter) IsAllowed(Colour) bool { return true }

// AvoidRedBlackWhiteFilter rejects pure black, pure white and colours close
// to the red "I-line" (strong red with weak green and blue).
type AvoidRedBlackWhiteFilter struct{}

// IsAllowed implements Filter.
func (AvoidRedBlackWhiteFilter) IsAllowed(c Colour) bool {
	return !isBlack(c) && !isWhite(c) && !isNearRedILine(c)
}

func isBlack(c Colour) bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

func isWhite(c Colour) bool {
	return c.R == 255 && c.G == 255 && c.B == 255
}

func isNearRedILine(c Colour) bool {
	return c.R > 128 && c.G < 128 && c.B < 128
}

// Filter names accepted by FilterByName.
const (
	FilterNameAny                = "any"
	FilterNameAvoidRedBlackWhite = "avoid-red-black-white"
)

// FilterByName returns the stock filter registered under name.
func FilterByName(name string) (Filter, bool) {
	switch name {
	case FilterNameAny, "":
		return AnyFilter{}, true
	case FilterNameAvoidRedBlackWhite:
		return AvoidRedBlackWhiteFilter{}, true
	default:
		return nil, false
	}
}

// allowed reports whether every filter accepts c.
func allowed(filters []Filter, c Colour) bool {
	for _, f := range filters {
		if !f.IsAllowed(c) {
			return false
		}
	}
	return true
}

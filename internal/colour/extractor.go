package colour

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Extractor defines the interface for palette extraction from decoded images.
type Extractor interface {
	// Extract builds a palette from img.
	Extract(img image.Image) (*Palette, error)
}

// ExtractorConfig holds configuration for palette extraction.
type ExtractorConfig struct {
	MaxColors              int
	Filter                 string
	Targets                []Target
	FillMissingBaseTargets bool
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxColors: DefaultMaxColors,
		Filter:    FilterNameAny,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if c.MaxColors < 1 {
		return fmt.Errorf("colour count must be at least 1, got %d", c.MaxColors)
	}
	if c.MaxColors > 256 {
		return fmt.Errorf("colour count too large: %d (maximum: 256)", c.MaxColors)
	}
	if _, ok := FilterByName(c.Filter); !ok {
		return fmt.Errorf("unknown filter: %s (valid filters: %s, %s)", c.Filter, FilterNameAny, FilterNameAvoidRedBlackWhite)
	}
	for _, t := range c.Targets {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// MedianCutExtractor extracts palettes with the median-cut quantizer.
type MedianCutExtractor struct {
	config ExtractorConfig
	opts   Options
}

// NewMedianCutExtractor creates an extractor from a validated config.
func NewMedianCutExtractor(config ExtractorConfig, opts Options) (*MedianCutExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	filter, _ := FilterByName(config.Filter)
	opts.MaxColors = config.MaxColors
	opts.Filters = []Filter{filter}
	opts.Targets = config.Targets
	opts.FillMissingBaseTargets = config.FillMissingBaseTargets
	return &MedianCutExtractor{config: config, opts: opts}, nil
}

// Extract converts img to a Bitmap and generates its palette.
func (e *MedianCutExtractor) Extract(img image.Image) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	bm, err := BitmapFromImage(img)
	if err != nil {
		return nil, err
	}
	return e.ExtractBitmap(bm, image.Rectangle{})
}

// ExtractBitmap generates the palette of region in bm. The zero region
// samples the whole bitmap.
func (e *MedianCutExtractor) ExtractBitmap(bm *Bitmap, region image.Rectangle) (*Palette, error) {
	opts := e.opts
	opts.Region = region
	return Generate(bm, opts)
}

// BitmapFromImage converts img to a non-premultiplied RGBA Bitmap whose
// origin is the image's top-left corner. Tightly packed *image.NRGBA images
// share their pixel buffer with the result.
func BitmapFromImage(img image.Image) (*Bitmap, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: image has no pixels", ErrInvalidBitmap)
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) || nrgba.Stride != 4*bounds.Dx() {
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}
	return NewBitmap(bounds.Dx(), bounds.Dy(), nrgba.Pix[:4*bounds.Dx()*bounds.Dy()])
}

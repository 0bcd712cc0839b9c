package colour

import (
	"errors"
	"image"
	"slices"
	"testing"
)

// newTestBitmap builds a width x height bitmap from fn(x, y).
func newTestBitmap(t *testing.T, width, height int, fn func(x, y int) Colour) *Bitmap {
	t.Helper()
	pix := make([]uint8, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := fn(x, y)
			i := (y*width + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
	bm, err := NewBitmap(width, height, pix)
	if err != nil {
		t.Fatalf("NewBitmap() error = %v", err)
	}
	return bm
}

func totalPopulation(colors []PaletteColor) int {
	total := 0
	for _, pc := range colors {
		total += pc.Population
	}
	return total
}

func TestQuantizeRedBlueUnsplit(t *testing.T) {
	bm := newTestBitmap(t, 4, 4, func(x, y int) Colour {
		if y < 2 {
			return RGB(255, 0, 0)
		}
		return RGB(0, 0, 255)
	})

	colors, err := NewQuantizer(16, []Filter{AnyFilter{}}, nil).Quantize(bm, image.Rectangle{})
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}

	want := []PaletteColor{
		{Colour: RGB(248, 0, 0), Population: 8},
		{Colour: RGB(0, 0, 248), Population: 8},
	}
	if !slices.Equal(colors, want) {
		t.Errorf("Quantize() = %v, want %v", colors, want)
	}
}

func TestQuantizeSolidColour(t *testing.T) {
	bm := newTestBitmap(t, 7, 5, func(x, y int) Colour {
		return RGB(100, 150, 200)
	})

	colors, err := NewQuantizer(16, nil, nil).Quantize(bm, image.Rectangle{})
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	if len(colors) != 1 {
		t.Fatalf("Quantize() returned %d colours, want 1", len(colors))
	}
	if colors[0].Population != 35 {
		t.Errorf("population = %d, want 35", colors[0].Population)
	}
	if want := RGB(96, 144, 200); colors[0].Colour != want {
		t.Errorf("colour = %v, want %v", colors[0].Colour, want)
	}
}

func TestQuantizeTransparent(t *testing.T) {
	bm := newTestBitmap(t, 3, 3, func(x, y int) Colour {
		return Colour{R: 200, G: 10, B: 10, A: 0}
	})

	colors, err := NewQuantizer(16, nil, nil).Quantize(bm, image.Rectangle{})
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	if len(colors) != 0 {
		t.Errorf("Quantize() = %v, want empty", colors)
	}
}

func TestQuantizeSemiTransparentCounted(t *testing.T) {
	bm := newTestBitmap(t, 2, 1, func(x, y int) Colour {
		return Colour{R: 64, G: 64, B: 64, A: uint8(1 + x)}
	})

	colors, err := NewQuantizer(16, nil, nil).Quantize(bm, image.Rectangle{})
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	if len(colors) != 1 || colors[0].Population != 2 {
		t.Errorf("Quantize() = %v, want one colour with population 2", colors)
	}
	if colors[0].Colour.A != 255 {
		t.Errorf("quantized alpha = %d, want 255", colors[0].Colour.A)
	}
}

func TestQuantizeRegion(t *testing.T) {
	bm := newTestBitmap(t, 4, 4, func(x, y int) Colour {
		if x < 2 {
			return RGB(255, 0, 0)
		}
		return RGB(0, 0, 255)
	})

	colors, err := NewQuantizer(16, nil, nil).Quantize(bm, image.Rect(0, 1, 2, 4))
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	want := []PaletteColor{{Colour: RGB(248, 0, 0), Population: 6}}
	if !slices.Equal(colors, want) {
		t.Errorf("Quantize() = %v, want %v", colors, want)
	}
}

func TestQuantizeInvalidInput(t *testing.T) {
	bm := newTestBitmap(t, 4, 4, func(x, y int) Colour { return RGB(1, 2, 3) })

	tests := []struct {
		name    string
		bitmap  *Bitmap
		region  image.Rectangle
		wantErr error
	}{
		{
			name:    "region past right edge",
			bitmap:  bm,
			region:  image.Rect(0, 0, 5, 4),
			wantErr: ErrRegionOutOfBounds,
		},
		{
			name:    "negative region",
			bitmap:  bm,
			region:  image.Rect(-1, 0, 2, 2),
			wantErr: ErrRegionOutOfBounds,
		},
		{
			name:    "short pixel buffer",
			bitmap:  &Bitmap{Width: 4, Height: 4, Pix: make([]uint8, 60)},
			wantErr: ErrPixelBufferSize,
		},
		{
			name:    "zero size",
			bitmap:  &Bitmap{},
			wantErr: ErrInvalidBitmap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQuantizer(16, nil, nil).Quantize(tt.bitmap, tt.region)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Quantize() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestQuantizeFiltersHistogram(t *testing.T) {
	bm := newTestBitmap(t, 3, 1, func(x, y int) Colour {
		switch x {
		case 0:
			return RGB(0, 0, 0)
		case 1:
			return RGB(220, 30, 30)
		default:
			return RGB(40, 80, 200)
		}
	})

	colors, err := NewQuantizer(16, []Filter{AvoidRedBlackWhiteFilter{}}, nil).Quantize(bm, image.Rectangle{})
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	want := []PaletteColor{{Colour: RGB(40, 80, 200), Population: 1}}
	if !slices.Equal(colors, want) {
		t.Errorf("Quantize() = %v, want %v", colors, want)
	}
}

// gradient has 1024 distinct quantized colours.
func gradient(x, y int) Colour {
	return RGB(uint8(x*8), uint8(y*8), uint8((x+y)%4*64))
}

func TestQuantizeMedianCut(t *testing.T) {
	bm := newTestBitmap(t, 32, 32, gradient)

	for _, maxColors := range []int{1, 2, 5, 16, 64} {
		colors, err := NewQuantizer(maxColors, nil, nil).Quantize(bm, image.Rectangle{})
		if err != nil {
			t.Fatalf("Quantize(%d) error = %v", maxColors, err)
		}
		if len(colors) != maxColors {
			t.Errorf("Quantize(%d) returned %d colours", maxColors, len(colors))
		}
		if got := totalPopulation(colors); got != 32*32 {
			t.Errorf("Quantize(%d) total population = %d, want %d", maxColors, got, 32*32)
		}
		for _, pc := range colors {
			if pc.Population < 1 {
				t.Errorf("Quantize(%d) produced empty colour %v", maxColors, pc)
			}
		}
	}
}

func TestQuantizeDeterministic(t *testing.T) {
	bm := newTestBitmap(t, 32, 32, gradient)
	q := NewQuantizer(12, nil, nil)

	first, err := q.Quantize(bm, image.Rectangle{})
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	second, err := q.Quantize(bm, image.Rectangle{})
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	if !slices.Equal(first, second) {
		t.Errorf("Quantize() not deterministic:\n%v\n%v", first, second)
	}
}

func TestQuantizeDoesNotMutatePixels(t *testing.T) {
	bm := newTestBitmap(t, 32, 32, gradient)
	before := slices.Clone(bm.Pix)

	if _, err := NewQuantizer(8, nil, nil).Quantize(bm, image.Rectangle{}); err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	if !slices.Equal(before, bm.Pix) {
		t.Error("Quantize() modified the pixel buffer")
	}
}

func TestQuantizeNonPositiveMaxColors(t *testing.T) {
	bm := newTestBitmap(t, 32, 32, gradient)

	colors, err := NewQuantizer(-1, nil, nil).Quantize(bm, image.Rectangle{})
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	if len(colors) != 1024 {
		t.Errorf("Quantize(-1) returned %d colours, want the full histogram of 1024", len(colors))
	}
}

func TestQuantizeFiltersAverageColours(t *testing.T) {
	bm := newTestBitmap(t, 32, 32, gradient)
	onlyDark := FilterFunc(func(c Colour) bool { return c.R < 128 })

	colors, err := NewQuantizer(8, []Filter{onlyDark}, nil).Quantize(bm, image.Rectangle{})
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	for _, pc := range colors {
		if pc.Colour.R >= 128 {
			t.Errorf("filtered colour %v in output", pc.Colour)
		}
	}
}

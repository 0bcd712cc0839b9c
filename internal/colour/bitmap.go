package colour

import (
	"fmt"
	"image"
)

// Bitmap is a decoded, non-premultiplied RGBA pixel buffer in row-major
// order with a stride of 4*Width bytes.
type Bitmap struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBitmap wraps pix after checking it holds exactly width*height pixels.
// pix is not copied and is never modified.
func NewBitmap(width, height int, pix []uint8) (*Bitmap, error) {
	bm := &Bitmap{Width: width, Height: height, Pix: pix}
	if err := bm.Validate(); err != nil {
		return nil, err
	}
	return bm, nil
}

// Validate checks the dimensions against the buffer length.
func (bm *Bitmap) Validate() error {
	if bm == nil || bm.Width <= 0 || bm.Height <= 0 {
		return ErrInvalidBitmap
	}
	if len(bm.Pix) != bm.Width*bm.Height*4 {
		return fmt.Errorf("%w: got %d bytes, want %d for %dx%d RGBA",
			ErrPixelBufferSize, len(bm.Pix), bm.Width*bm.Height*4, bm.Width, bm.Height)
	}
	return nil
}

// Bounds returns the full image rectangle.
func (bm *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, bm.Width, bm.Height)
}

// At returns the pixel at column x, row y.
func (bm *Bitmap) At(x, y int) Colour {
	i := (y*bm.Width + x) * 4
	return Colour{R: bm.Pix[i], G: bm.Pix[i+1], B: bm.Pix[i+2], A: bm.Pix[i+3]}
}

// ResolveRegion validates region against the bitmap and returns the
// rectangle to sample. Only the zero rectangle selects the whole image;
// any other empty region samples nothing.
func (bm *Bitmap) ResolveRegion(region image.Rectangle) (image.Rectangle, error) {
	bounds := bm.Bounds()
	if region.Min.X < 0 || region.Min.Y < 0 || region.Max.X > bounds.Max.X || region.Max.Y > bounds.Max.Y {
		return image.Rectangle{}, fmt.Errorf("%w: %v not within %v", ErrRegionOutOfBounds, region, bounds)
	}
	if region == (image.Rectangle{}) {
		return bounds, nil
	}
	return region, nil
}

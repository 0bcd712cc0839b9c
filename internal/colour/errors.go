package colour

import "errors"

var (
	// ErrInvalidBitmap is returned for bitmaps with non-positive dimensions.
	ErrInvalidBitmap = errors.New("invalid bitmap")

	// ErrPixelBufferSize is returned when the pixel buffer length does not
	// match width*height*4.
	ErrPixelBufferSize = errors.New("pixel buffer size does not match image dimensions")

	// ErrRegionOutOfBounds is returned when a region of interest extends
	// outside the image.
	ErrRegionOutOfBounds = errors.New("region is outside the image")

	// ErrInvariantViolation marks internal programming errors. It is never
	// caused by caller input.
	ErrInvariantViolation = errors.New("internal invariant violated")

	// ErrUnsplittableBox is returned when the quantizer attempts to split a
	// box holding a single colour.
	ErrUnsplittableBox = errors.New("cannot split a box with only 1 colour")

	// ErrSwatchNotFound is returned by Palette.Lookup when no swatch was
	// selected or back-filled for a target.
	ErrSwatchNotFound = errors.New("swatch not found")

	// ErrTranslucentBackground is returned by contrast helpers when the
	// background colour is not fully opaque.
	ErrTranslucentBackground = errors.New("background cannot be translucent")
)

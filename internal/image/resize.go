package image

import (
	"image"
	"math"

	"github.com/nfnt/resize"
)

// Downscale shrinks img so neither side exceeds maxDimension, keeping the
// aspect ratio. It returns the image and the applied scale factor; images
// already small enough, or a non-positive maxDimension, come back untouched
// with a scale of 1. Sampling is nearest neighbour so no blended colours
// enter the histogram.
func Downscale(img image.Image, maxDimension int) (image.Image, float64) {
	bounds := img.Bounds()
	longest := max(bounds.Dx(), bounds.Dy())
	if maxDimension <= 0 || longest <= maxDimension {
		return img, 1
	}

	scale := float64(maxDimension) / float64(longest)
	w := max(1, int(math.Round(float64(bounds.Dx())*scale)))
	h := max(1, int(math.Round(float64(bounds.Dy())*scale)))

	return resize.Resize(uint(w), uint(h), img, resize.NearestNeighbor), scale
}

// ScaleRect maps a rectangle through the scale returned by Downscale and
// clips it to bounds. The zero rectangle stays zero. A non-empty rectangle
// always maps to at least one pixel, so a strip at the far edge of the
// source never collapses to nothing after clipping.
func ScaleRect(r image.Rectangle, scale float64, bounds image.Rectangle) image.Rectangle {
	if r.Empty() || scale == 1 || bounds.Empty() {
		return r
	}
	minX := min(int(math.Floor(float64(r.Min.X)*scale)), bounds.Max.X-1)
	minY := min(int(math.Floor(float64(r.Min.Y)*scale)), bounds.Max.Y-1)
	maxX := max(int(math.Ceil(float64(r.Max.X)*scale)), minX+1)
	maxY := max(int(math.Ceil(float64(r.Max.Y)*scale)), minY+1)
	return image.Rect(minX, minY, maxX, maxY).Intersect(bounds)
}

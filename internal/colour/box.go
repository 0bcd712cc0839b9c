package colour

import (
	"fmt"
	"slices"
)

// channel identifies one of the RGB channels.
type channel int

const (
	channelRed channel = iota
	channelGreen
	channelBlue
)

// arena is the shared, reorderable list of distinct colours that boxes index
// into. Sorting a box's range in place is visible to every other box.
type arena struct {
	colours []Colour
	hist    *Histogram
}

func (a *arena) count(c Colour) int {
	n, _ := a.hist.Count(c)
	return n
}

// box is an axis-aligned bounding box in RGB space over the arena range
// [lower, upper].
type box struct {
	arena *arena
	lower int
	upper int

	minRed, maxRed     uint8
	minGreen, maxGreen uint8
	minBlue, maxBlue   uint8
	population         int
	volume             int
}

func newBox(a *arena, lower, upper int) *box {
	b := &box{arena: a, lower: lower, upper: upper}
	b.fit()
	return b
}

// colourCount returns the number of distinct colours in the box.
func (b *box) colourCount() int {
	return 1 + b.upper - b.lower
}

func (b *box) canSplit() bool {
	return b.colourCount() > 1
}

// fit shrinks the bounds to the colours in range and recomputes population
// and volume.
func (b *box) fit() {
	minR, minG, minB := 255, 255, 255
	maxR, maxG, maxB := 0, 0, 0
	population := 0
	for _, c := range b.arena.colours[b.lower : b.upper+1] {
		population += b.arena.count(c)
		minR, maxR = min(minR, int(c.R)), max(maxR, int(c.R))
		minG, maxG = min(minG, int(c.G)), max(maxG, int(c.G))
		minB, maxB = min(minB, int(c.B)), max(maxB, int(c.B))
	}
	b.minRed, b.maxRed = uint8(minR), uint8(maxR)
	b.minGreen, b.maxGreen = uint8(minG), uint8(maxG)
	b.minBlue, b.maxBlue = uint8(minB), uint8(maxB)
	b.population = population
	b.volume = (maxR - minR + 1) * (maxG - minG + 1) * (maxB - minB + 1)
}

// longestDimension returns the channel with the widest range. Ties prefer
// red, then green.
func (b *box) longestDimension() channel {
	red := int(b.maxRed) - int(b.minRed)
	green := int(b.maxGreen) - int(b.minGreen)
	blue := int(b.maxBlue) - int(b.minBlue)

	switch {
	case red >= green && red >= blue:
		return channelRed
	case green >= red && green >= blue:
		return channelGreen
	default:
		return channelBlue
	}
}

// sortKey orders colours primarily by ch, then by the remaining channels.
func sortKey(c Colour, ch channel) int {
	pack := func(first, second, third uint8) int {
		return int(first)<<16 | int(second)<<8 | int(third)
	}
	switch ch {
	case channelGreen:
		return pack(c.G, c.R, c.B)
	case channelBlue:
		return pack(c.B, c.G, c.R)
	default:
		return pack(c.R, c.G, c.B)
	}
}

// findSplitPoint sorts the box's arena range along its longest dimension and
// returns the index of the last colour in the lower half.
func (b *box) findSplitPoint() int {
	ch := b.longestDimension()
	subset := b.arena.colours[b.lower : b.upper+1]
	slices.SortStableFunc(subset, func(x, y Colour) int {
		return sortKey(x, ch) - sortKey(y, ch)
	})

	median := b.population / 2
	count := 0
	for i, c := range subset {
		count += b.arena.count(c)
		if count >= median {
			return min(b.upper-1, b.lower+i)
		}
	}
	return b.lower
}

// split divides the box at its population median. The receiver becomes the
// lower half; the upper half is returned.
func (b *box) split() (*box, error) {
	if !b.canSplit() {
		return nil, fmt.Errorf("%w: %w", ErrInvariantViolation, ErrUnsplittableBox)
	}

	splitPoint := b.findSplitPoint()
	upper := newBox(b.arena, splitPoint+1, b.upper)
	b.upper = splitPoint
	b.fit()
	return upper, nil
}

// average returns the population-weighted mean colour of the box, truncated
// per channel.
func (b *box) average() PaletteColor {
	var redSum, greenSum, blueSum, total int
	for _, c := range b.arena.colours[b.lower : b.upper+1] {
		n := b.arena.count(c)
		total += n
		redSum += n * int(c.R)
		greenSum += n * int(c.G)
		blueSum += n * int(c.B)
	}
	if total == 0 {
		return PaletteColor{}
	}
	return PaletteColor{
		Colour:     RGB(uint8(redSum/total), uint8(greenSum/total), uint8(blueSum/total)),
		Population: total,
	}
}

package colour

import (
	"container/heap"
	"image"

	"github.com/hashicorp/go-hclog"
)

const (
	quantizeWordWidth    = 5
	quantizeChannelWidth = 8
	quantizeShift        = quantizeChannelWidth - quantizeWordWidth
	quantizeWordMask     = ((1 << quantizeWordWidth) - 1) << quantizeShift
)

// DefaultMaxColors is the palette size used when none is given.
const DefaultMaxColors = 16

// Quantizer reduces a bitmap to at most maxColors representative colours
// using median cut.
type Quantizer struct {
	maxColors int
	filters   []Filter
	logger    hclog.Logger
}

// NewQuantizer creates a Quantizer. With no filters every colour is allowed.
// A nil logger discards output.
func NewQuantizer(maxColors int, filters []Filter, logger hclog.Logger) *Quantizer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Quantizer{
		maxColors: maxColors,
		filters:   filters,
		logger:    logger,
	}
}

// quantizeChannel keeps the top quantizeWordWidth bits of v.
func quantizeChannel(v uint8) uint8 {
	return v & quantizeWordMask
}

// Histogram counts the quantized, non-transparent pixels of bm inside
// region. Colours rejected by the filters are removed.
func (q *Quantizer) Histogram(bm *Bitmap, region image.Rectangle) (*Histogram, error) {
	if err := bm.Validate(); err != nil {
		return nil, err
	}
	region, err := bm.ResolveRegion(region)
	if err != nil {
		return nil, err
	}

	hist := NewHistogram()
	var (
		current      Colour
		currentCount *int
	)
	for y := region.Min.Y; y < region.Max.Y; y++ {
		row := bm.Pix[y*bm.Width*4 : (y+1)*bm.Width*4]
		for x := region.Min.X; x < region.Max.X; x++ {
			p := row[x*4 : x*4+4]
			if p[3] == 0 {
				continue
			}
			key := RGB(quantizeChannel(p[0]), quantizeChannel(p[1]), quantizeChannel(p[2]))
			if currentCount == nil || key != current {
				current = key
				currentCount = hist.counter(key)
			}
			*currentCount++
		}
	}

	distinct := hist.Len()
	removed := hist.RemoveWhere(func(c Colour) bool {
		return !allowed(q.filters, c)
	})
	q.logger.Debug("built colour histogram", "region", region, "distinct", distinct, "filtered", removed)
	return hist, nil
}

// Quantize returns the quantized palette of bm inside region. When the
// histogram already has few enough colours it is returned unsplit, in
// first-seen order; otherwise the order is unspecified.
func (q *Quantizer) Quantize(bm *Bitmap, region image.Rectangle) ([]PaletteColor, error) {
	hist, err := q.Histogram(bm, region)
	if err != nil {
		return nil, err
	}

	if q.maxColors <= 0 || hist.Len() <= q.maxColors {
		colors := make([]PaletteColor, 0, hist.Len())
		for _, c := range hist.keys {
			n, _ := hist.Count(c)
			colors = append(colors, PaletteColor{Colour: c, Population: n})
		}
		return colors, nil
	}

	return q.medianCut(hist)
}

func (q *Quantizer) medianCut(hist *Histogram) ([]PaletteColor, error) {
	a := &arena{colours: hist.Keys(), hist: hist}
	boxes, err := splitBoxes(a, q.maxColors)
	if err != nil {
		return nil, err
	}
	q.logger.Debug("median cut complete", "colours", hist.Len(), "boxes", len(boxes))

	colors := make([]PaletteColor, 0, len(boxes))
	for _, b := range boxes {
		avg := b.average()
		if !allowed(q.filters, avg.Colour) {
			q.logger.Trace("dropping filtered average colour", "colour", avg.Colour.Hex())
			continue
		}
		colors = append(colors, avg)
	}
	return colors, nil
}

// splitBoxes splits the arena into at most maxBoxes boxes, always splitting
// the largest remaining volume first. Single-colour boxes are set aside so
// the loop ends even when maxBoxes cannot be reached.
func splitBoxes(a *arena, maxBoxes int) ([]*box, error) {
	pq := &boxQueue{}
	pq.push(newBox(a, 0, len(a.colours)-1))

	var terminal []*box
	for pq.Len() > 0 && pq.Len()+len(terminal) < maxBoxes {
		b := pq.pop()
		if !b.canSplit() {
			terminal = append(terminal, b)
			continue
		}
		upper, err := b.split()
		if err != nil {
			return nil, err
		}
		pq.push(upper)
		pq.push(b)
	}

	boxes := make([]*box, 0, pq.Len()+len(terminal))
	for _, item := range pq.items {
		boxes = append(boxes, item.box)
	}
	return append(boxes, terminal...), nil
}

type queuedBox struct {
	box *box
	seq int
}

// boxQueue is a max-heap on volume; equal volumes pop in arrival order.
type boxQueue struct {
	items []queuedBox
	seq   int
}

func (q *boxQueue) Len() int { return len(q.items) }

func (q *boxQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.box.volume != b.box.volume {
		return a.box.volume > b.box.volume
	}
	return a.seq < b.seq
}

func (q *boxQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *boxQueue) Push(x any) { q.items = append(q.items, x.(queuedBox)) }

func (q *boxQueue) Pop() any {
	n := len(q.items)
	item := q.items[n-1]
	q.items = q.items[:n-1]
	return item
}

func (q *boxQueue) push(b *box) {
	heap.Push(q, queuedBox{box: b, seq: q.seq})
	q.seq++
}

func (q *boxQueue) pop() *box {
	return heap.Pop(q).(queuedBox).box
}

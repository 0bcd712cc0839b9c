package colour

// Histogram counts occurrences of opaque RGB colours, remembering the order
// in which each colour was first seen.
type Histogram struct {
	counts map[uint32]*int
	keys   []Colour
}

// NewHistogram creates an empty histogram.
func NewHistogram() *Histogram {
	return &Histogram{
		counts: make(map[uint32]*int),
	}
}

// Increment adds one occurrence of c, creating the entry if needed.
func (h *Histogram) Increment(c Colour) {
	*h.counter(c)++
}

// counter returns the count cell for c, appending c to the key order when it
// is first seen. The cell stays valid until c is removed.
func (h *Histogram) counter(c Colour) *int {
	k := c.key()
	if n, ok := h.counts[k]; ok {
		return n
	}
	n := new(int)
	h.counts[k] = n
	h.keys = append(h.keys, c.Opaque())
	return n
}

// Count returns the count for c and whether c is present.
func (h *Histogram) Count(c Colour) (int, bool) {
	n, ok := h.counts[c.key()]
	if !ok {
		return 0, false
	}
	return *n, true
}

// RemoveWhere deletes every colour matching pred. Survivors keep their
// relative order.
func (h *Histogram) RemoveWhere(pred func(Colour) bool) int {
	kept := h.keys[:0]
	removed := 0
	for _, c := range h.keys {
		if pred(c) {
			delete(h.counts, c.key())
			removed++
			continue
		}
		kept = append(kept, c)
	}
	clear(h.keys[len(kept):])
	h.keys = kept
	return removed
}

// Keys returns the distinct colours in first-seen order.
func (h *Histogram) Keys() []Colour {
	out := make([]Colour, len(h.keys))
	copy(out, h.keys)
	return out
}

// Len returns the number of distinct colours.
func (h *Histogram) Len() int {
	return len(h.keys)
}

// Total returns the sum of all counts.
func (h *Histogram) Total() int {
	total := 0
	for _, n := range h.counts {
		total += *n
	}
	return total
}

package hat

// Guide maps equally sized slices of the total hat area to intervals, so that
// a draw finds its interval after a short forward scan.
//
// The entry of every bucket is an interval whose cumulative area does not
// exceed the lower bound of the bucket, or the first interval.
type Guide struct {
	entries []int
}

// Len returns the number of buckets.
func (g *Guide) Len() int { return len(g.entries) }

// Entry returns the interval index stored for bucket b.
func (g *Guide) Entry(b int) int { return g.entries[b] }

// Rebuild recomputes the table for s with relSize buckets per interval.
func (g *Guide) Rebuild(s *Store, relSize float64) {
	size := int(relSize * float64(s.count))
	if size < 1 {
		size = 1
	}
	if cap(g.entries) < size {
		g.entries = make([]int, size)
	}
	g.entries = g.entries[:size]

	step := s.Total / RescaledArea(size)
	prev, cur := nilIndex, s.head
	for b := range size {
		bound := RescaledArea(b) * step
		// the sentinel has infinite cumulative area and stops the scan
		for s.ivs[cur].Cumulative < bound {
			prev, cur = cur, s.ivs[cur].next
		}
		if prev == nilIndex {
			g.entries[b] = cur
		} else {
			g.entries[b] = prev
		}
	}
}

// Lookup returns the interval whose hat area contains u, for u in
// [0, s.Total].
func (g *Guide) Lookup(s *Store, u RescaledArea) int {
	b := int(float64(u/s.Total) * float64(len(g.entries)))
	if b >= len(g.entries) {
		b = len(g.entries) - 1
	}
	if b < 0 {
		b = 0
	}
	i := g.entries[b]
	for s.ivs[i].Cumulative < u {
		i = s.ivs[i].next
	}
	return i
}

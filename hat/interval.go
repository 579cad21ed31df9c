// Package hat builds and maintains the piecewise exponential hat and squeeze
// of a log-concave density.
//
// The intervals live in an arena addressed by index. Each interval carries a
// construction point x, the tangent of log f at x, the secant slope to the
// next construction point, and the area below the hat between x and the next
// construction point. The hat in such an interval consists of two pieces that
// meet at the intersection of the two tangents: the left piece follows the
// tangent at x, the right piece follows the tangent at the next point.
package hat

import (
	"math"

	"github.com/nozzle/tdr/density"
)

const nilIndex = -1

// RescaledArea is an area expressed in units of exp(LogAreaMax) of the store
// it belongs to.
type RescaledArea float64

// Absolute converts a to an absolute area.
func (a RescaledArea) Absolute(logAreaMax float64) float64 {
	if a == 0 {
		return 0
	}
	return float64(a) * math.Exp(logAreaMax)
}

// Rescale converts a log area into units of exp(logAreaMax).
func Rescale(logArea, logAreaMax float64) RescaledArea {
	if math.IsInf(logArea, -1) {
		return 0
	}
	return RescaledArea(math.Exp(logArea - logAreaMax))
}

// Interval is a construction point together with the hat and squeeze data of
// the interval up to the next construction point.
type Interval struct {
	X     float64 // construction point
	LogF  float64 // log f(X)
	DLogF float64 // derivative of log f at X, +Inf for a vertical tangent

	SqueezeSlope   float64 // slope of the secant to the next point, -Inf if none
	LogHatArea     float64 // log of the area below both hat pieces
	RightFraction  float64 // share of the hat area in the right piece
	LogSqueezeArea float64 // log of the area below the squeeze

	Cumulative RescaledArea // hat area up to and including this interval

	next int
}

func newInterval(x, logF, dLogF float64) Interval {
	iv := Interval{X: x, LogF: logF, DLogF: dLogF, next: nilIndex}
	iv.clear()
	return iv
}

// clear resets the hat data so the interval contributes no area.
func (iv *Interval) clear() {
	iv.SqueezeSlope = math.Inf(-1)
	iv.LogHatArea = math.Inf(-1)
	iv.RightFraction = 0
	iv.LogSqueezeArea = math.Inf(-1)
	iv.Cumulative = RescaledArea(math.Inf(1))
}

// Tangent evaluates the tangent of log f at X in the point x.
func (iv Interval) Tangent(x float64) float64 {
	if x == iv.X {
		return iv.LogF
	}
	return iv.LogF + iv.DLogF*(x-iv.X)
}

// Squeeze evaluates the secant of log f starting at X in the point x.
func (iv Interval) Squeeze(x float64) float64 {
	if math.IsInf(iv.SqueezeSlope, -1) {
		return math.Inf(-1)
	}
	return iv.LogF + iv.SqueezeSlope*(x-iv.X)
}

// Evaluate creates an interval for the construction point x. Points at
// infinity and points where the density vanishes get a vertical tangent
// without calling the derivative.
func Evaluate(d density.Density, x float64) (Interval, error) {
	if math.IsNaN(x) {
		return Interval{}, ErrInvalidValue
	}
	if math.IsInf(x, 0) {
		return newInterval(x, math.Inf(-1), math.Inf(1)), nil
	}
	logF := d.LogPDF(x)
	return NewPoint(d, x, logF)
}

// NewPoint creates an interval for x with a known log f(x), evaluating the
// derivative only where the density is positive.
func NewPoint(d density.Density, x, logF float64) (Interval, error) {
	if math.IsNaN(logF) || math.IsInf(logF, 1) {
		return Interval{}, invalidValue("log f", x, logF)
	}
	if math.IsInf(logF, -1) {
		return newInterval(x, logF, math.Inf(1)), nil
	}
	dLogF := d.DLogPDF(x)
	if math.IsNaN(dLogF) {
		return Interval{}, invalidValue("derivative of log f", x, dLogF)
	}
	return newInterval(x, logF, dLogF), nil
}

// Store is the arena of intervals ordered by construction point. The last
// interval is a sentinel holding the right-most point; it never carries area.
type Store struct {
	ivs   []Interval
	free  []int
	head  int
	tail  int
	count int

	// LogAreaMax is the reference for all rescaled areas.
	LogAreaMax float64
	// Total is the hat area of all intervals.
	Total RescaledArea
	// SqueezeTotal is the squeeze area of all intervals.
	SqueezeTotal RescaledArea
}

// NewStore returns an empty store with room for capacity intervals.
func NewStore(capacity int) *Store {
	return &Store{
		ivs:        make([]Interval, 0, capacity),
		head:       nilIndex,
		tail:       nilIndex,
		LogAreaMax: math.Inf(-1),
	}
}

// Len returns the number of intervals including the sentinel.
func (s *Store) Len() int { return s.count }

// Head returns the index of the left-most interval.
func (s *Store) Head() int { return s.head }

// Next returns the index following i, or -1 after the sentinel.
func (s *Store) Next(i int) int { return s.ivs[i].next }

// At returns a copy of interval i.
func (s *Store) At(i int) Interval { return s.ivs[i] }

// IsSentinel reports whether i is the right-most interval.
func (s *Store) IsSentinel(i int) bool { return s.ivs[i].next == nilIndex }

// Intervals returns a snapshot of all intervals in order.
func (s *Store) Intervals() []Interval {
	out := make([]Interval, 0, s.count)
	for i := s.head; i != nilIndex; i = s.ivs[i].next {
		out = append(out, s.ivs[i])
	}
	return out
}

// Area returns the rescaled hat area of interval i.
func (s *Store) Area(i int) RescaledArea {
	return Rescale(s.ivs[i].LogHatArea, s.LogAreaMax)
}

// CumulativeBefore returns the hat area of all intervals left of i.
func (s *Store) CumulativeBefore(i int) RescaledArea {
	if s.IsSentinel(i) {
		return s.Total
	}
	return s.ivs[i].Cumulative - s.Area(i)
}

func (s *Store) alloc(iv Interval) int {
	s.count++
	if n := len(s.free); n > 0 {
		idx := s.free[n-1]
		s.free = s.free[:n-1]
		s.ivs[idx] = iv
		return idx
	}
	s.ivs = append(s.ivs, iv)
	return len(s.ivs) - 1
}

func (s *Store) release(i int) {
	s.ivs[i] = Interval{next: nilIndex}
	s.free = append(s.free, i)
	s.count--
}

// push appends iv at the right end of the list.
func (s *Store) push(iv Interval) int {
	iv.next = nilIndex
	idx := s.alloc(iv)
	if s.tail == nilIndex {
		s.head = idx
	} else {
		s.ivs[s.tail].next = idx
	}
	s.tail = idx
	return idx
}

// insertAfter links iv right after interval i and returns its index.
func (s *Store) insertAfter(i int, iv Interval) int {
	idx := s.alloc(iv)
	s.ivs[idx].next = s.ivs[i].next
	s.ivs[i].next = idx
	if s.tail == i {
		s.tail = idx
	}
	return idx
}

// removeAfter unlinks and recycles the interval following i.
func (s *Store) removeAfter(i int) {
	r := s.ivs[i].next
	s.ivs[i].next = s.ivs[r].next
	if s.tail == r {
		s.tail = i
	}
	s.release(r)
}

// replace overwrites the point data of interval i and keeps its position.
func (s *Store) replace(i int, iv Interval) {
	iv.next = s.ivs[i].next
	s.ivs[i] = iv
}

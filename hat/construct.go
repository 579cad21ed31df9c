package hat

import (
	"math"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/op/go-logging"

	"github.com/nozzle/tdr/density"
	tdrmath "github.com/nozzle/tdr/internal/math"
)

// Options configures the initial construction of a hat.
type Options struct {
	// Points are explicit starting construction points. Points outside the
	// open domain are skipped.
	Points []float64
	// Count is the number of angle rule points used when Points is empty.
	Count int
	// MaxIntervals caps the number of intervals created while bounding the hat.
	MaxIntervals int
	// Tolerance is the relative tolerance of the concavity checks.
	Tolerance float64
	// Log receives warnings. May be nil.
	Log *logging.Logger
}

// StartingPoints returns n points spread over [left, right] with equal
// distances of their arctangents. They are dense near the origin and thin
// out in the tails.
func StartingPoints(left, right float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	la := -math.Pi / 2
	if !math.IsInf(left, -1) {
		la = math.Atan(left)
	}
	ra := math.Pi / 2
	if !math.IsInf(right, 1) {
		ra = math.Atan(right)
	}

	step := (ra - la) / float64(n+1)
	points := make([]float64, n)
	for i := range points {
		points[i] = math.Tan(la + float64(i+1)*step)
	}
	return points
}

// Build constructs the hat of d. The boundaries of the domain are always
// construction points in addition to the starting points.
func Build(d density.Density, opts Options) (*Store, error) {
	left, right := d.Domain()
	if !(left < right) {
		return nil, errors.Wrapf(ErrDegenerateConstruction, "empty domain [%g, %g]", left, right)
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = Tolerance
	}

	points := opts.Points
	if len(points) == 0 {
		points = StartingPoints(left, right, opts.Count)
	} else {
		points = slices.Clone(points)
		slices.Sort(points)
	}

	s := NewStore(len(points) + 2)
	if err := s.seed(d, points, opts.Log); err != nil {
		return nil, err
	}
	if s.count < 2 {
		return nil, errors.Wrapf(ErrDegenerateConstruction, "no interval with positive density in [%g, %g]", left, right)
	}

	maxIntervals := max(opts.MaxIntervals, s.count)
	if err := s.bound(d, maxIntervals, opts.Tolerance); err != nil {
		return nil, err
	}
	if err := s.checkTails(d, opts.Tolerance); err != nil {
		return nil, err
	}

	_, total := s.RebuildAreas()
	if !(total > 0) || math.IsInf(float64(total), 0) || math.IsInf(s.LogAreaMax, 0) {
		return nil, errors.Wrapf(ErrDegenerateConstruction, "area below hat is %g", s.HatArea())
	}
	return s, nil
}

// seed creates the intervals for the domain boundaries and the starting
// points and checks unimodality on the way.
func (s *Store) seed(d density.Density, points []float64, log *logging.Logger) error {
	left, right := d.Domain()

	iv, err := Evaluate(d, left)
	if err != nil {
		return err
	}
	last := s.push(iv)
	lastLogF := iv.LogF
	increasing := true

	for k := 0; k <= len(points); k++ {
		x := right
		if k < len(points) {
			x = points[k]
			if x <= left || x >= right || x <= s.ivs[last].X {
				if log != nil {
					log.Warningf("starting point %g outside domain (%g, %g) or duplicated, skipped", x, left, right)
				}
				continue
			}
		}

		iv, err := Evaluate(d, x)
		if err != nil {
			return err
		}

		if !increasing && iv.LogF > lastLogF+tdrmath.DoubleEpsilon {
			return errors.Wrapf(ErrNotUnimodal, "log f rises again from %g to %g at x=%g", lastLogF, iv.LogF, x)
		}
		if increasing && iv.LogF < lastLogF-tdrmath.DoubleEpsilon {
			increasing = false
		}

		// keep only the last of consecutive points without density
		if math.IsInf(iv.LogF, -1) && math.IsInf(s.ivs[last].LogF, -1) {
			s.replace(last, iv)
			continue
		}

		last = s.push(iv)
		lastLogF = iv.LogF
	}
	return nil
}

// bound computes the hat for all pairs of neighbouring intervals. Unbounded
// pairs get an extra construction point, degenerate pairs lose their right
// point.
func (s *Store) bound(d density.Density, maxIntervals int, tol float64) error {
	for i := s.head; s.ivs[i].next != nilIndex; {
		next := s.ivs[i].next
		err := Pair(&s.ivs[i], &s.ivs[next], tol)
		switch {
		case err == nil:
			i = next
			continue

		case errors.Is(err, ErrDegenerate):
			// cutting the point off changes the domain only below
			// floating point resolution
			s.removeAfter(i)
			if s.ivs[i].next == nilIndex {
				s.ivs[i].clear()
			}
			continue

		case !errors.Is(err, ErrUnbounded):
			return err
		}

		if s.count >= maxIntervals {
			return errors.Mark(
				errors.Wrapf(err, "hat still unbounded with %d intervals", s.count),
				ErrCannotBoundHat)
		}

		x := tdrmath.ArcMean(s.ivs[i].X, s.ivs[next].X)
		iv, err := Evaluate(d, x)
		if err != nil {
			return err
		}

		if !math.IsInf(iv.LogF, -1) {
			s.insertAfter(i, iv)
			continue
		}

		// f vanishes at x, so one of the tails beyond x carries no mass
		switch {
		case math.IsInf(s.ivs[i].LogF, -1):
			s.replace(i, iv)
		case math.IsInf(s.ivs[next].LogF, -1):
			s.replace(next, iv)
		default:
			return errors.Wrapf(ErrNotConcave, "density vanishes at %g between %g and %g",
				x, s.ivs[i].X, s.ivs[next].X)
		}
	}
	return nil
}

// checkTails tests the intervals reaching an infinite boundary. Their hat
// piece is a single tangent, so a tail that decays slower than any exponential
// passes bound unnoticed. An extra point at the arc mean must be compatible
// with the tangent, otherwise the hat cannot be bounded.
func (s *Store) checkTails(d density.Density, tol float64) error {
	var tails [][2]int
	if first := s.head; math.IsInf(s.ivs[first].X, -1) && s.ivs[first].next != nilIndex {
		tails = append(tails, [2]int{first, s.ivs[first].next})
	}
	if math.IsInf(s.ivs[s.tail].X, 1) {
		i := s.head
		for s.ivs[i].next != s.tail {
			i = s.ivs[i].next
		}
		tails = append(tails, [2]int{i, s.tail})
	}

	for _, t := range tails {
		l, r := s.ivs[t[0]], s.ivs[t[1]]
		inner := l
		if math.IsInf(l.X, -1) {
			inner = r
		}
		if math.IsInf(inner.X, 0) || math.IsInf(inner.LogF, -1) {
			continue
		}

		x := tdrmath.ArcMean(l.X, r.X)
		mid, err := Evaluate(d, x)
		if err != nil {
			return err
		}
		if math.IsInf(mid.LogF, -1) {
			continue
		}

		err = Pair(&l, &mid, tol)
		if err == nil {
			err = Pair(&mid, &r, tol)
		}
		if err != nil {
			return errors.Mark(errors.Mark(
				errors.Wrapf(err, "tail beyond %g decays slower than exponentially", inner.X),
				ErrUnbounded), ErrCannotBoundHat)
		}
	}
	return nil
}

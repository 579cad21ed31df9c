package hat

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Split adds the construction point x with log f(x) = logF and derivative
// dLogF to interval i and recomputes the hat of the affected pairs. The
// areas are not rebuilt; callers run RebuildAreas afterwards.
//
// A point where f vanishes moves the neighbouring boundary point with zero
// density instead of adding an interval. On failure the store is left
// unchanged and the returned error is marked with ErrSplitFailed.
func (s *Store) Split(i int, x, logF, dLogF float64, tol float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	if tol <= 0 {
		tol = Tolerance
	}

	next := s.ivs[i].next
	if next == nilIndex || !(x > s.ivs[i].X && x < s.ivs[next].X) {
		return errors.Mark(errors.Wrapf(ErrSplitOutside, "x=%g", x), ErrSplitFailed)
	}

	bakL, bakR := s.ivs[i], s.ivs[next]
	added := nilIndex

	var err error
	if math.IsInf(logF, -1) {
		switch {
		case math.IsInf(s.ivs[next].LogF, -1) && s.ivs[next].next == nilIndex:
			s.ivs[next].X = x
		case math.IsInf(s.ivs[i].LogF, -1) && i == s.head:
			s.ivs[i].X = x
		default:
			err = errors.Wrapf(ErrNotConcave, "density vanishes at %g inside (%g, %g)",
				x, s.ivs[i].X, s.ivs[next].X)
		}
		if err == nil {
			err = Pair(&s.ivs[i], &s.ivs[next], tol)
		}
	} else {
		added = s.insertAfter(i, newInterval(x, logF, dLogF))
		errL := Pair(&s.ivs[i], &s.ivs[added], tol)
		errR := Pair(&s.ivs[added], &s.ivs[next], tol)
		err = worse(errL, errR)
	}

	if err != nil {
		if added != nilIndex {
			s.removeAfter(i)
		}
		s.ivs[i], s.ivs[next] = bakL, bakR
		return errors.Mark(errors.Wrapf(err, "split at x=%g", x), ErrSplitFailed)
	}
	return nil
}

// worse returns the more severe of two pair errors. A violated concavity
// outranks unbounded or degenerate pieces.
func worse(a, b error) error {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case errors.Is(b, ErrNotConcave) && !errors.Is(a, ErrNotConcave):
		return b
	}
	return a
}

package hat

import "github.com/cockroachdb/errors"

var (
	// ErrNotConcave reports a pair of construction points whose tangents and
	// secant are incompatible with a log-concave density.
	ErrNotConcave = errors.New("density is not log-concave")

	// ErrUnbounded reports a hat piece with infinite area.
	ErrUnbounded = errors.New("area below hat is unbounded")

	// ErrDegenerate reports construction points too close to carry a secant.
	ErrDegenerate = errors.New("construction points too close")

	// ErrNotUnimodal reports a density that rises again after it started to fall.
	ErrNotUnimodal = errors.New("density is not unimodal")

	// ErrCannotBoundHat reports that inserting points did not bound the hat
	// before the interval cap was reached.
	ErrCannotBoundHat = errors.New("cannot bound hat")

	// ErrDegenerateConstruction reports a hat without positive finite area.
	ErrDegenerateConstruction = errors.New("degenerate hat construction")

	// ErrInvalidValue reports a density callback returning NaN or +Inf.
	ErrInvalidValue = errors.New("invalid density value")

	// ErrSplitFailed marks every error returned by Split.
	ErrSplitFailed = errors.New("cannot split interval")

	// ErrSplitOutside reports a split point outside the target interval.
	ErrSplitOutside = errors.New("split point outside interval")
)

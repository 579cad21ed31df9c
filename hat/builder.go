package hat

import (
	"math"

	"github.com/cockroachdb/errors"

	tdrmath "github.com/nozzle/tdr/internal/math"
)

// Tolerance is the default relative tolerance of the concavity checks.
const Tolerance = tdrmath.Epsilon

// verticalSlope is the slope beyond which a tangent is treated as vertical.
const verticalSlope = 1e140

// Pair computes the hat and squeeze of the interval between l and r and stores
// them in l. The derivative of either point may be replaced by +Inf when it is
// dominated by round-off.
//
// Pair returns ErrNotConcave when the tangents or the secant contradict
// log-concavity beyond tol, ErrDegenerate when l and r are too close for a
// secant, and ErrUnbounded when a hat piece has infinite area.
func Pair(l, r *Interval, tol float64) error {
	ip, err := intersection(l, r, tol)
	if err != nil {
		return err
	}

	if !math.IsInf(l.LogF, -1) && !math.IsInf(r.LogF, -1) {
		if tdrmath.Approx(l.X, r.X) {
			return errors.Wrapf(ErrDegenerate, "points %g and %g", l.X, r.X)
		}
		sq := (r.LogF - l.LogF) / (r.X - l.X)
		steep := sq > l.DLogF && !tdrmath.ApproxTol(sq, l.DLogF, tol)
		flat := sq < r.DLogF && !tdrmath.ApproxTol(sq, r.DLogF, tol)
		if (steep || flat) && !math.IsInf(r.DLogF, 1) {
			return errors.Wrapf(ErrNotConcave,
				"squeeze slope %g not within tangent slopes [%g, %g] on [%g, %g]",
				sq, r.DLogF, l.DLogF, l.X, r.X)
		}
		l.SqueezeSlope = sq
	} else {
		l.SqueezeSlope = math.Inf(-1)
	}

	logLeft := LogArea(l.X, l.LogF, l.DLogF, ip)
	logRight := LogArea(r.X, r.LogF, r.DLogF, ip)
	if math.IsNaN(logLeft) || math.IsNaN(logRight) {
		return errors.Wrapf(ErrDegenerate, "hat area on [%g, %g] is not a number", l.X, r.X)
	}
	if math.IsInf(logLeft, 1) || math.IsInf(logRight, 1) {
		return errors.Wrapf(ErrUnbounded, "interval [%g, %g]", l.X, r.X)
	}

	l.LogHatArea = tdrmath.LogAddExp(logLeft, logRight)
	if math.IsInf(l.LogHatArea, -1) {
		l.RightFraction = 0
	} else {
		l.RightFraction = 1 / (1 + math.Exp(logLeft-logRight))
	}

	if math.IsInf(l.SqueezeSlope, -1) {
		l.LogSqueezeArea = math.Inf(-1)
	} else {
		l.LogSqueezeArea = LogArea(l.X, l.LogF, l.SqueezeSlope, r.X)
	}
	return nil
}

// intersection returns the point where the tangents at l and r cross.
func intersection(l, r *Interval, tol float64) (float64, error) {
	if l.DLogF > verticalSlope {
		return l.X, nil
	}
	if r.DLogF < -verticalSlope || math.IsInf(r.DLogF, 1) {
		return r.X, nil
	}

	if l.DLogF < r.DLogF && !tdrmath.ApproxTol(l.DLogF, r.DLogF, tol) {
		// a nearly vanishing slope next to a steep one is round-off of a
		// vertical tangent
		switch {
		case math.Abs(l.DLogF) < tdrmath.DoubleEpsilon*math.Abs(r.DLogF):
			l.DLogF = math.Inf(1)
			return l.X, nil
		case math.Abs(r.DLogF) < tdrmath.DoubleEpsilon*math.Abs(l.DLogF):
			r.DLogF = math.Inf(1)
			return r.X, nil
		}
		return 0, errors.Wrapf(ErrNotConcave,
			"tangent slope increases from %g at %g to %g at %g", l.DLogF, l.X, r.DLogF, r.X)
	}

	if tdrmath.ApproxTol(l.DLogF, r.DLogF, tol) {
		return 0.5 * (l.X + r.X), nil
	}

	ip := (r.LogF - l.LogF - r.DLogF*r.X + l.DLogF*l.X) / (l.DLogF - r.DLogF)

	// round-off may push the intersection out of the interval
	if tdrmath.Less(ip, l.X) || tdrmath.Greater(ip, r.X) || math.IsNaN(ip) {
		ip = 0.5 * (l.X + r.X)
	}
	return ip, nil
}

func invalidValue(what string, x, v float64) error {
	return errors.Wrapf(ErrInvalidValue, "%s at x=%g is %g", what, x, v)
}

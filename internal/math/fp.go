// Package math provides floating point helpers shared by the hat construction
// and the sampler.
package math

import "math"

const (
	// Epsilon is the relative tolerance used by Approx.
	Epsilon = 1.4901161193847656e-08 // sqrt(DBL_EPSILON)

	// sameEpsilon is the relative tolerance used by Same.
	sameEpsilon = 100 * DoubleEpsilon

	// MaxLog is the largest argument of math.Exp that does not overflow.
	MaxLog = 709.782712893384
)

// cmp compares a and b with relative tolerance eps.
// Returns -1 if a < b, 1 if a > b and 0 if they are within tolerance.
func cmp(a, b, eps float64) int {
	if a == b {
		return 0
	}
	// infinities only compare equal to themselves
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		if a < b {
			return -1
		}
		return 1
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	if math.Abs(a-b) <= eps*scale {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

// Approx reports whether a and b agree to about 8 significant digits.
func Approx(a, b float64) bool {
	return cmp(a, b, Epsilon) == 0
}

// ApproxTol reports whether a and b agree within relative tolerance eps.
func ApproxTol(a, b, eps float64) bool {
	return cmp(a, b, eps) == 0
}

// Same reports whether a and b are equal up to a few ulps.
func Same(a, b float64) bool {
	return cmp(a, b, sameEpsilon) == 0
}

// Less reports a < b beyond the Approx tolerance.
func Less(a, b float64) bool {
	return cmp(a, b, Epsilon) < 0
}

// Greater reports a > b beyond the Approx tolerance.
func Greater(a, b float64) bool {
	return cmp(a, b, Epsilon) > 0
}

// ArcMean returns the point whose arctangent is the mean of the arctangents of
// x0 and x1. Infinite arguments map to ±π/2, so the mean of a finite point and
// an infinite boundary is finite. Very large points fall back to the harmonic
// mean and nearly equal angles to the arithmetic mean.
func ArcMean(x0, x1 float64) float64 {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x1 < -1e3 || x0 > 1e3 {
		return 2 / (1/x0 + 1/x1)
	}

	a0 := -math.Pi / 2
	if !math.IsInf(x0, -1) {
		a0 = math.Atan(x0)
	}
	a1 := math.Pi / 2
	if !math.IsInf(x1, 1) {
		a1 = math.Atan(x1)
	}

	if math.Abs(a0-a1) < 1e-6 {
		return 0.5*x0 + 0.5*x1
	}
	return math.Tan((a0 + a1) / 2)
}

// LogAddExp returns log(exp(a) + exp(b)) without overflow.
func LogAddExp(a, b float64) float64 {
	if math.IsInf(a, -1) {
		return b
	}
	if math.IsInf(b, -1) {
		return a
	}
	if a > b {
		return a + math.Log1p(math.Exp(b-a))
	}
	return b + math.Log1p(math.Exp(a-b))
}

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// DoubleEpsilon is the machine epsilon of float64.
const DoubleEpsilon = 2.220446049250313e-16

package hat

import (
	"math"

	tdrmath "github.com/nozzle/tdr/internal/math"
)

// LogArea returns the log of the area below exp(logF0 + slope*(u-x0)) for u
// between x0 and x. It returns +Inf when that area is unbounded and -Inf for
// an empty piece.
func LogArea(x0, logF0, slope, x float64) float64 {
	if tdrmath.Same(x, x0) {
		return math.Inf(-1)
	}

	// a vertical tangent marks a point where f vanishes
	if math.IsInf(slope, 0) ||
		(math.IsInf(x, -1) && slope <= 0) ||
		(math.IsInf(x, 1) && slope >= 0) {
		return math.Inf(1)
	}

	if slope == 0 {
		return logF0 + math.Log(math.Abs(x-x0))
	}

	if math.IsInf(x, 0) {
		return logF0 - math.Log(math.Abs(slope))
	}

	logDx := math.Log(math.Abs(x - x0))
	t := slope * (x - x0)
	if math.Abs(t) > 1e-6 {
		if t > tdrmath.MaxLog/10 {
			// exp(t) - 1 overflows long before the area does
			return logF0 + logDx + t - math.Log(t)
		}
		return logF0 + logDx + math.Log(math.Abs(math.Expm1(t))) - math.Log(math.Abs(t))
	}

	// Taylor series of (exp(t)-1)/t
	return logF0 + logDx + math.Log1p(t/2+t*t/6)
}

// Invert returns the point x such that the area below
// exp(logF0 + slope*(u-x0)) between x0 and x equals area, where area is
// rescaled by exp(logAreaMax). A negative area moves left of x0.
func Invert(x0, logF0, slope float64, area RescaledArea, logAreaMax float64) float64 {
	if area == 0 {
		return x0
	}

	// signed length of a box of height f(x0) with the requested area
	scale := math.Exp(math.Log(math.Abs(float64(area))) + logAreaMax - logF0)
	if area < 0 {
		scale = -scale
	}

	if slope == 0 {
		return x0 + scale
	}

	t := slope * scale
	switch {
	case math.Abs(t) > 1e-6:
		return x0 + math.Log1p(t)*scale/t
	case math.Abs(t) > 1e-8:
		// Taylor series of log(1+t)/t
		return x0 + scale*(1-t/2+t*t/3)
	default:
		return x0 + scale*(1-t/2)
	}
}

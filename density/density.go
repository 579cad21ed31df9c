// Package density defines the log-density callback consumed by the sampler and
// a small catalog of log-concave densities.
package density

import "math"

//go:generate mockgen -source density.go -destination density_mock.go -package density

// Density is a univariate density given through its logarithm.
//
// The density must be weakly unimodal and log-concave on its domain. It does
// not need to be normalized.
type Density interface {
	// LogPDF returns log f(x). It returns -Inf where f vanishes.
	LogPDF(x float64) float64
	// DLogPDF returns the derivative of log f at x.
	DLogPDF(x float64) float64
	// Domain returns the support [left, right]. Bounds may be infinite.
	Domain() (left, right float64)
}

// Func adapts a pair of functions and a fixed domain to Density.
type Func struct {
	LogF  func(x float64) float64
	DLogF func(x float64) float64
	Left  float64
	Right float64
}

// NewFunc returns a Func on the whole real line.
func NewFunc(logF, dLogF func(float64) float64) Func {
	return Func{
		LogF:  logF,
		DLogF: dLogF,
		Left:  math.Inf(-1),
		Right: math.Inf(1),
	}
}

func (f Func) LogPDF(x float64) float64  { return f.LogF(x) }
func (f Func) DLogPDF(x float64) float64 { return f.DLogF(x) }
func (f Func) Domain() (float64, float64) { return f.Left, f.Right }

// Truncated restricts a density to a sub-domain.
type Truncated struct {
	Density
	left, right float64
}

// Truncate returns d restricted to [left, right] intersected with its domain.
func Truncate(d Density, left, right float64) Truncated {
	l, r := d.Domain()
	return Truncated{
		Density: d,
		left:    math.Max(l, left),
		right:   math.Min(r, right),
	}
}

// LogPDF returns -Inf outside of the truncated domain.
func (t Truncated) LogPDF(x float64) float64 {
	if x < t.left || x > t.right {
		return math.Inf(-1)
	}
	return t.Density.LogPDF(x)
}

func (t Truncated) Domain() (float64, float64) { return t.left, t.right }

// Contains reports whether x lies in the domain of d.
func Contains(d Density, x float64) bool {
	l, r := d.Domain()
	return x >= l && x <= r
}

package density

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Normal is the normal density with mean Mu and standard deviation Sigma.
type Normal struct {
	Mu, Sigma float64
}

// LogPDF returns the log density at x.
func (n Normal) LogPDF(x float64) float64 {
	if math.IsInf(x, 0) {
		return math.Inf(-1)
	}
	return distuv.Normal{Mu: n.Mu, Sigma: n.Sigma}.LogProb(x)
}

// DLogPDF returns the derivative of the log density at x.
func (n Normal) DLogPDF(x float64) float64 {
	return -(x - n.Mu) / (n.Sigma * n.Sigma)
}

// Domain returns the support.
func (n Normal) Domain() (float64, float64) { return math.Inf(-1), math.Inf(1) }

// Gamma is the gamma density with shape Alpha >= 1 and rate Beta.
type Gamma struct {
	Alpha, Beta float64
}

// LogPDF returns the log density at x.
func (g Gamma) LogPDF(x float64) float64 {
	if x < 0 || math.IsInf(x, 1) {
		return math.Inf(-1)
	}
	if x == 0 {
		if g.Alpha == 1 {
			return math.Log(g.Beta)
		}
		return math.Inf(-1)
	}
	return distuv.Gamma{Alpha: g.Alpha, Beta: g.Beta}.LogProb(x)
}

// DLogPDF returns the derivative of the log density at x.
func (g Gamma) DLogPDF(x float64) float64 {
	if x <= 0 {
		if g.Alpha == 1 {
			return -g.Beta
		}
		return math.Inf(1)
	}
	return (g.Alpha-1)/x - g.Beta
}

// Domain returns the support.
func (g Gamma) Domain() (float64, float64) { return 0, math.Inf(1) }

// Beta is the beta density on [0, 1] with shapes Alpha, Beta >= 1.
type Beta struct {
	Alpha, Beta float64
}

// LogPDF returns the log density at x.
func (b Beta) LogPDF(x float64) float64 {
	if x < 0 || x > 1 {
		return math.Inf(-1)
	}
	if (x == 0 && b.Alpha > 1) || (x == 1 && b.Beta > 1) {
		return math.Inf(-1)
	}
	if x == 0 || x == 1 {
		// Alpha or Beta is exactly one at this end.
		lb, _ := math.Lgamma(b.Alpha + b.Beta)
		la, _ := math.Lgamma(b.Alpha)
		lbb, _ := math.Lgamma(b.Beta)
		return lb - la - lbb
	}
	return distuv.Beta{Alpha: b.Alpha, Beta: b.Beta}.LogProb(x)
}

// DLogPDF returns the derivative of the log density at x.
func (b Beta) DLogPDF(x float64) float64 {
	switch {
	case x <= 0:
		if b.Alpha == 1 {
			return -(b.Beta - 1)
		}
		return math.Inf(1)
	case x >= 1:
		if b.Beta == 1 {
			return b.Alpha - 1
		}
		return math.Inf(-1)
	}
	return (b.Alpha-1)/x - (b.Beta-1)/(1-x)
}

// Domain returns the support.
func (b Beta) Domain() (float64, float64) { return 0, 1 }

// Exponential is the exponential density with the given Rate.
type Exponential struct {
	Rate float64
}

// LogPDF returns the log density at x.
func (e Exponential) LogPDF(x float64) float64 {
	if x < 0 || math.IsInf(x, 1) {
		return math.Inf(-1)
	}
	return distuv.Exponential{Rate: e.Rate}.LogProb(x)
}

// DLogPDF returns the derivative of the log density at x.
func (e Exponential) DLogPDF(float64) float64 { return -e.Rate }

// Domain returns the support.
func (e Exponential) Domain() (float64, float64) { return 0, math.Inf(1) }

// Logistic is the logistic density with location Mu and scale S.
type Logistic struct {
	Mu, S float64
}

// LogPDF returns the log density at x. It is computed directly because
// distuv.Logistic.LogProb only covers the standard logistic.
func (l Logistic) LogPDF(x float64) float64 {
	if math.IsInf(x, 0) {
		return math.Inf(-1)
	}
	z := math.Abs((x - l.Mu) / l.S)
	return -z - math.Log(l.S) - 2*math.Log1p(math.Exp(-z))
}

// DLogPDF returns the derivative of the log density at x.
func (l Logistic) DLogPDF(x float64) float64 {
	z := (x - l.Mu) / l.S
	return -math.Tanh(z/2) / l.S
}

// Domain returns the support.
func (l Logistic) Domain() (float64, float64) { return math.Inf(-1), math.Inf(1) }

// Laplace is the double exponential density with location Mu and scale Scale.
// Its derivative at Mu is taken as zero.
type Laplace struct {
	Mu, Scale float64
}

// LogPDF returns the log density at x.
func (l Laplace) LogPDF(x float64) float64 {
	if math.IsInf(x, 0) {
		return math.Inf(-1)
	}
	return distuv.Laplace{Mu: l.Mu, Scale: l.Scale}.LogProb(x)
}

// DLogPDF returns the derivative of the log density at x.
func (l Laplace) DLogPDF(x float64) float64 {
	switch {
	case x < l.Mu:
		return 1 / l.Scale
	case x > l.Mu:
		return -1 / l.Scale
	}
	return 0
}

// Domain returns the support.
func (l Laplace) Domain() (float64, float64) { return math.Inf(-1), math.Inf(1) }

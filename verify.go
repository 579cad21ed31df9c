package tdr

import (
	"github.com/op/go-logging"

	"github.com/nozzle/tdr/density"
	tdrmath "github.com/nozzle/tdr/internal/math"
)

// checker inspects every candidate of the rejection loop. It never changes
// the outcome of a trial.
type checker interface {
	check(d density.Density, x, logSqueeze, logHat float64)
}

type noCheck struct{}

func (noCheck) check(density.Density, float64, float64, float64) {}

// verifier evaluates the density at every candidate and reports points where
// squeeze <= f <= hat fails.
type verifier struct {
	log        *logging.Logger
	violations int
}

func (v *verifier) check(d density.Density, x, logSqueeze, logHat float64) {
	if !density.Contains(d, x) {
		v.report("point %g out of domain", x)
	}

	logF := d.LogPDF(x)
	if logF-logHat > tdrmath.Epsilon {
		v.report("density above hat at %g: log f = %g, log hat = %g; not log-concave", x, logF, logHat)
	}
	if logSqueeze-logF > tdrmath.Epsilon {
		v.report("density below squeeze at %g: log f = %g, log squeeze = %g; not log-concave", x, logF, logSqueeze)
	}
}

func (v *verifier) report(format string, args ...any) {
	v.violations++
	v.log.Warningf(format, args...)
}

package tdr

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/nozzle/tdr/hat"
	tdrmath "github.com/nozzle/tdr/internal/math"
)

// Sample draws one variate. The hat is refined at rejected points, so the
// call may change the interval, area and guide tables.
//
// When the iteration cap is hit Sample returns +Inf and an error matching
// ErrIterationCapExceeded; the generator stays usable. In pedantic mode a
// failed refinement disables the generator and returns +Inf with an error
// matching ErrSplitFailed.
func (g *Generator) Sample() (float64, error) {
	switch g.state {
	case Unbuilt:
		return math.Inf(1), ErrNotBuilt
	case Disabled:
		return math.Inf(1), ErrDisabled
	}

	g.state = Sampling
	x, err := g.sample()
	if g.state == Sampling {
		g.state = Built
	}
	return x, err
}

// Rand draws one variate and returns +Inf on failure. Errors are logged.
func (g *Generator) Rand() float64 {
	x, err := g.Sample()
	if err != nil && !errors.Is(err, ErrIterationCapExceeded) {
		g.log.Errorf("sampling failed: %v", err)
	}
	return x
}

func (g *Generator) sample() (float64, error) {
	s := g.store

	for range g.Config.MaxIterations {
		u := hat.RescaledArea(g.src.Float64()) * s.Total
		p := s.Locate(&g.guide, u)
		if s.IsSentinel(p.Interval) {
			continue
		}

		x := s.Point(p)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		lo, hi := s.Span(p.Interval)
		x = tdrmath.Clamp(x, lo, hi)

		iv := s.At(p.Interval)
		logHat := s.At(p.Anchor).Tangent(x)
		logSqueeze := iv.Squeeze(x)
		logV := math.Log(g.src.Float64()) + logHat

		g.check.check(g.density, x, logSqueeze, logHat)

		if logV <= logSqueeze {
			g.obs.ObserveTrial(AcceptedBySqueeze)
			return x, nil
		}

		logF := g.density.LogPDF(x)
		if logV <= logF {
			g.obs.ObserveTrial(AcceptedByDensity)
			return x, nil
		}
		g.obs.ObserveTrial(Rejected)

		if err := g.refine(p.Interval, x, logF); err != nil {
			return math.Inf(1), err
		}
	}

	g.obs.ObserveIterationCap()
	g.log.Warningf("no variate accepted after %d iterations", g.Config.MaxIterations)
	return math.Inf(1), errors.Wrapf(ErrIterationCapExceeded, "%d iterations", g.Config.MaxIterations)
}

// refine splits interval i at the rejected point x. A failed split leaves
// the hat unchanged; in pedantic mode it also disables the generator.
func (g *Generator) refine(i int, x, logF float64) error {
	s := g.store
	if s.Len() >= g.maxIntervals || s.SqueezeRatio() >= g.Config.MaxRatio {
		return nil
	}
	if lo, hi := s.Span(i); x <= lo || x >= hi {
		return nil
	}

	pt, err := hat.NewPoint(g.density, x, logF)
	if err == nil {
		err = s.Split(i, x, pt.LogF, pt.DLogF, g.Config.Tolerance)
	}
	if err != nil {
		err = errors.Mark(err, ErrSplitFailed)
		g.splitErr = err
		g.obs.ObserveSplitFailure(err)
		if g.Config.Pedantic {
			g.state = Disabled
			g.log.Errorf("generator disabled: %v", err)
			return err
		}
		g.log.Warningf("%v", err)
		return nil
	}

	g.rebuildTables()
	g.obs.ObserveIntervals(s.Len())
	return nil
}

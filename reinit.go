package tdr

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/nozzle/tdr/density"
	"github.com/nozzle/tdr/hat"
	tdrmath "github.com/nozzle/tdr/internal/math"
)

// Reinit rebuilds the hat after the parameters of the density changed.
//
// The construction points are the configured percentiles of the old hat, so
// the new hat starts with a similar shape. When the density still agrees with
// the old hat at all its construction points, the starting points of the last
// construction are reused instead and the hat is rebuilt identically. If the
// first attempt fails, a second one uses RetryPoints angle rule points. When
// both fail the generator is disabled and the error matches ErrReinitFailed.
func (g *Generator) Reinit() error {
	points := g.reinitPoints()

	var err error
	for attempt := range 2 {
		count := g.Config.StartingCount
		if attempt > 0 {
			points, count = nil, g.Config.RetryPoints
			g.log.Warningf("reinit with old hat failed, retrying with %d points: %v", count, err)
		}

		var s *hat.Store
		s, err = hat.Build(g.density, g.options(points, count))
		if err == nil {
			g.install(s, points)
			return nil
		}
	}

	g.store = nil
	g.state = Disabled
	return errors.Mark(errors.Wrap(err, "reinit failed after retry"), ErrReinitFailed)
}

// ChangeDensity replaces the density and reinitializes the generator.
func (g *Generator) ChangeDensity(d density.Density) error {
	if d == nil {
		return errors.Wrap(ErrInvalidConfig, "density is required")
	}
	g.density = d
	return g.Reinit()
}

// Truncate restricts the density to [left, right] and reinitializes the
// generator. All later variates lie within the new bounds.
func (g *Generator) Truncate(left, right float64) error {
	if !(left < right) {
		return errors.Wrapf(ErrInvalidConfig, "empty domain [%g, %g]", left, right)
	}
	return g.ChangeDensity(density.Truncate(g.density, left, right))
}

// reinitPoints returns the starting points for Reinit.
func (g *Generator) reinitPoints() []float64 {
	if g.store == nil || len(g.Config.Percentiles) == 0 {
		return g.Config.StartingPoints
	}
	if g.unchanged() {
		return g.points
	}

	points := make([]float64, 0, len(g.Config.Percentiles))
	for _, p := range g.Config.Percentiles {
		points = append(points, g.InverseHatCDF(p))
	}
	return points
}

// unchanged reports whether the density agrees with the current hat at every
// finite construction point.
func (g *Generator) unchanged() bool {
	for _, iv := range g.store.Intervals() {
		if math.IsInf(iv.X, 0) {
			continue
		}
		logF := g.density.LogPDF(iv.X)
		if logF != iv.LogF && !tdrmath.Same(logF, iv.LogF) {
			return false
		}
	}
	return true
}

// InverseHatCDF returns the u-quantile of the distribution proportional to
// the hat, an approximation of the quantile of the density. It returns NaN
// without a hat.
func (g *Generator) InverseHatCDF(u float64) float64 {
	s := g.store
	if s == nil {
		return math.NaN()
	}
	left, right := g.density.Domain()
	if u <= 0 {
		return left
	}
	if u >= 1 {
		return right
	}

	p := s.Locate(&g.guide, hat.RescaledArea(u)*s.Total)
	if s.IsSentinel(p.Interval) {
		return s.At(p.Interval).X
	}
	lo, hi := s.Span(p.Interval)
	return tdrmath.Clamp(s.Point(p), lo, hi)
}

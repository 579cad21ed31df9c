// Package tdr draws random variates from a log-concave density given by
// callbacks, using adaptive rejection sampling with a piecewise exponential
// hat and squeeze (transformed density rejection with logarithmic transform).
//
// The hat is built from tangents of log f at a few construction points and is
// refined at rejected points while sampling, so the acceptance rate quickly
// approaches one. A guide table dispatches every draw to its interval in
// expected constant time.
//
// Basic usage:
//
//	gen, err := tdr.New(density.Normal{Mu: 0, Sigma: 1}, src, tdr.DefaultConfig())
//	if err != nil { ... }
//	if err := gen.Build(); err != nil { ... }
//	x, err := gen.Sample()
//
// A Generator is not safe for concurrent use.
package tdr

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/op/go-logging"

	"github.com/nozzle/tdr/density"
	"github.com/nozzle/tdr/hat"
	"github.com/nozzle/tdr/internal/logger"
)

// Source is a uniform random number source on (0, 1).
// *math/rand/v2.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Config configures a Generator.
type Config struct {
	// StartingPoints are explicit construction points. When empty,
	// StartingCount points are spread by the angle rule.
	StartingPoints []float64

	// StartingCount is the number of generated construction points in
	// addition to the domain boundaries.
	// Default: 2
	StartingCount int

	// Percentiles of the old hat used as construction points by Reinit.
	// Default: 0.25, 0.5, 0.75
	Percentiles []float64

	// RetryPoints is the number of angle rule points used when the
	// percentiles do not give a valid hat.
	// Default: 30
	RetryPoints int

	// MaxIntervals caps the number of intervals.
	// Default: 200
	MaxIntervals int

	// MaxIterations caps the rejection loop of a single draw.
	// Default: 10000
	MaxIterations int

	// GuideFactor is the number of guide table buckets per interval.
	// Default: 2
	GuideFactor float64

	// MaxRatio stops refinement once the ratio of squeeze area to hat area
	// reaches it. 1 never stops before MaxIntervals.
	// Default: 0.99
	MaxRatio float64

	// Tolerance is the relative tolerance of the concavity checks.
	// Default: 1.49e-8
	Tolerance float64

	// Verify checks squeeze <= density <= hat at every candidate.
	// Default: false
	Verify bool

	// Pedantic disables the generator when a split shows that the density
	// is not log-concave.
	// Default: false
	Pedantic bool

	// LogLevel is the level of the "tdr" logger. Only the first generator
	// created in a process sets it.
	// Default: "WARNING"
	LogLevel string

	// Observer receives sampling events. Default: nil
	Observer Observer
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		StartingCount: 2,
		Percentiles:   []float64{0.25, 0.5, 0.75},
		RetryPoints:   30,
		MaxIntervals:  200,
		MaxIterations: 10000,
		GuideFactor:   2,
		MaxRatio:      0.99,
		Tolerance:     hat.Tolerance,
		LogLevel:      "WARNING",
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch {
	case c.StartingCount < 0:
		return errors.Wrapf(ErrInvalidConfig, "starting count %d is negative", c.StartingCount)
	case c.RetryPoints < 1:
		return errors.Wrapf(ErrInvalidConfig, "retry points %d must be positive", c.RetryPoints)
	case c.MaxIntervals < 2:
		return errors.Wrapf(ErrInvalidConfig, "max intervals %d below 2", c.MaxIntervals)
	case c.MaxIterations < 1:
		return errors.Wrapf(ErrInvalidConfig, "max iterations %d must be positive", c.MaxIterations)
	case !(c.GuideFactor >= 0) || math.IsInf(c.GuideFactor, 1):
		return errors.Wrapf(ErrInvalidConfig, "guide factor %g", c.GuideFactor)
	case !(c.MaxRatio > 0 && c.MaxRatio <= 1):
		return errors.Wrapf(ErrInvalidConfig, "max ratio %g not in (0, 1]", c.MaxRatio)
	case !(c.Tolerance > 0 && c.Tolerance < 1):
		return errors.Wrapf(ErrInvalidConfig, "tolerance %g not in (0, 1)", c.Tolerance)
	}
	for i, p := range c.Percentiles {
		if !(p > 0 && p < 1) {
			return errors.Wrapf(ErrInvalidConfig, "percentile %g not in (0, 1)", p)
		}
		if i > 0 && p <= c.Percentiles[i-1] {
			return errors.Wrapf(ErrInvalidConfig, "percentiles not increasing at %g", p)
		}
	}
	for _, x := range c.StartingPoints {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return errors.Wrapf(ErrInvalidConfig, "starting point %g", x)
		}
	}
	return nil
}

// State is the life cycle state of a Generator.
type State uint8

const (
	// Unbuilt generators have no hat yet.
	Unbuilt State = iota
	// Built generators have valid interval, area and guide tables.
	Built
	// Sampling is the state during a draw; tables may be rebuilt.
	Sampling
	// Disabled generators refuse to sample until Reinit succeeds.
	Disabled
)

func (s State) String() string {
	switch s {
	case Unbuilt:
		return "unbuilt"
	case Built:
		return "built"
	case Sampling:
		return "sampling"
	case Disabled:
		return "disabled"
	}
	return "unknown"
}

// Generator samples from a density by adaptive hat/squeeze rejection.
type Generator struct {
	Config Config

	density density.Density
	src     Source
	log     *logging.Logger
	obs     Observer
	check   checker

	state        State
	store        *hat.Store
	guide        hat.Guide
	maxIntervals int

	// starting points of the last construction
	points   []float64
	splitErr error
}

// New creates an unbuilt generator for d drawing uniforms from src.
func New(d density.Density, src Source, config Config) (*Generator, error) {
	if d == nil || src == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "density and source are required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{
		Config:  config,
		density: d,
		src:     src,
		log:     logger.NewLogger(config.LogLevel, "tdr"),
		obs:     config.Observer,
	}
	if g.obs == nil {
		g.obs = nopObserver{}
	}
	g.SetVerify(config.Verify)
	return g, nil
}

// Build constructs the hat from the configured starting points. On failure
// the generator stays unbuilt.
func (g *Generator) Build() error {
	points := g.Config.StartingPoints
	s, err := hat.Build(g.density, g.options(points, g.Config.StartingCount))
	if err != nil {
		return err
	}
	g.install(s, points)
	return nil
}

func (g *Generator) options(points []float64, count int) hat.Options {
	return hat.Options{
		Points:       points,
		Count:        count,
		MaxIntervals: g.Config.MaxIntervals,
		Tolerance:    g.Config.Tolerance,
		Log:          g.log,
	}
}

// install makes s the current hat and rebuilds the tables.
func (g *Generator) install(s *hat.Store, points []float64) {
	g.store = s
	g.points = points
	g.splitErr = nil
	g.maxIntervals = max(g.Config.MaxIntervals, s.Len())
	g.rebuildTables()
	g.state = Built
	g.obs.ObserveIntervals(s.Len())
}

// rebuildTables recomputes the area and guide tables after the intervals
// changed.
func (g *Generator) rebuildTables() {
	g.store.RebuildAreas()
	g.guide.Rebuild(g.store, g.Config.GuideFactor)
}

// SetVerify switches verify mode on or off.
func (g *Generator) SetVerify(verify bool) {
	g.Config.Verify = verify
	if verify {
		g.check = &verifier{log: g.log}
	} else {
		g.check = noCheck{}
	}
}

// State returns the life cycle state.
func (g *Generator) State() State { return g.state }

// Density returns the density the generator samples from.
func (g *Generator) Density() density.Density { return g.density }

// IntervalCount returns the number of intervals, including the sentinel.
func (g *Generator) IntervalCount() int {
	if g.store == nil {
		return 0
	}
	return g.store.Len()
}

// HatArea returns the area below the hat, or NaN before Build.
func (g *Generator) HatArea() float64 {
	if g.store == nil {
		return math.NaN()
	}
	return g.store.HatArea()
}

// LogHatArea returns the log of the area below the hat.
func (g *Generator) LogHatArea() float64 {
	if g.store == nil {
		return math.NaN()
	}
	return g.store.LogHatArea()
}

// SqueezeArea returns the area below the squeeze.
func (g *Generator) SqueezeArea() float64 {
	if g.store == nil {
		return math.NaN()
	}
	return g.store.SqueezeArea()
}

// SqueezeRatio returns squeeze area over hat area, the lower bound of the
// acceptance rate without density evaluations.
func (g *Generator) SqueezeRatio() float64 {
	if g.store == nil {
		return math.NaN()
	}
	return g.store.SqueezeRatio()
}

// Intervals returns a snapshot of the intervals in order.
func (g *Generator) Intervals() []hat.Interval {
	if g.store == nil {
		return nil
	}
	return g.store.Intervals()
}

// Violations returns the number of violations found in verify mode.
func (g *Generator) Violations() int {
	if v, ok := g.check.(*verifier); ok {
		return v.violations
	}
	return 0
}

// SplitError returns the last error of a failed refinement since the last
// construction. An error matching ErrNotConcave indicates that the density
// changed without Reinit.
func (g *Generator) SplitError() error { return g.splitErr }

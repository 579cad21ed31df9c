package tdr

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/nozzle/tdr/density"
)

func TestReinitIdempotent(t *testing.T) {
	g := newGenerator(t, density.Normal{Mu: 0, Sigma: 1}, DefaultConfig())
	draw(t, g, 1000)

	require.NoError(t, g.Reinit())
	first := g.Intervals()
	require.NoError(t, g.Reinit())
	assert.Equal(t, first, g.Intervals())

	require.NoError(t, g.ChangeDensity(density.Normal{Mu: 1, Sigma: 2}))
	first = g.Intervals()
	require.NoError(t, g.Reinit())
	second := g.Intervals()
	require.Len(t, second, len(first))
	for i := range first {
		if math.IsInf(first[i].X, 0) {
			assert.Equal(t, first[i].X, second[i].X)
			continue
		}
		assert.InDelta(t, first[i].X, second[i].X, 1e-6)
	}
}

func TestChangeDensity(t *testing.T) {
	g := newGenerator(t, density.Normal{Mu: 0, Sigma: 1}, DefaultConfig())
	draw(t, g, 1000)

	require.NoError(t, g.ChangeDensity(density.Normal{Mu: 1, Sigma: 2}))
	assert.Equal(t, Built, g.State())
	assert.NoError(t, g.SplitError())

	draws := draw(t, g, 20000)
	mean, std := stat.MeanStdDev(draws, nil)
	assert.InDelta(t, 1, mean, 0.1)
	assert.InDelta(t, 2, std, 0.1)

	assert.ErrorIs(t, g.ChangeDensity(nil), ErrInvalidConfig)
}

func TestReinitFailure(t *testing.T) {
	g := newGenerator(t, density.Normal{Mu: 0, Sigma: 1}, DefaultConfig())

	bimodal := density.NewFunc(
		func(x float64) float64 {
			return math.Log(math.Exp(-(x+3)*(x+3)/2) + math.Exp(-(x-3)*(x-3)/2))
		},
		func(x float64) float64 { return -x },
	)
	err := g.ChangeDensity(bimodal)
	assert.True(t, errors.Is(err, ErrReinitFailed), "got %v", err)
	assert.True(t, errors.Is(err, ErrNotUnimodal), "got %v", err)
	assert.Equal(t, Disabled, g.State())
	assert.Equal(t, 0, g.IntervalCount())

	_, err = g.Sample()
	assert.ErrorIs(t, err, ErrDisabled)

	require.NoError(t, g.ChangeDensity(density.Normal{Mu: 0, Sigma: 1}))
	assert.Equal(t, Built, g.State())
	_, err = g.Sample()
	assert.NoError(t, err)
}

func TestTruncate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Verify = true
	g := newGenerator(t, density.Normal{Mu: 0, Sigma: 1}, cfg)

	assert.ErrorIs(t, g.Truncate(2, 1), ErrInvalidConfig)

	require.NoError(t, g.Truncate(0.5, 2))
	left, right := g.Density().Domain()
	assert.Equal(t, 0.5, left)
	assert.Equal(t, 2.0, right)

	n := distuv.Normal{Mu: 0, Sigma: 1}
	lo, hi := n.CDF(0.5), n.CDF(2)
	draws := draw(t, g, 20000)
	for _, x := range draws {
		require.GreaterOrEqual(t, x, 0.5)
		require.LessOrEqual(t, x, 2.0)
	}
	chi, limit := chiSquare(draws, func(x float64) float64 { return (n.CDF(x) - lo) / (hi - lo) }, 20)
	assert.Less(t, chi, limit)
	assert.Zero(t, g.Violations())
}

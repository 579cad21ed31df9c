package metrics

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nozzle/tdr"
	"github.com/nozzle/tdr/density"
	"github.com/nozzle/tdr/internal/rand"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg, nil)
	require.NoError(t, err)

	c.ObserveTrial(tdr.AcceptedBySqueeze)
	c.ObserveTrial(tdr.AcceptedBySqueeze)
	c.ObserveTrial(tdr.AcceptedByDensity)
	c.ObserveTrial(tdr.Rejected)
	c.ObserveIntervals(12)
	c.ObserveSplitFailure(errors.Wrap(tdr.ErrNotConcave, "split"))
	c.ObserveSplitFailure(errors.New("boom"))
	c.ObserveIterationCap()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.trials.WithLabelValues("squeeze")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.trials.WithLabelValues("rejected")))
	assert.Equal(t, 12.0, testutil.ToFloat64(c.intervals))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.splitFailures.WithLabelValues("not_concave")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.splitFailures.WithLabelValues("other")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.iterationCap))
	assert.InDelta(t, 0.75, c.AcceptanceRate(), 1e-12)

	n, err := testutil.GatherAndCount(reg, "tdr_trials_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCollectorDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg, nil)
	require.NoError(t, err)
	_, err = NewCollector(reg, nil)
	assert.Error(t, err)
}

func TestWorkerCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	labels := prometheus.Labels{"density": "normal"}
	cs, err := NewWorkerCollectors(reg, labels, 2)
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.Equal(t, prometheus.Labels{"density": "normal"}, labels)

	cs[0].ObserveIntervals(7)
	cs[1].ObserveIntervals(11)
	cs[0].ObserveTrial(tdr.AcceptedBySqueeze)
	cs[1].ObserveTrial(tdr.Rejected)
	cs[1].ObserveTrial(tdr.AcceptedByDensity)
	cs[1].ObserveTrial(tdr.AcceptedByDensity)

	assert.Equal(t, 7.0, testutil.ToFloat64(cs[0].intervals))
	assert.Equal(t, 11.0, testutil.ToFloat64(cs[1].intervals))
	assert.InDelta(t, 1.0, cs[0].AcceptanceRate(), 1e-12)
	assert.InDelta(t, 2.0/3, cs[1].AcceptanceRate(), 1e-12)
	assert.InDelta(t, 0.75, AcceptanceRateOf(cs...), 1e-12)
	assert.Zero(t, AcceptanceRateOf())

	n, err := testutil.GatherAndCount(reg, "tdr_intervals")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = NewWorkerCollectors(reg, labels, 1)
	assert.Error(t, err)
}

func TestCollectorWithGenerator(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg, prometheus.Labels{"density": "normal"})
	require.NoError(t, err)

	cfg := tdr.DefaultConfig()
	cfg.Observer = c
	g, err := tdr.New(density.Normal{Mu: 0, Sigma: 1}, rand.NewMT19937(3), cfg)
	require.NoError(t, err)
	require.NoError(t, g.Build())
	for range 1000 {
		_, err := g.Sample()
		require.NoError(t, err)
	}

	assert.Equal(t, float64(g.IntervalCount()), testutil.ToFloat64(c.intervals))
	assert.Greater(t, c.AcceptanceRate(), 0.5)
	assert.LessOrEqual(t, c.AcceptanceRate(), 1.0)
}

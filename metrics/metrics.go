// Package metrics exports generator events as Prometheus metrics.
package metrics

import (
	"maps"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nozzle/tdr"
)

const namespace = "tdr"

// Collector implements tdr.Observer on Prometheus metrics.
type Collector struct {
	trials        *prometheus.CounterVec
	intervals     prometheus.Gauge
	splitFailures *prometheus.CounterVec
	iterationCap  prometheus.Counter
}

// NewCollector creates the metrics with the given constant labels and
// registers them with reg.
func NewCollector(reg prometheus.Registerer, labels prometheus.Labels) (*Collector, error) {
	c := &Collector{
		trials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "trials_total",
			Help:        "Iterations of the rejection loop by outcome.",
			ConstLabels: labels,
		}, []string{"outcome"}),
		intervals: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "intervals",
			Help:        "Current number of hat intervals.",
			ConstLabels: labels,
		}),
		splitFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "split_failures_total",
			Help:        "Refinements rolled back, by cause.",
			ConstLabels: labels,
		}, []string{"cause"}),
		iterationCap: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "iteration_cap_exceeded_total",
			Help:        "Draws that hit the iteration cap.",
			ConstLabels: labels,
		}),
	}

	for _, col := range []prometheus.Collector{c.trials, c.intervals, c.splitFailures, c.iterationCap} {
		if err := reg.Register(col); err != nil {
			return nil, errors.Wrap(err, "register tdr metrics")
		}
	}
	return c, nil
}

// NewWorkerCollectors creates one collector per worker on reg. They share the
// metric names and differ in a "worker" label holding the worker index.
func NewWorkerCollectors(reg prometheus.Registerer, labels prometheus.Labels, workers int) ([]*Collector, error) {
	out := make([]*Collector, workers)
	for i := range out {
		l := maps.Clone(labels)
		if l == nil {
			l = prometheus.Labels{}
		}
		l["worker"] = strconv.Itoa(i)
		c, err := NewCollector(reg, l)
		if err != nil {
			return nil, errors.Wrapf(err, "worker %d", i)
		}
		out[i] = c
	}
	return out, nil
}

// ObserveTrial counts one iteration of the rejection loop.
func (c *Collector) ObserveTrial(o tdr.Outcome) {
	c.trials.WithLabelValues(o.String()).Inc()
}

// ObserveIntervals sets the interval gauge.
func (c *Collector) ObserveIntervals(n int) {
	c.intervals.Set(float64(n))
}

// ObserveSplitFailure counts a rolled back refinement under the cause of err.
func (c *Collector) ObserveSplitFailure(err error) {
	c.splitFailures.WithLabelValues(cause(err)).Inc()
}

// ObserveIterationCap counts a draw that hit the iteration cap.
func (c *Collector) ObserveIterationCap() {
	c.iterationCap.Inc()
}

// Trials returns the accepted and the total number of trials observed so far.
func (c *Collector) Trials() (accepted, total float64) {
	sq := counterValue(c.trials.WithLabelValues(tdr.AcceptedBySqueeze.String()))
	de := counterValue(c.trials.WithLabelValues(tdr.AcceptedByDensity.String()))
	rej := counterValue(c.trials.WithLabelValues(tdr.Rejected.String()))
	return sq + de, sq + de + rej
}

// AcceptanceRate returns accepted over all trials observed so far.
func (c *Collector) AcceptanceRate() float64 {
	return AcceptanceRateOf(c)
}

// AcceptanceRateOf returns accepted over all trials of the given collectors.
func AcceptanceRateOf(cs ...*Collector) float64 {
	var accepted, total float64
	for _, c := range cs {
		a, n := c.Trials()
		accepted += a
		total += n
	}
	if total > 0 {
		return accepted / total
	}
	return 0
}

func cause(err error) string {
	switch {
	case errors.Is(err, tdr.ErrNotConcave):
		return "not_concave"
	case errors.Is(err, tdr.ErrUnbounded):
		return "unbounded"
	case errors.Is(err, tdr.ErrDegenerate):
		return "degenerate"
	}
	return "other"
}

// Package metric exports engine runs as Prometheus metrics.
//
// A Collector implements cmeans.MetricsCollector and registers its series on
// the registerer passed to NewCollector:
//
//	reg := prometheus.NewRegistry()
//	mc, _ := metric.NewCollector(reg)
//	fcm, _ := cmeans.NewFuzzyCMeans(objects, 2, cmeans.WithMetricsCollector(mc))
package metric

import (
	"time"

	"github.com/clustercore/cmeans"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cmeans"

var _ cmeans.MetricsCollector = (*Collector)(nil)

// Collector records run and pass statistics as Prometheus series.
type Collector struct {
	runs           *prometheus.CounterVec
	runDuration    *prometheus.HistogramVec
	runIterations  *prometheus.HistogramVec
	passes         prometheus.Counter
	passIterations prometheus.Histogram
}

// NewCollector creates a Collector and registers its series on reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of engine runs.",
		}, []string{"algorithm", "status"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of engine runs.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 12),
		}, []string{"algorithm"}),
		runIterations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_iterations",
			Help:      "Center/membership updates per engine run.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 15),
		}, []string{"algorithm"}),
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pcm",
			Name:      "passes_total",
			Help:      "Total number of possibilistic passes.",
		}),
		passIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pcm",
			Name:      "pass_iterations",
			Help:      "Iterations per possibilistic pass.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 15),
		}),
	}

	for _, col := range []prometheus.Collector{c.runs, c.runDuration, c.runIterations, c.passes, c.passIterations} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordRun implements cmeans.MetricsCollector.
func (c *Collector) RecordRun(algorithm string, iterations int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.runs.WithLabelValues(algorithm, status).Inc()
	c.runDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
	c.runIterations.WithLabelValues(algorithm).Observe(float64(iterations))
}

// RecordPass implements cmeans.MetricsCollector.
func (c *Collector) RecordPass(_, iterations int) {
	c.passes.Inc()
	c.passIterations.Observe(float64(iterations))
}

package cmeans

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting engine metrics.
// Implement this interface to integrate with monitoring systems; the metric
// package ships a Prometheus implementation.
type MetricsCollector interface {
	// RecordRun is called after each DetermineClusterCenters call.
	// iterations counts every center/membership update of the run
	// (warm start included), err is nil if the run converged.
	RecordRun(algorithm string, iterations int, duration time.Duration, err error)

	// RecordPass is called after each possibilistic pass.
	RecordPass(pass, iterations int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordPass(int, int)                         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount        atomic.Int64
	RunErrors       atomic.Int64
	RunTotalNanos   atomic.Int64
	IterationsTotal atomic.Int64
	PassCount       atomic.Int64
	PassIterations  atomic.Int64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(algorithm string, iterations int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	b.IterationsTotal.Add(int64(iterations))
	if err != nil {
		b.RunErrors.Add(1)
	}
}

// RecordPass implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPass(pass, iterations int) {
	b.PassCount.Add(1)
	b.PassIterations.Add(int64(iterations))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:        b.RunCount.Load(),
		RunErrors:       b.RunErrors.Load(),
		RunAvgNanos:     b.getAvgRunNanos(),
		IterationsTotal: b.IterationsTotal.Load(),
		PassCount:       b.PassCount.Load(),
		PassIterations:  b.PassIterations.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRunNanos() int64 {
	count := b.RunCount.Load()
	if count == 0 {
		return 0
	}
	return b.RunTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount        int64
	RunErrors       int64
	RunAvgNanos     int64
	IterationsTotal int64
	PassCount       int64
	PassIterations  int64
}

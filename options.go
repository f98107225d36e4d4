package cmeans

import (
	"log/slog"
	"math"

	"github.com/clustercore/cmeans/distance"
	"github.com/clustercore/cmeans/rng"
)

const (
	// DefaultThreshold is the default convergence threshold on the change of
	// the membership matrix between two iterations.
	DefaultThreshold = 1.0e-7

	// DefaultExponent is the default fuzzifier exponent m.
	DefaultExponent = 2.0

	// DefaultMaxIterations caps every convergence loop.
	DefaultMaxIterations = 10000
)

type options struct {
	threshold        float64
	exponent         float64
	maxIterations    int
	metric           distance.Metric
	source           rng.Source
	normalizeInit    bool
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures engine construction.
type Option func(*options)

// WithThreshold sets the convergence threshold e. Iteration stops once
// sqrt(Σ (mik_new - mik_old)²) drops below e. Must be positive.
func WithThreshold(e float64) Option {
	return func(o *options) {
		o.threshold = e
	}
}

// WithExponent sets the fuzzifier exponent m used for the center weights
// and the fuzzy membership rule. Must be greater than 1.
func WithExponent(m float64) Option {
	return func(o *options) {
		o.exponent = m
	}
}

// WithMaxIterations caps the number of iterations of every convergence loop.
// A run that hits the cap returns an error matching ErrConvergenceNotReached.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithMetric selects the distance metric. Only distance.MetricEuclidean is
// supported; other values fail construction.
func WithMetric(m distance.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithRandomSource sets the source used for random membership
// initialization. If nil is passed, the process-wide source is used.
//
// Example:
//
//	fcm, _ := cmeans.NewFuzzyCMeans(objects, 2,
//	    cmeans.WithRandomSource(rng.New(42)))
func WithRandomSource(src rng.Source) Option {
	return func(o *options) {
		if src == nil {
			src = rng.Default()
		}
		o.source = src
	}
}

// WithNormalizedRandomInit normalizes each row of a randomly initialized
// membership matrix to sum to 1. By default rows are left unnormalized.
func WithNormalizedRandomInit(normalize bool) Option {
	return func(o *options) {
		o.normalizeInit = normalize
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &cmeans.BasicMetricsCollector{}
//	fcm, _ := cmeans.NewFuzzyCMeans(objects, 2, cmeans.WithMetricsCollector(metrics))
//	// ... run ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := cmeans.NewJSONLogger(slog.LevelDebug)
//	fcm, _ := cmeans.NewFuzzyCMeans(objects, 2, cmeans.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		threshold:        DefaultThreshold,
		exponent:         DefaultExponent,
		maxIterations:    DefaultMaxIterations,
		metric:           distance.MetricEuclidean,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.source == nil {
		o.source = rng.Default()
	}
	return o
}

// toOptions turns resolved options back into option functions so a nested
// engine (the possibilistic warm start) shares the parent's configuration.
func (o options) toOptions() []Option {
	return []Option{
		WithThreshold(o.threshold),
		WithExponent(o.exponent),
		WithMaxIterations(o.maxIterations),
		WithMetric(o.metric),
		WithRandomSource(o.source),
		WithNormalizedRandomInit(o.normalizeInit),
		WithMetricsCollector(NoopMetricsCollector{}),
		WithLogger(o.logger),
	}
}

func (o options) validate() error {
	if math.IsNaN(o.threshold) || math.IsInf(o.threshold, 0) || o.threshold <= 0 {
		return &ConfigError{Field: "threshold", Value: o.threshold}
	}
	if math.IsNaN(o.exponent) || math.IsInf(o.exponent, 0) || o.exponent <= 1 {
		return &ConfigError{Field: "exponent", Value: o.exponent}
	}
	if o.maxIterations < 1 {
		return &ConfigError{Field: "maxIterations", Value: o.maxIterations}
	}
	if _, err := distance.Provider(o.metric); err != nil {
		return &ConfigError{Field: "metric", Value: o.metric, cause: err}
	}
	return nil
}

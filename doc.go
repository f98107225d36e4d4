// Package cmeans clusters planar points with the fuzzy c-means (FCM) and
// possibilistic c-means (PCM) algorithms.
//
// # Quick Start
//
//	objects := model.ObjectSet{{X: 0.1, Y: 0.3}, {X: 0.1, Y: 0.5}, {X: 0.9, Y: 0.5}}
//
//	fcm, _ := cmeans.NewFuzzyCMeans(objects, 2)
//	centers, _ := fcm.DetermineClusterCenters(ctx, true, false)
//
//	pcm, _ := cmeans.NewPossibilisticCMeans(objects, 2, 2)
//	centers, _ = pcm.DetermineClusterCenters(ctx, true, false)
//
// # Fuzzy C-Means
//
// FCM alternates two updates until the membership matrix stops changing:
//
//	v_k  = Σ_i mik^m · x_i / Σ_i mik^m
//	mik  = d(x_i, v_k)^(-1/(m-1)) / Σ_j d(x_i, v_j)^(-1/(m-1))
//
// The fuzzifier m defaults to 2 (WithExponent). Iteration stops when the
// Frobenius norm of the membership change drops below the threshold
// (WithThreshold, default 1e-7). A membership that evaluates to NaN, which
// happens when an object coincides with a center, is replaced by 1.
//
// # Possibilistic C-Means
//
// PCM warm-starts from a randomly initialized FCM run and then executes
// passCount refinement passes. Each pass first derives a per-cluster scale
//
//	ni_k = Σ_i mik^4 · d² / Σ_i mik²
//
// from the membership carried over from the previous pass, then iterates
//
//	mik = 1 / (1 + d² / ni_k)
//
// until convergence. PCM memberships are typicalities: rows do not sum to 1.
//
// The remaining-pass counter persists across calls. Once it is exhausted a
// call only performs the warm start; ResetPasses re-arms it.
//
// # Randomness
//
// Random initialization draws from the process-wide rng.Default source unless
// WithRandomSource supplies another one. Use rng.New(seed) for reproducible
// runs. By default random rows are not normalized; WithNormalizedRandomInit
// changes that.
//
// # Observability
//
// WithLogger attaches a slog-based Logger and WithMetricsCollector a
// MetricsCollector. BasicMetricsCollector keeps in-memory counters and the
// metric package exports runs to Prometheus.
//
// # Errors
//
// Constructors return errors matching ErrInvalidConfiguration. A run that
// exceeds WithMaxIterations returns an error matching
// ErrConvergenceNotReached; context cancellation is returned as is.
package cmeans

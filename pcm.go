package cmeans

import (
	"context"
	"slices"
	"time"

	"github.com/clustercore/cmeans/distance"
	"github.com/clustercore/cmeans/internal/kernel"
	"github.com/clustercore/cmeans/model"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
)

// AlgorithmPCM names the possibilistic c-means engine in logs, metrics and
// errors.
const AlgorithmPCM = "pcm"

// PossibilisticCMeans clusters a fixed object set with the possibilistic
// c-means algorithm, warm-started from a fuzzy c-means run.
//
// The engine keeps a remaining-passes counter across runs: a second call to
// DetermineClusterCenters continues from whatever count is left, and once the
// counter is exhausted a call only performs the warm start. ResetPasses
// restores the configured pass count.
//
// The engine is not safe for concurrent use.
type PossibilisticCMeans struct {
	objects   model.ObjectSet
	clusters  int
	passes    int
	remaining int
	opts      options
	dist      distance.Func

	centers    []model.Point
	mik        *mat.Dense
	prev       *mat.Dense
	ni         []float64
	path       model.Path
	iterations int
}

// NewPossibilisticCMeans creates a possibilistic c-means engine running
// passCount refinement passes. It returns an error matching
// ErrInvalidConfiguration if clusterCount < 1, passCount < 1, objects is
// empty or an option value is invalid.
func NewPossibilisticCMeans(objects model.ObjectSet, clusterCount, passCount int, optFns ...Option) (*PossibilisticCMeans, error) {
	o := applyOptions(optFns)
	if err := validateInput(objects, clusterCount, o); err != nil {
		return nil, err
	}
	if passCount < 1 {
		return nil, &ConfigError{Field: "passCount", Value: passCount}
	}

	dist, _ := distance.Provider(o.metric)
	n := objects.Len()

	return &PossibilisticCMeans{
		objects:   objects.Clone(),
		clusters:  clusterCount,
		passes:    passCount,
		remaining: passCount,
		opts:      o,
		dist:      dist,
		centers:   make([]model.Point, clusterCount),
		mik:       mat.NewDense(n, clusterCount, nil),
		prev:      mat.NewDense(n, clusterCount, nil),
		ni:        make([]float64, clusterCount),
	}, nil
}

// DetermineClusterCenters warm-starts from a fuzzy c-means run and then
// executes the remaining possibilistic passes.
//
// The warm start always uses random initialization; randomInit is accepted
// for signature parity with FuzzyCMeans. Each pass calibrates the typicality
// ni once, on its first iteration, from the membership carried over from the
// previous pass, then iterates until the membership change drops below the
// threshold. With recordPath the warm-start centers followed by every pass
// snapshot are available through Path.
func (p *PossibilisticCMeans) DetermineClusterCenters(ctx context.Context, randomInit, recordPath bool) ([]model.Point, error) {
	start := time.Now()
	log := p.opts.logger.
		WithRunID(uuid.NewString()).
		WithAlgorithm(AlgorithmPCM).
		WithClusters(p.clusters).
		WithCount(p.objects.Len())

	p.path = nil
	n, err := p.run(ctx, recordPath, log)
	p.iterations = n

	duration := time.Since(start)
	log.LogRun(ctx, n, duration, err)
	p.opts.metricsCollector.RecordRun(AlgorithmPCM, n, duration, err)

	if err != nil {
		return nil, err
	}
	return p.Centers(), nil
}

func (p *PossibilisticCMeans) run(ctx context.Context, recordPath bool, log *Logger) (int, error) {
	fcm, err := NewFuzzyCMeans(p.objects, p.clusters, p.opts.toOptions()...)
	if err != nil {
		return 0, err
	}

	warm, err := fcm.DetermineClusterCenters(ctx, true, false)
	iterations := fcm.Iterations()
	if err != nil {
		return iterations, err
	}

	copy(p.centers, warm)
	p.mik.Copy(fcm.mik)
	if recordPath {
		p.path = append(p.path, warm...)
	}

	for pass := 1; p.remaining > 0; pass++ {
		p.remaining--

		n, err := p.refine(ctx, recordPath)
		iterations += n
		p.opts.metricsCollector.RecordPass(pass, n)
		if err != nil {
			return iterations, err
		}
		log.LogPass(ctx, pass, n, p.ni)
	}

	return iterations, nil
}

// refine runs one possibilistic pass and returns its iteration count.
func (p *PossibilisticCMeans) refine(ctx context.Context, recordPath bool) (int, error) {
	for it := 1; ; it++ {
		if err := ctx.Err(); err != nil {
			return it - 1, err
		}

		kernel.UpdateCenters(p.objects, p.mik, p.opts.exponent, p.centers)
		if recordPath {
			p.path = append(p.path, p.centers...)
		}

		// ni stays fixed for the rest of the pass.
		if it == 1 {
			kernel.Typicality(p.objects, p.centers, p.mik, p.dist, p.ni)
		}

		p.prev.Copy(p.mik)
		kernel.UpdatePossibilisticMembership(p.objects, p.centers, p.mik, p.ni, p.dist)

		change := kernel.Change(p.mik, p.prev)
		if change < p.opts.threshold {
			return it, nil
		}
		if it >= p.opts.maxIterations {
			return it, &ConvergenceError{
				Algorithm:  AlgorithmPCM,
				Iterations: it,
				Change:     change,
				Threshold:  p.opts.threshold,
			}
		}
	}
}

// Centers returns a copy of the current cluster centers.
func (p *PossibilisticCMeans) Centers() []model.Point {
	out := make([]model.Point, len(p.centers))
	copy(out, p.centers)
	return out
}

// Membership returns a copy of the N×C typicality matrix. Rows are not
// normalized.
func (p *PossibilisticCMeans) Membership() *mat.Dense {
	return mat.DenseCopyOf(p.mik)
}

// SetMembership replaces the membership matrix. It must be N×C.
func (p *PossibilisticCMeans) SetMembership(m mat.Matrix) error {
	return setMembership(p.mik, m)
}

// Typicality returns the per-cluster scale ni of the last pass.
func (p *PossibilisticCMeans) Typicality() []float64 {
	return slices.Clone(p.ni)
}

// Path returns the recorded center history of the last run, oldest first.
// It is nil if the last run did not record a path.
func (p *PossibilisticCMeans) Path() model.Path {
	return clonePath(p.path)
}

// Iterations returns the number of iterations of the last run, warm start
// included.
func (p *PossibilisticCMeans) Iterations() int {
	return p.iterations
}

// RemainingPasses returns the number of passes the next run will execute.
func (p *PossibilisticCMeans) RemainingPasses() int {
	return p.remaining
}

// ResetPasses restores the remaining-passes counter to the configured count.
func (p *PossibilisticCMeans) ResetPasses() {
	p.remaining = p.passes
}

// ClusterCount returns the configured number of clusters.
func (p *PossibilisticCMeans) ClusterCount() int {
	return p.clusters
}

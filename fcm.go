package cmeans

import (
	"context"
	"time"

	"github.com/clustercore/cmeans/distance"
	"github.com/clustercore/cmeans/internal/kernel"
	"github.com/clustercore/cmeans/model"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
)

// AlgorithmFCM names the fuzzy c-means engine in logs, metrics and errors.
const AlgorithmFCM = "fcm"

// Clusterer is implemented by both engines.
type Clusterer interface {
	// DetermineClusterCenters runs the engine and returns the final centers.
	DetermineClusterCenters(ctx context.Context, randomInit, recordPath bool) ([]model.Point, error)

	// Membership returns a copy of the N×C membership matrix of the last run.
	Membership() *mat.Dense

	// Path returns the recorded center history of the last run, oldest first.
	Path() model.Path
}

var (
	_ Clusterer = (*FuzzyCMeans)(nil)
	_ Clusterer = (*PossibilisticCMeans)(nil)
)

// FuzzyCMeans clusters a fixed object set with the fuzzy c-means algorithm.
//
// The engine owns its buffers and is mutated in place by every run; it is
// not safe for concurrent use.
type FuzzyCMeans struct {
	objects  model.ObjectSet
	clusters int
	opts     options
	dist     distance.Func

	centers    []model.Point
	mik        *mat.Dense
	prev       *mat.Dense
	path       model.Path
	iterations int
}

// NewFuzzyCMeans creates a fuzzy c-means engine for objects and clusterCount
// clusters. It returns an error matching ErrInvalidConfiguration if
// clusterCount < 1, objects is empty or an option value is invalid.
func NewFuzzyCMeans(objects model.ObjectSet, clusterCount int, optFns ...Option) (*FuzzyCMeans, error) {
	o := applyOptions(optFns)
	if err := validateInput(objects, clusterCount, o); err != nil {
		return nil, err
	}

	dist, _ := distance.Provider(o.metric)
	n := objects.Len()

	return &FuzzyCMeans{
		objects:  objects.Clone(),
		clusters: clusterCount,
		opts:     o,
		dist:     dist,
		centers:  make([]model.Point, clusterCount),
		mik:      mat.NewDense(n, clusterCount, nil),
		prev:     mat.NewDense(n, clusterCount, nil),
	}, nil
}

// DetermineClusterCenters initializes the membership matrix and iterates
// center and membership updates until the change of the membership matrix
// drops below the threshold.
//
// With randomInit every membership entry is drawn from the random source
// (rows are not normalized unless WithNormalizedRandomInit is set);
// otherwise object i starts fully assigned to cluster i mod C. With
// recordPath every center snapshot is kept and available through Path.
func (f *FuzzyCMeans) DetermineClusterCenters(ctx context.Context, randomInit, recordPath bool) ([]model.Point, error) {
	if randomInit {
		kernel.InitRandom(f.mik, f.opts.source, f.opts.normalizeInit)
	} else {
		kernel.InitCrisp(f.mik)
	}
	return f.run(ctx, recordPath)
}

// Resume iterates from the current membership matrix (the result of the last
// run or a matrix installed with SetMembership) instead of initializing a
// new one.
func (f *FuzzyCMeans) Resume(ctx context.Context, recordPath bool) ([]model.Point, error) {
	return f.run(ctx, recordPath)
}

func (f *FuzzyCMeans) run(ctx context.Context, recordPath bool) ([]model.Point, error) {
	start := time.Now()
	log := f.opts.logger.
		WithRunID(uuid.NewString()).
		WithAlgorithm(AlgorithmFCM).
		WithClusters(f.clusters).
		WithCount(f.objects.Len())

	f.path = nil
	n, err := f.converge(ctx, recordPath)
	f.iterations = n

	duration := time.Since(start)
	log.LogRun(ctx, n, duration, err)
	f.opts.metricsCollector.RecordRun(AlgorithmFCM, n, duration, err)

	if err != nil {
		return nil, err
	}
	return f.Centers(), nil
}

// converge alternates center and membership updates until the change drops
// below the threshold and returns the number of iterations performed.
func (f *FuzzyCMeans) converge(ctx context.Context, recordPath bool) (int, error) {
	for it := 1; ; it++ {
		if err := ctx.Err(); err != nil {
			return it - 1, err
		}

		kernel.UpdateCenters(f.objects, f.mik, f.opts.exponent, f.centers)
		if recordPath {
			f.path = append(f.path, f.centers...)
		}

		f.prev.Copy(f.mik)
		kernel.UpdateFuzzyMembership(f.objects, f.centers, f.mik, f.opts.exponent, f.dist)

		change := kernel.Change(f.mik, f.prev)
		if change < f.opts.threshold {
			return it, nil
		}
		if it >= f.opts.maxIterations {
			return it, &ConvergenceError{
				Algorithm:  AlgorithmFCM,
				Iterations: it,
				Change:     change,
				Threshold:  f.opts.threshold,
			}
		}
	}
}

// Centers returns a copy of the current cluster centers.
func (f *FuzzyCMeans) Centers() []model.Point {
	out := make([]model.Point, len(f.centers))
	copy(out, f.centers)
	return out
}

// Membership returns a copy of the N×C membership matrix.
func (f *FuzzyCMeans) Membership() *mat.Dense {
	return mat.DenseCopyOf(f.mik)
}

// SetMembership replaces the membership matrix. It must be N×C.
func (f *FuzzyCMeans) SetMembership(m mat.Matrix) error {
	return setMembership(f.mik, m)
}

// Path returns the recorded center history of the last run, oldest first.
// It is nil if the last run did not record a path.
func (f *FuzzyCMeans) Path() model.Path {
	return clonePath(f.path)
}

// Iterations returns the number of iterations of the last run.
func (f *FuzzyCMeans) Iterations() int {
	return f.iterations
}

// ClusterCount returns the configured number of clusters.
func (f *FuzzyCMeans) ClusterCount() int {
	return f.clusters
}

func validateInput(objects model.ObjectSet, clusterCount int, o options) error {
	if clusterCount < 1 {
		return &ConfigError{Field: "clusterCount", Value: clusterCount}
	}
	if objects.Len() == 0 {
		return &ConfigError{Field: "objects", Value: 0}
	}
	return o.validate()
}

func setMembership(dst *mat.Dense, m mat.Matrix) error {
	r, c := dst.Dims()
	mr, mc := m.Dims()
	if r != mr || c != mc {
		return &MembershipShapeError{
			ExpectedRows: r, ExpectedCols: c,
			ActualRows: mr, ActualCols: mc,
		}
	}
	dst.Copy(m)
	return nil
}

func clonePath(p model.Path) model.Path {
	if p == nil {
		return nil
	}
	out := make(model.Path, len(p))
	copy(out, p)
	return out
}

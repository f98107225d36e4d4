package testutil

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/clustercore/cmeans/model"
)

// ReferenceDelta is the per-coordinate tolerance of the reference scenarios.
const ReferenceDelta = 3e-6

var (
	// FCMReference holds the fuzzy c-means centers of CanonicalObjects with
	// two clusters.
	FCMReference = []model.Point{{X: 0.147070835, Y: 0.5}, {X: 0.758778663, Y: 0.5}}

	// PCM1Reference holds the possibilistic centers after one pass.
	PCM1Reference = []model.Point{{X: 0.102492638, Y: 0.5}, {X: 0.83065648, Y: 0.5}}

	// PCM2Reference holds the possibilistic centers after two passes.
	PCM2Reference = []model.Point{{X: 0.10000244, Y: 0.5}, {X: 0.801756421, Y: 0.5}}
)

// CanonicalObjects returns the seven-point object set of the reference
// scenarios: three points on x=0.1 and four around x=0.8.
func CanonicalObjects() model.ObjectSet {
	return model.ObjectSet{
		{X: 0.1, Y: 0.3}, {X: 0.1, Y: 0.5}, {X: 0.1, Y: 0.7},
		{X: 0.7, Y: 0.3}, {X: 0.7, Y: 0.7}, {X: 0.8, Y: 0.5}, {X: 0.9, Y: 0.5},
	}
}

// MatchCenters reports whether got and want hold the same centers in any
// order, each coordinate within delta.
func MatchCenters(got, want []model.Point, delta float64) bool {
	if len(got) != len(want) {
		return false
	}
	used := make([]bool, len(got))
	for _, w := range want {
		found := false
		for i, g := range got {
			if used[i] {
				continue
			}
			if math.Abs(g.X-w.X) < delta && math.Abs(g.Y-w.Y) < delta {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// UniformPoints generates num points in [0, 1)².
func (r *RNG) UniformPoints(num int) model.ObjectSet {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make(model.ObjectSet, num)
	for i := range points {
		points[i] = model.Point{X: r.rand.Float64(), Y: r.rand.Float64()}
	}
	return points
}

// ClusteredPoints generates num points spread around the given centers
// (round-robin) with Gaussian noise of the given standard deviation.
func (r *RNG) ClusteredPoints(num int, centers []model.Point, spread float64) model.ObjectSet {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make(model.ObjectSet, num)
	for i := range points {
		c := centers[i%len(centers)]
		points[i] = model.Point{
			X: c.X + r.rand.NormFloat64()*spread,
			Y: c.Y + r.rand.NormFloat64()*spread,
		}
	}
	return points
}

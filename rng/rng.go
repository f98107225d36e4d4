package rng

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source produces uniform doubles in [0, 1).
type Source interface {
	Float64() float64
}

// RNG is a seeded uniform generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// New creates a new RNG instance with the specified seed.
func New(seed uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(seed, seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewPCG(r.seed, r.seed)) // nolint gosec
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Float64 in a loop).
func (r *RNG) FillUniform(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float64()
	}
}

var (
	defaultOnce sync.Once
	defaultRNG  *RNG
)

// Default returns the process-wide source. It is seeded exactly once, from
// the current time, on first use and cannot be reseeded.
func Default() *RNG {
	defaultOnce.Do(func() {
		defaultRNG = New(uint64(time.Now().UnixNano()))
	})
	return defaultRNG
}

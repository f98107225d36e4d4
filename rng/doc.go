// Package rng provides the uniform random sources used to initialize
// membership matrices.
//
// Default returns a process-wide source seeded once from the wall clock on
// first use. New returns an isolated, explicitly seeded source for
// reproducible runs. Both are safe for concurrent use.
package rng

// Package testutil provides deterministic fixtures for rawvec tests and
// benchmarks.
package testutil

import "math/rand"

// RNG encapsulates a seeded random number generator.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Ints generates n random values.
func (r *RNG) Ints(n int) []int {
	values := make([]int, n)
	for i := range values {
		values[i] = r.rand.Int()
	}

	return values
}

// Perm generates a random permutation of [0, n).
func (r *RNG) Perm(n int) []int {
	return r.rand.Perm(n)
}

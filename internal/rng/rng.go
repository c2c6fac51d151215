// Package rng provides the injectable randomness source used by reward
// resolution and shop restocking, so outcomes are reproducible in tests.
package rng

import (
	"math/rand/v2"
	"sync"
)

// RNG is a source of uniform random draws.
type RNG interface {
	// IntN returns a uniform int in [0, n). Panics if n <= 0, matching
	// math/rand semantics.
	IntN(n int) int
	// Float64 returns a uniform float64 in [0, 1).
	Float64() float64
}

// source serializes draws because a single RNG is shared between request
// goroutines and the restock worker, and *rand.Rand is not goroutine safe.
type source struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns an RNG seeded from the system source. It is safe for
// concurrent use.
func New() RNG {
	return &source{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeeded returns a deterministic RNG for tests.
func NewSeeded(seed uint64) RNG {
	return &source{r: rand.New(rand.NewPCG(seed, seed))}
}

func (s *source) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

func (s *source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

package rng

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeededDeterministic(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
		assert.InDelta(t, a.Float64(), b.Float64(), 0)
	}
}

func TestIntNBounds(t *testing.T) {
	r := NewSeeded(7)

	for i := 0; i < 1000; i++ {
		v := r.IntN(6)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 6)
	}
}

// A single RNG is shared between HTTP request goroutines and the restock
// worker, so draws must be safe under concurrent use. Run with -race.
func TestConcurrentUse(t *testing.T) {
	r := New()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = r.IntN(100)
				_ = r.Float64()
			}
		}()
	}
	wg.Wait()
}

package usecase

import (
	"math/rand/v2"
	"sync"
)

// NewRandom returns a goroutine-safe source backed by the runtime's global generator
func NewRandom() *GlobalRandom {
	return &GlobalRandom{}
}

// GlobalRandom delegates to math/rand/v2's package-level functions
type GlobalRandom struct{}

// IntN returns a value in [0, n)
func (GlobalRandom) IntN(n int) int {
	return rand.IntN(n)
}

// SeededRandom is a reproducible source, safe for concurrent use
type SeededRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRandom creates a PCG-backed source from two seed words
func NewSeededRandom(seed1, seed2 uint64) *SeededRandom {
	return &SeededRandom{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// IntN returns a value in [0, n)
func (r *SeededRandom) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

package game

import (
	"math/rand"
	"time"
)

// Rand is the randomness the engine needs. *rand.Rand satisfies it.
type Rand interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

// NewRand returns a seeded source when seeded is true and a time-seeded
// one otherwise.
func NewRand(seeded bool, seed int64) *rand.Rand {
	if !seeded {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

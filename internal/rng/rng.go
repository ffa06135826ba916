// Package rng derives the reproducible random streams used by a session.
package rng

import "math/rand/v2"

// Stream selectors mixed into the PCG state so that the two streams are
// independent while sharing one seed.
const (
	shuffleStream  = 0x9e3779b97f4a7c15
	problemsStream = 0xbf58476d1ce4e5b9
)

// Streams holds one source for ordering stimuli and one for generating
// arithmetic problems. Drawing from one never shifts the other.
type Streams struct {
	Seed     uint64
	Shuffle  *rand.Rand
	Problems *rand.Rand
}

// New returns the streams for a participant seed.
func New(seed uint64) *Streams {
	return &Streams{
		Seed:     seed,
		Shuffle:  rand.New(rand.NewPCG(seed, shuffleStream)),
		Problems: rand.New(rand.NewPCG(seed, problemsStream)),
	}
}

// Range returns a uniform integer in [lo, hi). It panics if hi <= lo.
func Range(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo)
}

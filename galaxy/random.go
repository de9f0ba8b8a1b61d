package galaxy

import (
	"math/rand/v2"
)

// RandomSource yields uniformly distributed floats in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Float64() float64
}

// NewRandomSource returns a deterministic PCG source for the given seed.
//
// Parameters:
//   - seed: the seed; equal seeds yield equal sequences
//
// Returns:
//   - RandomSource: a seeded source, not safe for concurrent use
func NewRandomSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewEntropySource returns a source seeded from the runtime's entropy.
//
// Returns:
//   - RandomSource: a randomly seeded source, not safe for concurrent use
func NewEntropySource() RandomSource {
	return NewRandomSource(rand.Uint64())
}

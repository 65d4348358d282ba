// Package random provides the seeded uniform source used to synthesize trees
// and datasets.
package random

import (
	"math/rand/v2"
)

// Source produces uniformly distributed numbers. Implementations are not
// required to be safe for concurrent use.
type Source interface {
	// Int returns an integer in [0, n].
	Int(n int) int
	// IntRange returns an integer in [a, b].
	IntRange(a, b int) int
	// Float returns a float in [0, 1).
	Float() float64
	// FloatN returns a float in [0, b).
	FloatN(b float64) float64
	// FloatRange returns a float in [a, b).
	FloatRange(a, b float64) float64
}

// Rand is a deterministic Source backed by a PCG generator.
type Rand struct {
	r *rand.Rand
}

// New returns a Rand seeded with seed. Equal seeds produce equal sequences.
func New(seed uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *Rand) Int(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n + 1)
}

func (r *Rand) IntRange(a, b int) int {
	if a >= b {
		return a
	}
	return a + r.r.IntN(b-a+1)
}

func (r *Rand) Float() float64 {
	return r.r.Float64()
}

func (r *Rand) FloatN(b float64) float64 {
	if b == 0 {
		return 0
	}
	return r.r.Float64() * b
}

func (r *Rand) FloatRange(a, b float64) float64 {
	if a == b {
		return a
	}
	return a + r.r.Float64()*(b-a)
}

// Seed resets the generator so that it replays the sequence for seed.
func (r *Rand) Seed(seed uint64) {
	r.r = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

package core

import (
	"math"
	"math/rand/v2"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
// Every generator owns one; they are never shared.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// ResolveSeed returns *seed when set and a fresh random seed otherwise.
func ResolveSeed(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return rand.Int64()
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Float64 returns a random float in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// Angle returns a uniformly distributed angle in [0, 2π).
func (r *RNG) Angle() float64 { return r.r.Float64() * 2 * math.Pi }

// UnitVector returns a unit vector with a uniformly distributed direction.
func (r *RNG) UnitVector() Vec2 { return FromAngle(r.Angle()) }

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }

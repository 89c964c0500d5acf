// Package seq generates reproducible pseudo-random values and synthetic
// numeric series used as placeholder and demo data for dashboard charts.
//
// A Generator is a linear congruential generator owning a single integer
// seed. Given the same seed and the same calls, it always produces the same
// values, which makes demo charts and test fixtures stable:
//
//	g := seq.NewSeeded(42)
//	cfg := seq.DefaultSeriesConfig()
//	cfg.Count = 12
//	samples, err := g.Series(cfg)
//
// A Generator is not safe for concurrent use, use a Locked generator to share
// one stream between goroutines.
package seq

import (
	"time"
)

// LCG parameters.
const (
	multiplier = 9301
	increment  = 49297
	modulus    = 233280
)

// Generator is a deterministic pseudo-random number generator.
//
// Its zero value is a generator seeded with 0.
type Generator struct {
	seed int64
}

// New returns a generator seeded from the current time in milliseconds.
func New() *Generator { return NewSeeded(time.Now().UnixMilli()) }

// NewSeeded returns a generator seeded with seed.
func NewSeeded(seed int64) *Generator { return &Generator{seed: seed} }

// Reset overwrites the generator seed.
func (g *Generator) Reset(seed int64) { g.seed = seed }

// Seed returns the current state of the generator.
func (g *Generator) Seed() int64 { return g.seed }

// advance moves the seed one step and returns it, always in [0, modulus).
func (g *Generator) advance() int64 {
	// reducing first keeps the product far from int64 overflow for time based
	// seeds, (s mod m)*a+c and s*a+c are congruent modulo m.
	s := g.seed % modulus
	if s < 0 {
		s += modulus
	}
	g.seed = (s*multiplier + increment) % modulus
	return g.seed
}

// Next advances the generator and returns a value in [min, max).
//
// Bounds are not validated: Next(0, 0) always returns 0 and min > max
// returns a value in (max, min]. The seed advances by exactly one step
// whatever the bounds.
func (g *Generator) Next(min, max float64) float64 {
	s := g.advance()
	return min + (float64(s)/modulus)*(max-min)
}

// Float returns a value in [0, 1).
func (g *Generator) Float() float64 { return g.Next(0, 1) }

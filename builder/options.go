// SPDX-License-Identifier: MIT
// Package: pairviz/builder
//
// options.go: functional options for BuildPoints.
//
// Contract:
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//   • Determinism is explicit: randomness only via WithSeed or WithRand.

package builder

import (
	"math/rand"

	"github.com/jbeda/geom"
)

// BuilderOption customizes a Config before construction begins.
type BuilderOption func(*Config)

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *Config) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *Config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithBounds sets the rectangle points are generated in.
// The rectangle is validated by BuildPoints, not here, so configuration
// loaded at runtime surfaces as ErrInvalidBounds rather than a panic.
func WithBounds(r geom.Rect) BuilderOption {
	return func(c *Config) {
		c.bounds = r
	}
}

// WithFirstID sets the ID of the first generated point. Panics if id < 0.
func WithFirstID(id int) BuilderOption {
	if id < 0 {
		panic("builder: WithFirstID(id<0)")
	}
	return func(c *Config) {
		c.firstID = id
	}
}

// WithIntegerCoords rounds every generated coordinate to the nearest integer.
// Useful for fixtures with many exact ties and duplicates.
func WithIntegerCoords() BuilderOption {
	return func(c *Config) {
		c.round = true
	}
}

// SPDX-License-Identifier: MIT
// Package: pairviz/builder
//
// config.go: builder configuration and deterministic defaults.
//
// Deterministic defaults:
//   • rng     = nil                        (stochastic constructors refuse to run)
//   • bounds  = [0,600]×[0,400]
//   • firstID = FirstPointID
//   • round   = false                      (keep fractional coordinates)

package builder

import (
	"math"
	"math/rand"

	"github.com/jbeda/geom"
)

// Config aggregates all knobs used by constructors. It is resolved by
// BuildPoints and passed by VALUE to each Constructor.
type Config struct {
	rng     *rand.Rand
	bounds  geom.Rect
	firstID int
	round   bool
}

// DefaultBounds returns the default generation rectangle.
func DefaultBounds() geom.Rect {
	return geom.Rect{Max: geom.Coord{X: DefaultBoundsWidth, Y: DefaultBoundsHeight}}
}

// newBuilderConfig applies opts over the defaults in order (last wins).
func newBuilderConfig(opts ...BuilderOption) Config {
	cfg := Config{
		bounds:  DefaultBounds(),
		firstID: FirstPointID,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// validBounds reports whether r spans a positive, finite area.
func validBounds(r geom.Rect) bool {
	w, h := r.Width(), r.Height()
	return w > 0 && h > 0 && !math.IsInf(w, 0) && !math.IsInf(h, 0)
}

// coord applies the rounding policy.
func (c Config) coord(x, y float64) (float64, float64) {
	if c.round {
		return math.Round(x), math.Round(y)
	}
	return x, y
}

// Rand returns the configured RNG, or nil.
func (c Config) Rand() *rand.Rand {
	return c.rng
}

// Bounds returns the generation rectangle.
func (c Config) Bounds() geom.Rect {
	return c.bounds
}

// SPDX-License-Identifier: MIT
// Package: pairviz/builder
//
// api.go - public entry points.
//
// Design contract:
//   - One orchestrator: BuildPoints(opts, cons...). Resolves cfg, runs cons
//     in order against a shared PointSet.
//   - Constructors are implemented in impl_*.go.
//   - Determinism: same inputs, options, seed and order ⇒ identical sets.

package builder

import (
	"fmt"

	"github.com/jbeda/geom"

	"github.com/katalvlaran/pairviz/geometry"
)

// Constructor appends points to ps using the resolved configuration.
// Constructors validate parameters before adding anything.
type Constructor func(ps *PointSet, cfg Config) error

// PointSet accumulates points and hands out sequential IDs.
type PointSet struct {
	points []geometry.Point
	nextID int
}

// Add appends (x, y) with the next ID and returns the new point.
func (ps *PointSet) Add(x, y float64) geometry.Point {
	p := geometry.Point{X: x, Y: y, ID: ps.nextID}
	ps.nextID++
	ps.points = append(ps.points, p)
	return p
}

// Len returns the number of points added so far.
func (ps *PointSet) Len() int {
	return len(ps.points)
}

// Points returns a copy of the accumulated points.
func (ps *PointSet) Points() []geometry.Point {
	out := make([]geometry.Point, len(ps.points))
	copy(out, ps.points)
	return out
}

// BuildPoints resolves opts and applies every constructor in order.
// Any constructor error is wrapped with "BuildPoints: %w" and returned
// immediately; no partial set is returned.
//
// Complexity:
//   - Resolving options: O(len(opts)).
//   - Applying K constructors: Σ cost of each, O(total points) overall.
//
// Concurrency:
//   - Safe to call concurrently; each call owns its Config and RNG unless
//     the same *rand.Rand is shared through WithRand.
//
// Errors:
//   - ErrInvalidBounds if the resolved bounds have no area.
//   - ErrConstructFailed for a nil constructor.
//   - Constructor sentinels (ErrTooFewPoints, ErrNeedRandSource,
//     ErrInvalidRadius) wrapped via %w.
func BuildPoints(opts []BuilderOption, cons ...Constructor) ([]geometry.Point, error) {
	// Resolve options over deterministic defaults (last wins).
	cfg := newBuilderConfig(opts...)
	if !validBounds(cfg.bounds) {
		return nil, fmt.Errorf("BuildPoints: bounds %v: %w", cfg.bounds, ErrInvalidBounds)
	}

	// One PointSet for all constructors keeps IDs sequential across them.
	ps := &PointSet{nextID: cfg.firstID}
	for i, fn := range cons {
		// A nil constructor is a programmer error; report it instead of panicking.
		if fn == nil {
			return nil, fmt.Errorf("BuildPoints: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(ps, cfg); err != nil {
			return nil, fmt.Errorf("BuildPoints: %w", err)
		}
	}

	return ps.points, nil
}

// RandomPoints is shorthand for n uniform points from seed inside bounds.
func RandomPoints(n int, seed int64, bounds geom.Rect) ([]geometry.Point, error) {
	return BuildPoints([]BuilderOption{WithSeed(seed), WithBounds(bounds)}, Uniform(n))
}

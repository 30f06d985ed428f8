// SPDX-License-Identifier: MIT
// Package: pairviz/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Constructors attach context with %w ("Uniform: n=1 (must be ≥ 2): ...").
//   • Option constructors (WithX) panic on meaningless input instead.

package builder

import "errors"

// ErrTooFewPoints indicates a size parameter below the constructor's minimum.
var ErrTooFewPoints = errors.New("builder: parameter too small")

// ErrNeedRandSource indicates a stochastic constructor was used without
// WithSeed or WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrInvalidBounds indicates a bounds rectangle with no area.
var ErrInvalidBounds = errors.New("builder: bounds have no area")

// ErrInvalidRadius indicates a non-positive cluster radius.
var ErrInvalidRadius = errors.New("builder: radius must be positive")

// ErrConstructFailed indicates a construction that cannot proceed, such as a
// nil constructor passed to BuildPoints.
var ErrConstructFailed = errors.New("builder: construction failed")

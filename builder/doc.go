// SPDX-License-Identifier: MIT
// Package: pairviz/builder
//
// Package builder produces deterministic point sets for the closest-pair
// solver, its visualizer and its tests.
//
// One orchestrator, many constructors:
//
//	pts, err := builder.BuildPoints(
//	    []builder.BuilderOption{builder.WithSeed(42), builder.WithBounds(rect)},
//	    builder.Uniform(20),
//	    builder.Cluster(2, 5, 8),
//	)
//
// Components:
//
//   - Configuration primitives:
//     – BuilderOption: a function that mutates Config before use.
//     – Config: RNG, bounds (a jbeda/geom Rect), first ID, rounding.
//   - Constructors (each returns a Constructor closure):
//     – Uniform(n):              n points uniform inside the bounds (needs RNG).
//     – Spread(n):               x evenly spaced, y scattered by a hash of the index.
//     – Grid(rows, cols):        row-major lattice filling the bounds.
//     – GridN(n):                exactly n cells of the smallest near-square lattice.
//     – Circle(n):               n points on the inscribed circle.
//     – Line(n):                 n points on the horizontal mid-line.
//     – Cluster(k, per, radius): k random centers with per points each (needs RNG).
//     – ClusterN(n, k, radius):  exactly n points over k clusters (needs RNG).
//     – Fixed(coords...):        exactly the given coordinates.
//
// Guarantees:
//
//   - IDs are sequential across all constructors of one BuildPoints call,
//     starting at the configured first ID (default 1).
//   - Determinism: equal options, seed and constructor order yield equal sets.
//   - Fast-fail on invalid option parameters via panics in option constructors;
//     constructors themselves return sentinel errors and never panic.
//   - Every generated point lies inside the bounds (Fixed excepted).
package builder

// Package geometry provides the 2-D primitives shared by the closest-pair
// solver, its step trace and every renderer: points, pair results and the
// Euclidean distance between two points.
//
// Points are immutable values. A Point is identified by its ID, which the
// caller assigns once at creation time and never reuses; coordinates alone do
// not identify a point (two distinct points may share coordinates).
//
// Key features:
//   - Distance(p, q): Euclidean distance via gonum spatial/r2
//   - PairResult: a pair of points together with their distance
//   - SortByX / SortByY: stable, copy-returning sorts
//   - BruteForce: O(n²) reference search with first-seen-wins tie-breaking
//
// Complexity:
//
//   - Distance:   O(1)
//   - Sorts:      O(n log n) time, O(n) space (the input is never mutated)
//   - BruteForce: O(n²) time, O(1) extra space
//
// Errors:
//
//   - ErrInsufficientPoints if fewer than two points are supplied to BruteForce.
package geometry

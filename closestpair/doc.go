// Package closestpair finds the minimum-distance pair among a set of 2-D points
// with the classic divide-and-conquer algorithm, optionally emitting every
// decision it makes as a trace.Step.
//
// 🚀 What does it do?
//
//	Given n ≥ 2 points sorted by x, the solver splits the set at its median,
//	solves both halves recursively, merges the two minima and then refines the
//	merged minimum inside the vertical strip around the divide line.
//
// ✨ Key features:
//   - Silent mode (sink == nil): result only, no allocations for steps
//   - Traced mode: one Step per decision, in exact recursion order
//   - Both modes run the same code path, so they return identical results
//   - Deterministic tie-breaking: the first-seen pair wins, the left half wins
//     on equal subresults
//
// ⚙️ Usage:
//
//	sorted := geometry.SortByX(points)
//	rec := trace.NewRecorder(0)
//	pair, err := closestpair.Solve(sorted, rec)
//	tr := rec.Freeze()
//
//	// or, in one call (sorts a copy for you):
//	tr, pair, err := closestpair.Visualize(points)
//
// Algorithm outline:
//  1. n ≤ 3: brute-force all C(n,2) pairs in (i,j) order, i<j.
//  2. Otherwise split at mid = n/2, midX = points[mid].x; recurse left, then right.
//  3. Combine: mergedMin = min(leftMin, rightMin), ties keep the left pair.
//  4. Strip: points with |x - midX| < mergedMin, stably sorted by y.
//  5. For each strip index i check j = i+1 .. i+7, stopping once dy ≥ mergedMin.
//  6. Report the refined pair upward; at the top level emit a Summary.
//
// Complexity:
//
//   - Time:   O(n log² n) (strip sort per level); trace length is O(n log n)
//   - Memory: O(n) for the working copy plus the trace, when tracing
//
// Errors:
//
//   - ErrInsufficientPoints if fewer than two points are supplied.
package closestpair

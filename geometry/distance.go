package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Distance returns the Euclidean distance between p and q.
// It is pure and total; equal points yield 0.
func Distance(p, q Point) float64 {
	return r2.Norm(r2.Sub(p.Vec(), q.Vec()))
}

// BruteForce checks every unordered pair (i, j), i < j, in lexicographic order
// and returns the closest one. On ties the earlier-found pair is kept.
//
// Complexity: O(n²) time, O(1) extra space.
func BruteForce(points []Point) (PairResult, error) {
	if len(points) < 2 {
		return PairResult{}, ErrInsufficientPoints
	}

	best := PairResult{Distance: math.Inf(1)}
	var i, j int
	var d float64
	for i = 0; i < len(points); i++ {
		for j = i + 1; j < len(points); j++ {
			d = Distance(points[i], points[j])
			// strict improvement only: first-seen wins
			if d < best.Distance {
				best = PairResult{A: points[i], B: points[j], Distance: d, valid: true}
			}
		}
	}

	return best, nil
}

package geometry

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrInsufficientPoints indicates that a pair search was requested on fewer
// than two points.
var ErrInsufficientPoints = errors.New("geometry: at least two points are required")

// Point is an immutable 2-D point with a caller-assigned identity.
type Point struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	ID int     `json:"id"`
}

// Vec returns the coordinates of p as a gonum r2 vector.
func (p Point) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// String renders p the way step messages show it: "P3(12.0, 40.5)".
func (p Point) String() string {
	return fmt.Sprintf("P%d(%.1f, %.1f)", p.ID, p.X, p.Y)
}

// PairResult is a pair of points and the Euclidean distance between them.
// The zero value means "no pair" (fewer than two points were available).
//
// Invariant: for any PairResult built through NewPairResult,
// Distance == geometry.Distance(A, B).
type PairResult struct {
	A        Point   `json:"a"`
	B        Point   `json:"b"`
	Distance float64 `json:"distance"`
	valid    bool
}

// NewPairResult builds a valid PairResult for a and b.
func NewPairResult(a, b Point) PairResult {
	return PairResult{A: a, B: b, Distance: Distance(a, b), valid: true}
}

// Valid reports whether r holds an actual pair.
func (r PairResult) Valid() bool {
	return r.valid
}

// IDs returns the identities of both points in pair order.
func (r PairResult) IDs() (int, int) {
	return r.A.ID, r.B.ID
}

// Same reports whether r and other hold the same two points (by ID),
// regardless of order.
func (r PairResult) Same(other PairResult) bool {
	if r.valid != other.valid {
		return false
	}
	return (r.A.ID == other.A.ID && r.B.ID == other.B.ID) ||
		(r.A.ID == other.B.ID && r.B.ID == other.A.ID)
}

// String renders r for logs and step messages.
func (r PairResult) String() string {
	if !r.valid {
		return "none"
	}
	return fmt.Sprintf("%s ↔ %s = %.2f", r.A, r.B, r.Distance)
}

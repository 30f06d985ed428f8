package geometry

import "sort"

// SortByX returns a copy of points stably sorted by x ascending.
// Points with equal x keep their input order.
func SortByX(points []Point) []Point {
	out := make([]Point, len(points))
	copy(out, points)
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })

	return out
}

// SortByY returns a copy of points stably sorted by y ascending.
func SortByY(points []Point) []Point {
	out := make([]Point, len(points))
	copy(out, points)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Y < out[j].Y })

	return out
}

// IsSortedByX reports whether points are in non-decreasing x order.
func IsSortedByX(points []Point) bool {
	return sort.SliceIsSorted(points, func(i, j int) bool { return points[i].X < points[j].X })
}

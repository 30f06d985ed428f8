package closestpair_test

import (
	"fmt"

	"github.com/katalvlaran/pairviz/closestpair"
	"github.com/katalvlaran/pairviz/geometry"
	"github.com/katalvlaran/pairviz/trace"
)

// ExampleSolve runs a silent solve on points already sorted by x.
func ExampleSolve() {
	points := geometry.SortByX([]geometry.Point{
		{X: 0, Y: 0, ID: 1},
		{X: 10, Y: 10, ID: 2},
		{X: 4, Y: 7, ID: 3},
		{X: 5, Y: 6, ID: 4},
	})

	pair, err := closestpair.Solve(points, nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("P%d-P%d %.3f\n", pair.A.ID, pair.B.ID, pair.Distance)

	// Output:
	// P4-P3 1.414
}

// ExampleVisualize prints the kind of every step of a small traced solve.
func ExampleVisualize() {
	points := []geometry.Point{
		{X: 0, Y: 0, ID: 1},
		{X: 1, Y: 0, ID: 2},
		{X: 2, Y: 0, ID: 3},
	}

	tr, pair, err := closestpair.Visualize(points)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, s := range tr.Steps() {
		fmt.Println(s.Kind())
	}
	fmt.Println(pair.Distance, tr.Count(trace.KindDivide))

	// Output:
	// start
	// base_case
	// compare
	// compare
	// compare
	// result
	// summary
	// 1 0
}

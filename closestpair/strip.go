package closestpair

import (
	"math"
	"sort"

	"github.com/katalvlaran/pairviz/geometry"
)

// stripOf collects the points of the full subproblem whose horizontal
// distance to midX is strictly below width, stably sorted by y.
func stripOf(pts []geometry.Point, midX, width float64) []geometry.Point {
	strip := make([]geometry.Point, 0, len(pts))
	for _, p := range pts {
		if math.Abs(p.X-midX) < width {
			strip = append(strip, p)
		}
	}
	sort.SliceStable(strip, func(i, j int) bool { return strip[i].Y < strip[j].Y })

	return strip
}

// estimateSteps is a capacity hint for a traced solve of n points.
func estimateSteps(n int) int {
	if n < 2 {
		return 0
	}
	return 8 * n
}

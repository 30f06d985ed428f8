package trace

import (
	"fmt"
	"math"
)

// Describe renders the one-line status message shown for s while it is the
// current step of a visualization.
func Describe(s Step) string {
	switch v := s.(type) {
	case Start:
		return fmt.Sprintf("Starting algorithm: %d points", len(v.Points))
	case Divide:
		return fmt.Sprintf("Divide (depth %d) at x = %.1f: left %d, right %d",
			v.Depth, v.MidX, len(v.Left), len(v.Right))
	case BaseCase:
		return fmt.Sprintf("Base case (%s): %d points, using brute force", v.Side, len(v.Points))
	case Compare:
		if v.InStrip {
			return fmt.Sprintf("Strip comparison %s ↔ %s: distance = %.2f", v.P, v.Q, v.Distance)
		}
		return fmt.Sprintf("Comparing %s ↔ %s: distance = %.2f", v.P, v.Q, v.Distance)
	case Result:
		return fmt.Sprintf("Result (%s): distance = %.2f after %d comparisons",
			v.Side, v.Pair.Distance, v.Comparisons)
	case Combine:
		return fmt.Sprintf("Combine (depth %d): left %s, right %s, current min %s",
			v.Depth, fmtDist(v.LeftMin), fmtDist(v.RightMin), fmtDist(v.MergedMin))
	case Strip:
		return fmt.Sprintf("Checking strip at x = %.1f: %d points", v.MidX, len(v.Points))
	case Final:
		return fmt.Sprintf("Depth %d result: distance = %.2f", v.Depth, v.Distance)
	case Summary:
		return fmt.Sprintf("Algorithm complete: distance %.2f, %d steps, %.1fms",
			v.Distance, v.StepCount, v.ElapsedMs())
	case nil:
		return "Ready"
	}
	return s.Kind().String()
}

func fmtDist(d float64) string {
	if math.IsInf(d, 1) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", d)
}

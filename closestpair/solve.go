package closestpair

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/pairviz/geometry"
	"github.com/katalvlaran/pairviz/trace"
)

// solver carries the per-solve state threaded through the recursion.
// A nil sink selects silent mode.
type solver struct {
	sink  trace.Sink
	count int     // steps emitted so far
	best  float64 // running minimum across the whole solve
}

// Solve returns the closest pair among points, which the caller must have
// stably sorted by x (see geometry.SortByX). If sink is non-nil every step is
// emitted to it, framed by Start and Summary; a nil sink runs silently.
//
// The result does not depend on sink: silent and traced solves of the same
// input return identical PairResults.
//
// Complexity:
//   - Time: O(n log² n). Each level sorts its strip by y.
//   - Space: O(n) for the working copy plus O(log n) recursion depth.
//   - Traced: O(n log n) steps, each referencing the working copy.
//
// Concurrency:
//   - Solve shares no state between calls; concurrent solves are safe as long
//     as each gets its own sink.
//
// Errors:
//   - ErrInsufficientPoints if len(points) < 2. Nothing is emitted.
func Solve(points []geometry.Point, sink trace.Sink, opts ...Option) (geometry.PairResult, error) {
	if len(points) < 2 {
		return geometry.PairResult{}, fmt.Errorf("closestpair: Solve with %d points: %w", len(points), ErrInsufficientPoints)
	}

	// Resolve options (clock, logger) in order.
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	// Steps share this copy, never the caller's slice.
	pts := make([]geometry.Point, len(points))
	copy(pts, points)

	s := &solver{sink: sink, best: math.Inf(1)}

	// The clock is read only when someone is watching.
	var started time.Time
	if s.tracing() {
		started = o.Clock()
		s.emit(trace.Start{Points: pts})
	}

	// Recurse from the root frame; every Divide..Final block nests inside.
	res := s.solve(pts, 0, trace.Root)

	if s.tracing() {
		s.emit(trace.Summary{
			Pair:      res,
			Distance:  res.Distance,
			Elapsed:   o.Clock().Sub(started),
			StepCount: s.count + 1,
			Best:      s.observe(res.Distance),
		})
	}

	o.Logger.Debug("closestpair: solved",
		zap.Int("points", len(pts)),
		zap.Bool("traced", s.tracing()),
		zap.Int("steps", s.count),
		zap.Int("a", res.A.ID),
		zap.Int("b", res.B.ID),
		zap.Float64("distance", res.Distance),
	)

	return res, nil
}

// Visualize sorts a copy of points by x, runs a traced solve and returns the
// frozen trace together with the result.
//
// Complexity: O(n log² n) time, O(n log n) space for the recorded steps.
//
// Errors:
//   - ErrInsufficientPoints (wrapped) for fewer than two points; the trace is nil.
func Visualize(points []geometry.Point, opts ...Option) (*trace.Trace, geometry.PairResult, error) {
	// The caller's slice is left in its original order.
	sorted := geometry.SortByX(points)
	rec := trace.NewRecorder(estimateSteps(len(sorted)))

	res, err := Solve(sorted, rec, opts...)
	if err != nil {
		return nil, geometry.PairResult{}, err
	}

	// Freeze hands the recorded steps to an immutable Trace.
	return rec.Freeze(), res, nil
}

// Instant sorts a copy of points by x and runs a silent solve, reporting how
// long the solve itself took. The sort is not timed.
//
// Complexity: O(n log² n) time, O(n) space.
//
// Errors:
//   - ErrInsufficientPoints (wrapped) for fewer than two points.
func Instant(points []geometry.Point, opts ...Option) (geometry.PairResult, time.Duration, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	sorted := geometry.SortByX(points)
	started := o.Clock()
	res, err := Solve(sorted, nil, opts...)
	if err != nil {
		return geometry.PairResult{}, 0, err
	}

	return res, o.Clock().Sub(started), nil
}

// solve is the recursive step for points[...] at the given depth and side.
func (s *solver) solve(pts []geometry.Point, depth int, side trace.Side) geometry.PairResult {
	frame := trace.Frame{Depth: depth, Side: side}
	if len(pts) <= baseCaseSize {
		return s.bruteForce(pts, frame)
	}

	mid := len(pts) / 2
	midX := pts[mid].X
	left, right := pts[:mid:mid], pts[mid:]

	if s.tracing() {
		s.emit(trace.Divide{Frame: frame, MidX: midX, Left: left, Right: right})
	}

	// left completes fully before right begins
	l := s.solve(left, depth+1, trace.Left)
	r := s.solve(right, depth+1, trace.Right)

	best := l
	if r.Distance < l.Distance {
		best = r
	}
	mergedMin := best.Distance

	if s.tracing() {
		s.emit(trace.Combine{
			Frame:     frame,
			LeftMin:   l.Distance,
			RightMin:  r.Distance,
			MergedMin: mergedMin,
			Pair:      best,
			Best:      s.observe(mergedMin),
		})
	}

	strip := stripOf(pts, midX, mergedMin)
	if s.tracing() {
		s.emit(trace.Strip{Frame: frame, MidX: midX, Width: 2 * mergedMin, Points: strip})
	}

	best = s.scanStrip(strip, mergedMin, best, frame)

	if s.tracing() {
		s.emit(trace.Final{Frame: frame, Pair: best, Distance: best.Distance, Best: s.observe(best.Distance)})
	}

	return best
}

// bruteForce checks all pairs of a base case in (i,j) order, keeping the
// first-seen pair on ties.
func (s *solver) bruteForce(pts []geometry.Point, frame trace.Frame) geometry.PairResult {
	if s.tracing() {
		s.emit(trace.BaseCase{Frame: frame, Points: pts})
	}

	var (
		best        geometry.PairResult
		bestD       = math.Inf(1)
		comparisons int
		i, j        int
		d           float64
	)
	for i = 0; i < len(pts); i++ {
		for j = i + 1; j < len(pts); j++ {
			d = geometry.Distance(pts[i], pts[j])
			comparisons++
			if s.tracing() {
				s.emit(trace.Compare{Frame: frame, P: pts[i], Q: pts[j], Distance: d})
			}
			if d < bestD {
				bestD = d
				best = geometry.NewPairResult(pts[i], pts[j])
			}
		}
	}

	if s.tracing() {
		s.emit(trace.Result{Frame: frame, Pair: best, Comparisons: comparisons, Best: s.observe(best.Distance)})
	}

	return best
}

// scanStrip refines best against the y-sorted strip. For each i at most
// stripWindow successors are examined; the scan for i stops as soon as the
// vertical gap reaches mergedMin.
func (s *solver) scanStrip(strip []geometry.Point, mergedMin float64, best geometry.PairResult, frame trace.Frame) geometry.PairResult {
	var (
		i, j int
		d    float64
	)
	for i = 0; i < len(strip); i++ {
		for j = i + 1; j < len(strip) && j <= i+stripWindow; j++ {
			if strip[j].Y-strip[i].Y >= mergedMin {
				break
			}
			d = geometry.Distance(strip[i], strip[j])
			if s.tracing() {
				s.emit(trace.Compare{Frame: frame, P: strip[i], Q: strip[j], Distance: d, InStrip: true})
			}
			if d < best.Distance {
				best = geometry.NewPairResult(strip[i], strip[j])
			}
		}
	}

	return best
}

func (s *solver) tracing() bool {
	return s.sink != nil
}

func (s *solver) emit(step trace.Step) {
	s.sink.Emit(step)
	s.count++
}

// observe folds d into the running minimum and returns it.
func (s *solver) observe(d float64) float64 {
	if d < s.best {
		s.best = d
	}
	return s.best
}

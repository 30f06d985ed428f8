package render

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pairviz/geometry"
	"github.com/katalvlaran/pairviz/trace"
)

// Divider is a vertical split line.
type Divider struct {
	X     float64 `json:"x"`
	Depth int     `json:"depth"`
}

// Band is the strip of candidates around a divider, [MidX-Half, MidX+Half].
type Band struct {
	MidX  float64 `json:"mid_x"`
	Half  float64 `json:"half"`
	Depth int     `json:"depth"`
}

// Segment joins two points.
type Segment struct {
	A        geometry.Point `json:"a"`
	B        geometry.Point `json:"b"`
	Distance float64        `json:"distance"`
	InStrip  bool           `json:"in_strip,omitempty"`
}

// SceneState is a detached copy of everything a Scene shows.
type SceneState struct {
	Points   []geometry.Point `json:"points"`
	Dividers []Divider        `json:"dividers"`
	Focus    []geometry.Point `json:"focus"`
	Band     *Band            `json:"band,omitempty"`
	Active   *Segment         `json:"active,omitempty"`
	Lines    []Segment        `json:"lines"`
	Final    *Segment         `json:"final,omitempty"`
	Best     float64          `json:"-"`
	Message  string           `json:"message"`
	Applied  int              `json:"applied"`
}

// Stats renders the side-panel summary of s.
func (s SceneState) Stats() string {
	best := "N/A"
	if !math.IsInf(s.Best, 1) {
		best = fmt.Sprintf("%.2f", s.Best)
	}
	return fmt.Sprintf("Points: %d\nSteps: %d\nClosest distance: %s", len(s.Points), s.Applied, best)
}

// Scene is a retained-mode model of the visualization.
// It is not safe for concurrent use.
type Scene struct {
	st SceneState
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	s := &Scene{}
	s.Clear()
	return s
}

// Clear empties the scene.
func (s *Scene) Clear() {
	s.st = SceneState{Best: math.Inf(1), Message: trace.Describe(nil)}
}

// Apply folds one step into the scene.
func (s *Scene) Apply(step trace.Step) {
	if step == nil {
		return
	}
	s.st.Active = nil

	switch v := step.(type) {
	case trace.Start:
		s.Clear()
		s.st.Points = append([]geometry.Point(nil), v.Points...)
	case trace.Divide:
		s.st.Dividers = append(s.st.Dividers, Divider{X: v.MidX, Depth: v.Depth})
	case trace.BaseCase:
		s.st.Focus = append([]geometry.Point(nil), v.Points...)
	case trace.Compare:
		s.st.Active = &Segment{A: v.P, B: v.Q, Distance: v.Distance, InStrip: v.InStrip}
	case trace.Result:
		s.st.Focus = nil
		s.addLine(v.Pair)
	case trace.Strip:
		s.st.Band = &Band{MidX: v.MidX, Half: v.Width / 2, Depth: v.Depth}
	case trace.Final:
		s.st.Band = nil
		s.addLine(v.Pair)
	case trace.Summary:
		if v.Pair.Valid() {
			s.st.Final = &Segment{A: v.Pair.A, B: v.Pair.B, Distance: v.Pair.Distance}
		}
	}

	if best, ok := trace.RunningMin(step); ok {
		s.st.Best = best
	}
	s.st.Message = trace.Describe(step)
	s.st.Applied++
}

// Replay clears the scene and applies steps in order.
func (s *Scene) Replay(steps []trace.Step) {
	s.Clear()
	for _, step := range steps {
		s.Apply(step)
	}
}

// State returns a deep copy of the scene.
func (s *Scene) State() SceneState {
	out := s.st
	out.Points = append([]geometry.Point(nil), s.st.Points...)
	out.Dividers = append([]Divider(nil), s.st.Dividers...)
	out.Focus = append([]geometry.Point(nil), s.st.Focus...)
	out.Lines = append([]Segment(nil), s.st.Lines...)
	if s.st.Band != nil {
		b := *s.st.Band
		out.Band = &b
	}
	if s.st.Active != nil {
		a := *s.st.Active
		out.Active = &a
	}
	if s.st.Final != nil {
		f := *s.st.Final
		out.Final = &f
	}

	return out
}

func (s *Scene) addLine(p geometry.PairResult) {
	if !p.Valid() {
		return
	}
	s.st.Lines = append(s.st.Lines, Segment{A: p.A, B: p.B, Distance: p.Distance})
}

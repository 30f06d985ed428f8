package trace

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/katalvlaran/pairviz/geometry"
)

// Kind tags a Step variant.
type Kind int

const (
	KindStart Kind = iota
	KindDivide
	KindBaseCase
	KindCompare
	KindResult
	KindCombine
	KindStrip
	KindFinal
	KindSummary
)

var kindNames = [...]string{
	KindStart:    "start",
	KindDivide:   "divide",
	KindBaseCase: "base_case",
	KindCompare:  "compare",
	KindResult:   "result",
	KindCombine:  "combine",
	KindStrip:    "strip",
	KindFinal:    "final",
	KindSummary:  "summary",
}

// String returns the wire name of k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText encodes k by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Side names which half of its parent a recursive call works on.
type Side string

const (
	Root  Side = ""
	Left  Side = "L"
	Right Side = "R"
)

// String returns "root" for the top-level call and "L"/"R" otherwise.
func (s Side) String() string {
	if s == Root {
		return "root"
	}
	return string(s)
}

// Step is one observable event of a traced solve.
type Step interface {
	Kind() Kind
}

// Frame locates a step in the recursion tree.
type Frame struct {
	Depth int  `json:"depth"`
	Side  Side `json:"side"`
}

// Position returns the frame itself; it lets callers reach the frame of any
// recursive step through the Framed interface.
func (f Frame) Position() Frame { return f }

// Framed is implemented by every step emitted from inside the recursion.
type Framed interface {
	Step
	Position() Frame
}

// Start opens a trace with the x-sorted point list.
type Start struct {
	Points []geometry.Point `json:"points"`
}

// Divide records the split of a subproblem at MidX.
type Divide struct {
	Frame
	MidX  float64          `json:"mid_x"`
	Left  []geometry.Point `json:"left_points"`
	Right []geometry.Point `json:"right_points"`
}

// BaseCase records a subproblem small enough for brute force.
type BaseCase struct {
	Frame
	Points []geometry.Point `json:"points"`
}

// Compare records one pairwise distance check.
type Compare struct {
	Frame
	P        geometry.Point `json:"p"`
	Q        geometry.Point `json:"q"`
	Distance float64        `json:"distance"`
	InStrip  bool           `json:"in_strip"`
}

// Result records the outcome of a brute-force subproblem.
type Result struct {
	Frame
	Pair        geometry.PairResult `json:"pair"`
	Comparisons int                 `json:"comparisons"`
	Best        float64             `json:"best"`
}

// Combine records the merge of the left and right subresults.
// Ties between LeftMin and RightMin keep the left pair.
type Combine struct {
	Frame
	LeftMin   float64             `json:"left_min"`
	RightMin  float64             `json:"right_min"`
	MergedMin float64             `json:"merged_min"`
	Pair      geometry.PairResult `json:"pair"`
	Best      float64             `json:"best"`
}

// Strip records the candidate band |x - MidX| < mergedMin, sorted by y.
// Width is the full band width (2·mergedMin).
type Strip struct {
	Frame
	MidX   float64          `json:"mid_x"`
	Width  float64          `json:"width"`
	Points []geometry.Point `json:"strip_points"`
}

// Final records the refined result of one recursive call.
type Final struct {
	Frame
	Pair     geometry.PairResult `json:"pair"`
	Distance float64             `json:"distance"`
	Best     float64             `json:"best"`
}

// Summary closes a trace. StepCount includes the Summary itself.
type Summary struct {
	Pair      geometry.PairResult `json:"pair"`
	Distance  float64             `json:"distance"`
	Elapsed   time.Duration       `json:"elapsed_ns"`
	StepCount int                 `json:"step_count"`
	Best      float64             `json:"best"`
}

// ElapsedMs returns the solve time in milliseconds.
func (s Summary) ElapsedMs() float64 {
	return float64(s.Elapsed) / float64(time.Millisecond)
}

func (Start) Kind() Kind    { return KindStart }
func (Divide) Kind() Kind   { return KindDivide }
func (BaseCase) Kind() Kind { return KindBaseCase }
func (Compare) Kind() Kind  { return KindCompare }
func (Result) Kind() Kind   { return KindResult }
func (Combine) Kind() Kind  { return KindCombine }
func (Strip) Kind() Kind    { return KindStrip }
func (Final) Kind() Kind    { return KindFinal }
func (Summary) Kind() Kind  { return KindSummary }

// RunningMin returns the running minimum carried by s, if s carries one.
func RunningMin(s Step) (float64, bool) {
	switch v := s.(type) {
	case Result:
		return v.Best, true
	case Combine:
		return v.Best, true
	case Final:
		return v.Best, true
	case Summary:
		return v.Best, true
	}
	return 0, false
}

// PairOf returns the pair a step reports as its current best, if any.
func PairOf(s Step) (geometry.PairResult, bool) {
	switch v := s.(type) {
	case Result:
		return v.Pair, true
	case Combine:
		return v.Pair, true
	case Final:
		return v.Pair, true
	case Summary:
		return v.Pair, true
	}
	return geometry.PairResult{}, false
}

// Envelope is the wire form of a step: its kind name and its payload.
type Envelope struct {
	Kind Kind `json:"kind"`
	Data Step `json:"data"`
}

// Encode marshals s inside an Envelope.
func Encode(s Step) ([]byte, error) {
	if s == nil {
		return nil, ErrNilStep
	}
	return json.Marshal(Envelope{Kind: s.Kind(), Data: s})
}

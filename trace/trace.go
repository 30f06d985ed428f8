package trace

import (
	"fmt"

	"github.com/katalvlaran/pairviz/geometry"
)

// Trace is an ordered, read-only sequence of steps.
// A nil *Trace behaves as an empty trace.
type Trace struct {
	steps []Step
}

// New builds a Trace from a copy of steps.
func New(steps ...Step) *Trace {
	cp := make([]Step, len(steps))
	copy(cp, steps)
	return &Trace{steps: cp}
}

// Len returns the number of steps.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.steps)
}

// At returns the i-th step.
func (t *Trace) At(i int) (Step, error) {
	if i < 0 || i >= t.Len() {
		return nil, fmt.Errorf("trace: At(%d) with Len()=%d: %w", i, t.Len(), ErrIndexOutOfRange)
	}
	return t.steps[i], nil
}

// Steps returns a copy of all steps.
func (t *Trace) Steps() []Step {
	out := make([]Step, t.Len())
	if t != nil {
		copy(out, t.steps)
	}
	return out
}

// Prefix returns steps [0, k) without copying. The slice is capacity-limited,
// so appending to it never writes into the trace; its elements are read-only.
func (t *Trace) Prefix(k int) []Step {
	if k < 0 {
		k = 0
	}
	if k > t.Len() {
		k = t.Len()
	}
	if k == 0 {
		return nil
	}
	return t.steps[:k:k]
}

// Count returns how many steps of the given kind the trace holds.
func (t *Trace) Count(kind Kind) int {
	var n int
	for _, s := range t.Prefix(t.Len()) {
		if s.Kind() == kind {
			n++
		}
	}
	return n
}

// Summary returns the terminal Summary step, if the trace is complete.
func (t *Trace) Summary() (Summary, bool) {
	if t.Len() == 0 {
		return Summary{}, false
	}
	s, ok := t.steps[len(t.steps)-1].(Summary)
	return s, ok
}

// Result returns the final pair reported by the Summary step.
func (t *Trace) Result() (geometry.PairResult, bool) {
	s, ok := t.Summary()
	if !ok {
		return geometry.PairResult{}, false
	}
	return s.Pair, true
}

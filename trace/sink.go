package trace

// Sink receives steps in emission order. It has no filtering and no
// backpressure: Emit always accepts.
type Sink interface {
	Emit(step Step)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(Step)

// Emit calls f(step).
func (f SinkFunc) Emit(step Step) { f(step) }

// Recorder is the append-only Sink used to build a Trace.
// It is not safe for concurrent use; a solve runs on a single goroutine.
type Recorder struct {
	steps []Step
}

// NewRecorder returns an empty Recorder with room for capHint steps.
func NewRecorder(capHint int) *Recorder {
	if capHint < 0 {
		capHint = 0
	}
	return &Recorder{steps: make([]Step, 0, capHint)}
}

// Emit appends step. Nil steps are dropped.
func (r *Recorder) Emit(step Step) {
	if step == nil {
		return
	}
	r.steps = append(r.steps, step)
}

// Len reports how many steps have been recorded.
func (r *Recorder) Len() int {
	return len(r.steps)
}

// Freeze returns the recorded steps as an immutable Trace. Steps emitted
// after Freeze never show up in the returned Trace.
func (r *Recorder) Freeze() *Trace {
	n := len(r.steps)
	return &Trace{steps: r.steps[:n:n]}
}

package playback

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/pairviz/trace"
)

// Controller walks a trace, calling the Renderer once per visited step.
type Controller struct {
	renderer  Renderer
	scheduler Scheduler
	opts      Options
	speed     time.Duration

	trace  *trace.Trace
	cursor int // index of the next unvisited step
	mode   Mode

	gen     uint64 // generation of the pending tick
	pending Cancel
}

// NewController returns an Idle controller.
func NewController(r Renderer, s Scheduler, opts ...Option) (*Controller, error) {
	if r == nil || s == nil {
		return nil, ErrNilCollaborator
	}

	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &Controller{
		renderer:  r,
		scheduler: s,
		opts:      o,
		speed:     o.Speed,
		mode:      Idle,
	}, nil
}

// Load installs tr without playing it. Only valid while Idle.
//
// Errors:
//   - ErrAlreadyRunning, which also matches ErrInvalidTransition, outside Idle.
//   - ErrEmptyTrace for a nil or empty trace.
func (c *Controller) Load(tr *trace.Trace) error {
	if c.mode != Idle {
		return c.reject("Load", errNotIdle)
	}
	if tr.Len() == 0 {
		return fmt.Errorf("playback: Load: %w", ErrEmptyTrace)
	}

	c.trace = tr
	c.cursor = 0
	c.log("load")

	return nil
}

// Start plays tr from its first step; a nil tr plays the loaded trace.
// Step 0 is rendered before Start returns and the next tick is scheduled
// after the current speed.
//
// Complexity: O(1) plus one Renderer.Apply and one Scheduler.Schedule.
//
// Concurrency:
//   - Not safe for concurrent use. Start, the other transitions and the
//     scheduled ticks must all run on one goroutine (see Loop).
//
// Errors:
//   - ErrAlreadyRunning, which also matches ErrInvalidTransition, outside Idle.
//     Complete is not Idle: call Reset first.
//   - ErrNoTrace if tr is nil and nothing was loaded.
//   - ErrEmptyTrace if the trace has no steps.
//
// A rejected Start leaves mode, cursor and the pending tick untouched.
func (c *Controller) Start(tr *trace.Trace) error {
	if c.mode != Idle {
		return c.reject("Start", errNotIdle)
	}
	// Fall back to the trace installed by Load.
	if tr == nil {
		tr = c.trace
	}
	if tr == nil {
		return fmt.Errorf("playback: Start: %w", ErrNoTrace)
	}
	if tr.Len() == 0 {
		return fmt.Errorf("playback: Start: %w", ErrEmptyTrace)
	}

	// Render step 0 now; advance schedules the tick for step 1.
	c.trace = tr
	c.cursor = 0
	c.mode = Running
	c.log("start")
	c.advance()

	return nil
}

// Pause freezes the cursor and cancels the pending tick.
func (c *Controller) Pause() error {
	if c.mode != Running {
		return c.reject("Pause", ErrInvalidTransition)
	}

	c.stopTimer()
	c.mode = Paused
	c.log("pause")

	return nil
}

// Resume continues from the cursor. The current step is not re-rendered;
// the next tick renders trace[cursor]. Resuming with every step already
// visited completes playback immediately.
func (c *Controller) Resume() error {
	if c.mode != Paused {
		return c.reject("Resume", ErrInvalidTransition)
	}

	c.mode = Running
	c.log("resume")
	if c.cursor >= c.trace.Len() {
		c.complete()
		return nil
	}
	c.schedule()

	return nil
}

// StepForward renders trace[cursor] and advances the cursor.
//
// From Paused it is a no-op once every step has been visited. From Idle with
// a loaded trace it renders step 0 and leaves the controller Paused.
func (c *Controller) StepForward() error {
	switch c.mode {
	case Paused:
		if c.cursor >= c.trace.Len() {
			return nil
		}
	case Idle:
		if c.trace.Len() == 0 {
			return fmt.Errorf("playback: StepForward: %w", ErrNoTrace)
		}
		c.cursor = 0
		c.mode = Paused
	default:
		return c.reject("StepForward", ErrInvalidTransition)
	}

	c.render()
	c.log("step forward")

	return nil
}

// StepBackward moves the cursor back by one and replays trace[0:cursor].
// Only valid while Paused with cursor > 0. The renderer rebuilds its view
// from scratch, so the result equals a forward run to the same cursor.
//
// Complexity: O(cursor) Renderer work per call; the prefix itself is O(1).
//
// Errors:
//   - ErrInvalidTransition outside Paused or at cursor 0. Nothing is rendered.
func (c *Controller) StepBackward() error {
	if c.mode != Paused || c.cursor == 0 {
		return c.reject("StepBackward", ErrInvalidTransition)
	}

	// Steps [0, cursor) are the visited ones after the decrement.
	c.cursor--
	c.renderer.Replay(c.trace.Prefix(c.cursor))
	c.log("step backward")

	return nil
}

// Reset discards the trace and returns to Idle from any mode.
func (c *Controller) Reset() {
	c.stopTimer()
	c.trace = nil
	c.cursor = 0
	c.mode = Idle
	c.log("reset")
}

// SetSpeed changes the delay used by the next scheduling decision.
// A tick that is already pending keeps its original delay.
func (c *Controller) SetSpeed(d time.Duration) {
	c.speed = clampSpeed(d)
}

// Speed returns the current delay between ticks.
func (c *Controller) Speed() time.Duration {
	return c.speed
}

// State returns a snapshot of mode, cursor and trace length.
func (c *Controller) State() PlaybackState {
	return PlaybackState{Mode: c.mode, Cursor: c.cursor, Len: c.trace.Len()}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Trace returns the loaded trace, or nil.
func (c *Controller) Trace() *trace.Trace {
	return c.trace
}

// tick is the scheduler callback for generation gen.
func (c *Controller) tick(gen uint64) {
	if gen != c.gen || c.mode != Running {
		c.opts.Logger.Debug("playback: stale tick ignored",
			zap.Uint64("tick", gen), zap.Uint64("current", c.gen), zap.Stringer("mode", c.mode))
		return
	}

	c.pending = nil
	c.advance()
}

// advance renders the step under the cursor, then either completes or
// schedules the next tick.
func (c *Controller) advance() {
	c.render()
	if c.cursor >= c.trace.Len() {
		c.complete()
		return
	}
	c.schedule()
}

func (c *Controller) render() {
	step, err := c.trace.At(c.cursor)
	if err != nil {
		// unreachable while cursor < Len
		c.opts.Logger.Error("playback: render", zap.Error(err))
		return
	}
	c.renderer.Apply(step)
	c.cursor++
}

func (c *Controller) schedule() {
	c.gen++
	gen := c.gen
	c.pending = c.scheduler.Schedule(c.speed, func() { c.tick(gen) })
}

// stopTimer cancels the pending tick and invalidates its generation.
func (c *Controller) stopTimer() {
	c.gen++
	if c.pending != nil {
		c.pending()
		c.pending = nil
	}
}

func (c *Controller) complete() {
	c.stopTimer()
	c.mode = Complete
	c.log("complete")

	if c.opts.OnComplete == nil {
		return
	}
	if res, ok := c.trace.Result(); ok {
		c.opts.OnComplete(res)
	}
}

func (c *Controller) reject(op string, err error) error {
	c.opts.Logger.Debug("playback: rejected",
		zap.String("op", op), zap.Stringer("mode", c.mode), zap.Int("cursor", c.cursor))
	return fmt.Errorf("playback: %s in mode %s: %w", op, c.mode, err)
}

func (c *Controller) log(event string) {
	c.opts.Logger.Debug("playback: "+event,
		zap.Stringer("mode", c.mode),
		zap.Int("cursor", c.cursor),
		zap.Int("len", c.trace.Len()),
		zap.Duration("speed", c.speed),
	)
}

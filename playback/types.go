package playback

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/pairviz/geometry"
	"github.com/katalvlaran/pairviz/trace"
)

// Sentinel errors returned by the Controller and Loop.
var (
	// ErrInvalidTransition indicates an operation the current mode forbids.
	// The rejected call leaves cursor and mode untouched.
	ErrInvalidTransition = errors.New("playback: invalid controller transition")

	// ErrAlreadyRunning indicates Start or Load outside Idle. Errors carrying it
	// also match ErrInvalidTransition.
	ErrAlreadyRunning = errors.New("playback: already running")

	// ErrNoTrace indicates that no trace is loaded.
	ErrNoTrace = errors.New("playback: no trace loaded")

	// ErrEmptyTrace indicates a trace without steps.
	ErrEmptyTrace = errors.New("playback: trace is empty")

	// ErrNilCollaborator indicates a nil Renderer or Scheduler.
	ErrNilCollaborator = errors.New("playback: renderer and scheduler are required")

	// ErrLoopClosed indicates that the Loop no longer accepts work.
	ErrLoopClosed = errors.New("playback: loop is closed")
)

// errNotIdle is the rejection for Start and Load outside Idle.
var errNotIdle = fmt.Errorf("%w: %w", ErrInvalidTransition, ErrAlreadyRunning)

// DefaultSpeed is the delay between ticks when none is configured.
const DefaultSpeed = 200 * time.Millisecond

// Mode is the phase of a Controller.
type Mode int

const (
	// Idle: no trace is playing (one may be loaded).
	Idle Mode = iota
	// Running: a tick is pending.
	Running
	// Paused: the cursor is frozen and no tick is pending.
	Paused
	// Complete: every step has been rendered by playback.
	Complete
)

// String returns the lower-case mode name.
func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Complete:
		return "complete"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// MarshalText encodes m by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Renderer draws steps. It owns all presentation and must never call back
// into the Controller.
//
//   - Apply is called once per single-step visit (forward).
//   - Replay receives trace[0:k] after a backward jump and must redraw
//     idempotently, ending in the state forward stepping would have produced.
type Renderer interface {
	Apply(step trace.Step)
	Replay(steps []trace.Step)
}

// Cancel revokes a scheduled callback. Calling it more than once is harmless.
type Cancel func()

// Scheduler calls fn once after delay, on the goroutine that owns the
// Controller.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Cancel
}

// PlaybackState is a snapshot of a Controller.
type PlaybackState struct {
	Mode   Mode `json:"mode"`
	Cursor int  `json:"cursor"`
	Len    int  `json:"len"`
}

// Progress returns Cursor/Len in [0,1]; 0 when no trace is loaded.
func (s PlaybackState) Progress() float64 {
	if s.Len == 0 {
		return 0
	}
	return float64(s.Cursor) / float64(s.Len)
}

// Option configures a Controller.
type Option func(*Options)

// Options holds Controller configuration.
type Options struct {
	// Speed is the initial delay between ticks.
	Speed time.Duration

	// OnComplete, if non-nil, receives the final pair when playback
	// reaches Complete.
	OnComplete func(geometry.PairResult)

	// Logger receives transition records at Debug level.
	Logger *zap.Logger
}

// DefaultOptions returns DefaultSpeed, no completion hook and a no-op logger.
func DefaultOptions() Options {
	return Options{
		Speed:  DefaultSpeed,
		Logger: zap.NewNop(),
	}
}

// WithSpeed sets the initial delay between ticks. Negative values are
// treated as zero.
func WithSpeed(d time.Duration) Option {
	return func(o *Options) {
		o.Speed = clampSpeed(d)
	}
}

// WithOnComplete installs the completion hook.
func WithOnComplete(fn func(geometry.PairResult)) Option {
	return func(o *Options) {
		o.OnComplete = fn
	}
}

// WithLogger installs a zap logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("playback: WithLogger(nil)")
	}
	return func(o *Options) {
		o.Logger = l
	}
}

func clampSpeed(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

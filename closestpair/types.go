package closestpair

import (
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/pairviz/geometry"
)

// ErrInsufficientPoints is returned by Solve, Visualize and Instant when fewer
// than two points are supplied. No partial trace is produced.
var ErrInsufficientPoints = geometry.ErrInsufficientPoints

// baseCaseSize is the largest subproblem solved by brute force.
const baseCaseSize = 3

// stripWindow is how many y-ordered successors are examined per strip point.
const stripWindow = 7

// Option configures a solve.
type Option func(*Options)

// Options holds the solver's ambient knobs. None of them affects the result.
type Options struct {
	// Clock supplies the timestamps used for Summary.Elapsed.
	Clock func() time.Time

	// Logger receives Debug records for each solve; defaults to a no-op logger.
	Logger *zap.Logger
}

// DefaultOptions returns wall-clock timing and a no-op logger.
func DefaultOptions() Options {
	return Options{
		Clock:  time.Now,
		Logger: zap.NewNop(),
	}
}

// WithClock overrides the time source. Panics on nil.
func WithClock(fn func() time.Time) Option {
	if fn == nil {
		panic("closestpair: WithClock(nil)")
	}
	return func(o *Options) {
		o.Clock = fn
	}
}

// WithLogger installs a zap logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("closestpair: WithLogger(nil)")
	}
	return func(o *Options) {
		o.Logger = l
	}
}

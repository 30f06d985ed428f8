package playback_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pairviz/closestpair"
	"github.com/katalvlaran/pairviz/geometry"
	"github.com/katalvlaran/pairviz/playback"
	"github.com/katalvlaran/pairviz/render"
	"github.com/katalvlaran/pairviz/trace"
)

const speed = 100 * time.Millisecond

// recordingRenderer keeps every call it receives.
type recordingRenderer struct {
	applied []trace.Step
	replays [][]trace.Step
}

func (r *recordingRenderer) Apply(s trace.Step) { r.applied = append(r.applied, s) }

func (r *recordingRenderer) Replay(steps []trace.Step) {
	cp := make([]trace.Step, len(steps))
	copy(cp, steps)
	r.replays = append(r.replays, cp)
}

// leakyScheduler ignores cancellation, so every scheduled callback fires.
// It models a timer that already fired before Cancel was called.
type leakyScheduler struct {
	fns []func()
}

func (l *leakyScheduler) Schedule(_ time.Duration, fn func()) playback.Cancel {
	l.fns = append(l.fns, fn)
	return func() {}
}

func (l *leakyScheduler) fireAll() {
	fns := l.fns
	l.fns = nil
	for _, fn := range fns {
		fn()
	}
}

func sampleTrace(t *testing.T) (*trace.Trace, geometry.PairResult) {
	t.Helper()
	points := []geometry.Point{
		{X: 10, Y: 40, ID: 1},
		{X: 22, Y: 13, ID: 2},
		{X: 35, Y: 31, ID: 3},
		{X: 41, Y: 8, ID: 4},
		{X: 57, Y: 50, ID: 5},
		{X: 63, Y: 47, ID: 6},
		{X: 70, Y: 2, ID: 7},
	}
	tr, res, err := closestpair.Visualize(points)
	require.NoError(t, err)
	require.Greater(t, tr.Len(), 10)
	return tr, res
}

func newController(t *testing.T, r playback.Renderer, s playback.Scheduler, opts ...playback.Option) *playback.Controller {
	t.Helper()
	c, err := playback.NewController(r, s, append([]playback.Option{playback.WithSpeed(speed)}, opts...)...)
	require.NoError(t, err)
	return c
}

func TestNewController_NilCollaborators(t *testing.T) {
	_, err := playback.NewController(nil, playback.NewManualScheduler())
	assert.ErrorIs(t, err, playback.ErrNilCollaborator)
	_, err = playback.NewController(&recordingRenderer{}, nil)
	assert.ErrorIs(t, err, playback.ErrNilCollaborator)
}

func TestStart_RendersFirstStepAndSchedules(t *testing.T) {
	tr, _ := sampleTrace(t)
	r := &recordingRenderer{}
	s := playback.NewManualScheduler()
	c := newController(t, r, s)

	require.NoError(t, c.Start(tr))
	require.Len(t, r.applied, 1)
	first, _ := tr.At(0)
	assert.Equal(t, first, r.applied[0])
	assert.Equal(t, playback.PlaybackState{Mode: playback.Running, Cursor: 1, Len: tr.Len()}, c.State())
	assert.Equal(t, 1, s.Pending())

	// nothing fires before the delay elapses
	assert.Equal(t, 0, s.Advance(speed-time.Millisecond))
	assert.Len(t, r.applied, 1)
	assert.Equal(t, 1, s.Advance(time.Millisecond))
	assert.Len(t, r.applied, 2)
}

func TestStart_NoTraceOrEmpty(t *testing.T) {
	c := newController(t, &recordingRenderer{}, playback.NewManualScheduler())
	assert.ErrorIs(t, c.Start(nil), playback.ErrNoTrace)
	assert.ErrorIs(t, c.Start(trace.New()), playback.ErrEmptyTrace)
	assert.ErrorIs(t, c.Load(trace.New()), playback.ErrEmptyTrace)
	assert.Equal(t, playback.Idle, c.Mode())
}

func TestRunToCompletion(t *testing.T) {
	tr, want := sampleTrace(t)
	r := &recordingRenderer{}
	s := playback.NewManualScheduler()

	var got geometry.PairResult
	var calls int
	c := newController(t, r, s, playback.WithOnComplete(func(p geometry.PairResult) {
		got = p
		calls++
	}))

	require.NoError(t, c.Start(tr))
	s.Advance(time.Duration(tr.Len()) * speed)

	assert.Equal(t, playback.Complete, c.Mode())
	assert.Equal(t, tr.Len(), c.State().Cursor)
	assert.Equal(t, 1.0, c.State().Progress())
	assert.Equal(t, tr.Steps(), r.applied)
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, 1, calls)
	assert.Equal(t, want, got)

	// Complete is terminal for Start; Reset is required first
	assert.ErrorIs(t, c.Start(tr), playback.ErrAlreadyRunning)
	c.Reset()
	assert.NoError(t, c.Start(tr))
}

func TestStart_WhileNotIdle(t *testing.T) {
	tr, _ := sampleTrace(t)
	s := playback.NewManualScheduler()
	c := newController(t, &recordingRenderer{}, s)
	require.NoError(t, c.Start(tr))

	before := c.State()
	err := c.Start(tr)
	require.ErrorIs(t, err, playback.ErrAlreadyRunning)
	assert.Equal(t, before, c.State())
	assert.Equal(t, 1, s.Pending(), "a rejected Start must not double-schedule")

	require.NoError(t, c.Pause())
	assert.ErrorIs(t, c.Start(tr), playback.ErrAlreadyRunning)
	assert.ErrorIs(t, c.Load(tr), playback.ErrAlreadyRunning)
}

func TestStartAndLoadOutsideIdle_AreInvalidTransitions(t *testing.T) {
	tr, _ := sampleTrace(t)
	s := playback.NewManualScheduler()
	c := newController(t, &recordingRenderer{}, s)
	require.NoError(t, c.Start(tr))

	for _, err := range []error{c.Start(tr), c.Load(tr)} {
		assert.ErrorIs(t, err, playback.ErrInvalidTransition)
		assert.ErrorIs(t, err, playback.ErrAlreadyRunning)
	}

	require.NoError(t, c.Pause())
	assert.ErrorIs(t, c.Start(nil), playback.ErrInvalidTransition)

	require.NoError(t, c.Resume())
	s.Advance(time.Duration(tr.Len()) * time.Second)
	require.Equal(t, playback.Complete, c.Mode())
	assert.ErrorIs(t, c.Start(tr), playback.ErrInvalidTransition)
	assert.ErrorIs(t, c.Load(tr), playback.ErrInvalidTransition)
}

func TestPauseResume(t *testing.T) {
	tr, _ := sampleTrace(t)
	r := &recordingRenderer{}
	s := playback.NewManualScheduler()
	c := newController(t, r, s)

	require.NoError(t, c.Start(tr))
	s.Advance(2 * speed)
	require.Len(t, r.applied, 3)

	require.NoError(t, c.Pause())
	assert.Equal(t, playback.Paused, c.Mode())
	assert.Equal(t, 0, s.Pending())
	s.Advance(10 * speed)
	assert.Len(t, r.applied, 3, "no tick may fire after Pause")

	require.NoError(t, c.Resume())
	assert.Len(t, r.applied, 3, "Resume does not re-render the current step")
	assert.Equal(t, 1, s.Pending())
	s.Advance(speed)
	require.Len(t, r.applied, 4)
	fourth, _ := tr.At(3)
	assert.Equal(t, fourth, r.applied[3])
}

func TestExactlyOneTickPending(t *testing.T) {
	tr, _ := sampleTrace(t)
	s := playback.NewManualScheduler()
	c := newController(t, &recordingRenderer{}, s)

	require.NoError(t, c.Start(tr))
	for i := 0; i < 5; i++ {
		assert.LessOrEqual(t, s.Pending(), 1)
		require.NoError(t, c.Pause())
		assert.ErrorIs(t, c.Pause(), playback.ErrInvalidTransition)
		require.NoError(t, c.Resume())
		assert.ErrorIs(t, c.Resume(), playback.ErrInvalidTransition)
		assert.Equal(t, 1, s.Pending())
		s.Advance(speed)
	}
	assert.Equal(t, 6, c.State().Cursor)
}

func TestStaleTicksAreIgnored(t *testing.T) {
	tr, _ := sampleTrace(t)
	r := &recordingRenderer{}
	s := &leakyScheduler{}
	c := newController(t, r, s)

	require.NoError(t, c.Start(tr))
	require.NoError(t, c.Pause())
	require.NoError(t, c.Resume())
	// two callbacks exist: the cancelled one and the live one
	require.Len(t, s.fns, 2)
	s.fireAll()
	assert.Equal(t, 2, c.State().Cursor, "the stale tick must not double-advance")

	require.NoError(t, c.Pause())
	s.fireAll()
	assert.Equal(t, 2, c.State().Cursor)

	c.Reset()
	s.fireAll()
	assert.Equal(t, playback.PlaybackState{Mode: playback.Idle}, c.State())
	assert.Len(t, r.applied, 2)
}

func TestSetSpeed_AffectsOnlyNextDelay(t *testing.T) {
	tr, _ := sampleTrace(t)
	r := &recordingRenderer{}
	s := playback.NewManualScheduler()
	c := newController(t, r, s)

	require.NoError(t, c.Start(tr))
	c.SetSpeed(time.Second)
	assert.Equal(t, time.Second, c.Speed())

	// the pending tick keeps its 100ms delay
	assert.Equal(t, 1, s.Advance(speed))
	assert.Len(t, r.applied, 2)
	// the next one uses the new delay
	assert.Equal(t, 0, s.Advance(time.Second-time.Millisecond))
	assert.Equal(t, 1, s.Advance(time.Millisecond))

	c.SetSpeed(-5)
	assert.Equal(t, time.Duration(0), c.Speed())
}

func TestInvalidTransitions_LeaveStateUntouched(t *testing.T) {
	tr, _ := sampleTrace(t)
	c := newController(t, &recordingRenderer{}, playback.NewManualScheduler())

	idle := c.State()
	assert.ErrorIs(t, c.Pause(), playback.ErrInvalidTransition)
	assert.ErrorIs(t, c.Resume(), playback.ErrInvalidTransition)
	assert.ErrorIs(t, c.StepBackward(), playback.ErrInvalidTransition)
	assert.Equal(t, idle, c.State())

	require.NoError(t, c.Start(tr))
	running := c.State()
	assert.ErrorIs(t, c.StepForward(), playback.ErrInvalidTransition)
	assert.ErrorIs(t, c.StepBackward(), playback.ErrInvalidTransition)
	assert.ErrorIs(t, c.Resume(), playback.ErrInvalidTransition)
	assert.Equal(t, running, c.State())

	var target error = playback.ErrInvalidTransition
	err := c.Resume()
	assert.True(t, errors.Is(err, target))
	assert.Contains(t, err.Error(), "running")
}

func TestStepForward_FromIdle(t *testing.T) {
	tr, _ := sampleTrace(t)
	r := &recordingRenderer{}
	s := playback.NewManualScheduler()
	c := newController(t, r, s)

	assert.ErrorIs(t, c.StepForward(), playback.ErrNoTrace)

	require.NoError(t, c.Load(tr))
	assert.Equal(t, playback.PlaybackState{Mode: playback.Idle, Cursor: 0, Len: tr.Len()}, c.State())

	require.NoError(t, c.StepForward())
	assert.Equal(t, playback.PlaybackState{Mode: playback.Paused, Cursor: 1, Len: tr.Len()}, c.State())
	assert.Len(t, r.applied, 1)
	assert.Equal(t, 0, s.Pending())

	require.NoError(t, c.StepForward())
	assert.Equal(t, 2, c.State().Cursor)
	second, _ := tr.At(1)
	assert.Equal(t, second, r.applied[1])
}

func TestStepForward_AtEnd(t *testing.T) {
	tr, want := sampleTrace(t)
	r := &recordingRenderer{}
	s := playback.NewManualScheduler()
	var done bool
	c := newController(t, r, s, playback.WithOnComplete(func(p geometry.PairResult) {
		done = true
		assert.Equal(t, want, p)
	}))

	require.NoError(t, c.Load(tr))
	for i := 0; i < tr.Len(); i++ {
		require.NoError(t, c.StepForward())
	}
	assert.Equal(t, playback.Paused, c.Mode())
	assert.Equal(t, tr.Len(), c.State().Cursor)

	// no-op at the end
	require.NoError(t, c.StepForward())
	assert.Len(t, r.applied, tr.Len())

	// resuming with nothing left completes at once
	require.NoError(t, c.Resume())
	assert.Equal(t, playback.Complete, c.Mode())
	assert.True(t, done)
	assert.Equal(t, 0, s.Pending())
}

func TestStepBackward_Replays(t *testing.T) {
	tr, _ := sampleTrace(t)
	r := &recordingRenderer{}
	c := newController(t, r, playback.NewManualScheduler())

	require.NoError(t, c.Load(tr))
	for i := 0; i < 4; i++ {
		require.NoError(t, c.StepForward())
	}

	require.NoError(t, c.StepBackward())
	assert.Equal(t, 3, c.State().Cursor)
	require.Len(t, r.replays, 1)
	assert.Equal(t, tr.Steps()[:3], r.replays[0])

	// back then forward reproduces the same cursor and step as pure forward
	require.NoError(t, c.StepForward())
	assert.Equal(t, 4, c.State().Cursor)
	fourth, _ := tr.At(3)
	assert.Equal(t, fourth, r.applied[len(r.applied)-1])

	for c.State().Cursor > 0 {
		require.NoError(t, c.StepBackward())
	}
	assert.Empty(t, r.replays[len(r.replays)-1])
	assert.ErrorIs(t, c.StepBackward(), playback.ErrInvalidTransition)
	assert.Equal(t, 0, c.State().Cursor)
}

func TestStepBackward_MatchesForwardScene(t *testing.T) {
	tr, _ := sampleTrace(t)
	steps := tr.Steps()

	// expected[k] is the scene after forward-applying steps[0:k]
	expected := make([]render.SceneState, len(steps)+1)
	ref := render.NewScene()
	expected[0] = ref.State()
	for k, s := range steps {
		ref.Apply(s)
		expected[k+1] = ref.State()
	}

	scene := render.NewScene()
	c := newController(t, scene, playback.NewManualScheduler())
	require.NoError(t, c.Load(tr))
	for k := 1; k <= len(steps); k++ {
		require.NoError(t, c.StepForward())
		require.Equal(t, expected[k], scene.State(), "forward to %d", k)
	}
	for k := len(steps) - 1; k >= 0; k-- {
		require.NoError(t, c.StepBackward())
		require.Equal(t, k, c.State().Cursor)
		require.Equal(t, expected[k], scene.State(), "backward to %d", k)
	}
}

func TestReset_FromEveryMode(t *testing.T) {
	tr, _ := sampleTrace(t)
	s := playback.NewManualScheduler()
	c := newController(t, &recordingRenderer{}, s)
	idle := playback.PlaybackState{Mode: playback.Idle}

	c.Reset()
	assert.Equal(t, idle, c.State())

	require.NoError(t, c.Start(tr))
	c.Reset()
	assert.Equal(t, idle, c.State())
	assert.Nil(t, c.Trace())
	assert.Equal(t, 0, s.Pending())

	require.NoError(t, c.Start(tr))
	require.NoError(t, c.Pause())
	c.Reset()
	assert.Equal(t, idle, c.State())

	require.NoError(t, c.Start(tr))
	s.Advance(time.Duration(tr.Len()) * speed)
	require.Equal(t, playback.Complete, c.Mode())
	c.Reset()
	assert.Equal(t, idle, c.State())
	assert.Equal(t, 0.0, c.State().Progress())
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "idle", playback.Idle.String())
	assert.Equal(t, "running", playback.Running.String())
	assert.Equal(t, "paused", playback.Paused.String())
	assert.Equal(t, "complete", playback.Complete.String())
	assert.Equal(t, "mode(9)", playback.Mode(9).String())
}

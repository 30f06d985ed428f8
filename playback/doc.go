// Package playback turns a trace.Trace into a navigable, pausable sequence of
// renderer calls.
//
// The Controller is a four-state machine:
//
//	Idle ──Start──▶ Running ──Pause──▶ Paused ──Resume──▶ Running
//	  ▲                │                  │
//	  │              (end)            StepForward / StepBackward
//	  │                ▼
//	  └────Reset─── Complete
//
// Reset is accepted from every state and always returns to Idle.
//
// While Running exactly one tick is pending on the Scheduler. Each tick renders
// the step under the cursor, advances the cursor and schedules the next tick
// after the current speed. Every tick is tagged with the generation it was
// scheduled in; Pause, Reset and completion bump the generation, so a tick
// that slipped past cancellation is ignored instead of double-advancing.
//
// Backward stepping has no undo snapshots: StepBackward decrements the cursor
// and hands the renderer the whole prefix trace[0:cursor] to replay.
//
// Concurrency:
//
//	A Controller is not safe for concurrent use. All of its methods and all
//	scheduler callbacks must run on one goroutine. Loop provides such a
//	goroutine together with a Scheduler whose timers fire on it; ManualScheduler
//	is a virtual clock for tests and offline playback.
//
// Errors (sentinel):
//
//	– ErrInvalidTransition if an operation is not allowed in the current mode.
//	– ErrAlreadyRunning    if Start or Load is called outside Idle; it also
//	                       matches ErrInvalidTransition.
//	– ErrNoTrace           if there is nothing loaded to play.
//	– ErrEmptyTrace        if the supplied trace has no steps.
//	– ErrLoopClosed        if a Loop is used after Close.
package playback

package playback

import (
	"sync"
	"sync/atomic"
	"time"
)

// Loop is a single goroutine that executes posted functions one at a time.
// Its Schedule method delivers timer callbacks onto that goroutine, which
// makes it a Scheduler suitable for driving a Controller: the Controller is
// then only ever touched from the loop.
type Loop struct {
	tasks chan func()
	quit  chan struct{}
	done  chan struct{}
	once  sync.Once
}

// NewLoop starts a loop goroutine. Close must be called to stop it.
func NewLoop() *Loop {
	l := &Loop{
		tasks: make(chan func()),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go l.run()

	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-l.quit:
			return
		}
	}
}

// Post queues fn for execution on the loop. It reports false if the loop
// is closed.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.quit:
		return false
	case l.tasks <- fn:
		return true
	}
}

// Do runs fn on the loop and waits for it to return.
// Do must not be called from the loop goroutine itself.
func (l *Loop) Do(fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrLoopClosed
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopClosed
	}
}

// Schedule implements Scheduler. fn runs on the loop goroutine after delay
// unless the returned Cancel is called first.
func (l *Loop) Schedule(delay time.Duration, fn func()) Cancel {
	var cancelled atomic.Bool
	timer := time.AfterFunc(delay, func() {
		l.Post(func() {
			if !cancelled.Load() {
				fn()
			}
		})
	})

	return func() {
		cancelled.Store(true)
		timer.Stop()
	}
}

// Close stops the loop and waits for the goroutine to exit. Pending timer
// callbacks are dropped.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.quit) })
	<-l.done
}

// Done is closed once the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

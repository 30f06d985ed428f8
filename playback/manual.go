package playback

import "time"

// ManualScheduler is a virtual-clock Scheduler. Callbacks only run inside
// Advance or Drain, on the caller's goroutine, in due-time order (ties in
// scheduling order).
type ManualScheduler struct {
	now   time.Duration
	seq   uint64
	tasks []*manualTask
}

type manualTask struct {
	due       time.Duration
	seq       uint64
	fn        func()
	cancelled bool
}

// NewManualScheduler returns a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule implements Scheduler.
func (m *ManualScheduler) Schedule(delay time.Duration, fn func()) Cancel {
	if delay < 0 {
		delay = 0
	}
	m.seq++
	t := &manualTask{due: m.now + delay, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, t)

	return func() { t.cancelled = true }
}

// Now returns the virtual time elapsed since creation.
func (m *ManualScheduler) Now() time.Duration {
	return m.now
}

// Pending returns the number of callbacks still waiting to fire.
func (m *ManualScheduler) Pending() int {
	var n int
	for _, t := range m.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing every callback that becomes
// due, including callbacks scheduled by callbacks fired during this call.
// It returns how many callbacks ran.
func (m *ManualScheduler) Advance(d time.Duration) int {
	target := m.now + d
	var fired int
	for {
		t := m.next(target)
		if t == nil {
			break
		}
		m.now = t.due
		t.fn()
		fired++
	}
	m.now = target

	return fired
}

// Drain fires callbacks in order regardless of their due time until none is
// pending or limit callbacks have run. It returns how many ran.
func (m *ManualScheduler) Drain(limit int) int {
	var fired int
	for fired < limit {
		t := m.next(-1)
		if t == nil {
			break
		}
		if t.due > m.now {
			m.now = t.due
		}
		t.fn()
		fired++
	}
	return fired
}

// next removes and returns the earliest live task due at or before limit
// (limit < 0 means no limit).
func (m *ManualScheduler) next(limit time.Duration) *manualTask {
	best := -1
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.tasks = live

	for i, t := range m.tasks {
		if limit >= 0 && t.due > limit {
			continue
		}
		if best < 0 || t.due < m.tasks[best].due ||
			(t.due == m.tasks[best].due && t.seq < m.tasks[best].seq) {
			best = i
		}
	}
	if best < 0 {
		return nil
	}

	t := m.tasks[best]
	m.tasks = append(m.tasks[:best], m.tasks[best+1:]...)

	return t
}

package sched

import "time"

// Manual is a deterministic FrameScheduler and Scheduler driven by a
// virtual clock. Nothing runs until the test calls Fire or Advance, so
// frame and timer sequences are fully reproducible.
//
// Manual is not safe for concurrent use; it models the host's
// single-threaded event loop.
type Manual struct {
	now    time.Duration
	frames []func(ts time.Duration)
	timers []manualTimer
	seq    int
}

type manualTimer struct {
	due time.Duration
	seq int
	fn  func()
}

// NewManual creates a Manual scheduler with its clock at zero.
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the current virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// RequestFrame queues cb for the next call to Fire.
func (m *Manual) RequestFrame(cb func(ts time.Duration)) {
	m.frames = append(m.frames, cb)
}

// After queues fn to run once the virtual clock advances past d.
func (m *Manual) After(d time.Duration, fn func()) {
	m.seq++
	m.timers = append(m.timers, manualTimer{due: m.now + d, seq: m.seq, fn: fn})
}

// PendingFrames returns the number of frame callbacks awaiting Fire.
func (m *Manual) PendingFrames() int {
	return len(m.frames)
}

// PendingTimers returns the number of timers that have not yet run.
func (m *Manual) PendingTimers() int {
	return len(m.timers)
}

// Fire runs every frame callback queued so far, passing the current
// virtual time as the frame timestamp. Callbacks requested while Fire is
// running are held for the next Fire, mirroring how a host delivers at
// most one frame per repaint.
func (m *Manual) Fire() {
	queued := m.frames
	m.frames = nil
	for _, cb := range queued {
		cb(m.now)
	}
}

// Advance moves the virtual clock forward by d, running every timer that
// comes due along the way in due-time order. Timers with equal due times
// run in submission order. A timer scheduled by another timer runs within
// the same Advance if it comes due before the target time.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		next := -1
		for i, t := range m.timers {
			if t.due > target {
				continue
			}
			if next == -1 || m.timers[i].less(m.timers[next]) {
				next = i
			}
		}
		if next == -1 {
			break
		}
		t := m.timers[next]
		m.timers = append(m.timers[:next], m.timers[next+1:]...)
		if t.due > m.now {
			m.now = t.due
		}
		t.fn()
	}
	m.now = target
}

func (t manualTimer) less(u manualTimer) bool {
	if t.due != u.due {
		return t.due < u.due
	}
	return t.seq < u.seq
}

package sched

import (
	"context"
	"time"
)

// DefaultFrameInterval approximates a 60Hz display refresh cycle.
const DefaultFrameInterval = time.Second / 60

// Ticker is a wall-clock FrameScheduler and Scheduler. Frame callbacks
// fire one frame interval after they are requested, timestamped relative
// to the ticker's creation.
//
// All callbacks execute one at a time on the goroutine that calls Run,
// preserving the single-threaded processing model the rest of the library
// assumes. RequestFrame and After may be called from any goroutine.
type Ticker struct {
	interval time.Duration
	start    time.Time
	work     chan func()
}

// NewTicker creates a Ticker with the given frame interval.
// A non-positive interval falls back to DefaultFrameInterval.
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Ticker{
		interval: interval,
		start:    time.Now(),
		work:     make(chan func(), 64),
	}
}

// Run executes queued callbacks until the context is cancelled.
// It must be called from exactly one goroutine.
func (t *Ticker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-t.work:
			fn()
		}
	}
}

// RequestFrame schedules cb to run on the Run goroutine after one frame
// interval, passing the elapsed time since the ticker was created.
func (t *Ticker) RequestFrame(cb func(ts time.Duration)) {
	time.AfterFunc(t.interval, func() {
		t.Submit(func() { cb(time.Since(t.start)) })
	})
}

// After schedules fn to run on the Run goroutine once d has elapsed.
func (t *Ticker) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { t.Submit(fn) })
}

// Submit queues fn for execution on the Run goroutine. It is how external
// events (user input, network completions) enter the processing loop.
func (t *Ticker) Submit(fn func()) {
	t.work <- fn
}

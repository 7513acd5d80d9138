// Package sched abstracts frame-callback and delayed-callback scheduling
// behind small interfaces so components can be driven by a real display
// loop in production and a virtual clock in tests.
package sched

import "time"

// FrameScheduler requests one-shot callbacks synchronized with the host's
// rendering cycle.
type FrameScheduler interface {
	// RequestFrame schedules cb to run once before the next repaint.
	// The callback receives a high-resolution timestamp measured from an
	// implementation-defined origin. Each call schedules exactly one
	// callback; coalescing repeated requests is the caller's concern.
	RequestFrame(cb func(ts time.Duration))
}

// Scheduler runs a function after a delay.
type Scheduler interface {
	// After arranges for fn to run once d has elapsed.
	After(d time.Duration, fn func())
}

// Package batch coalesces action dispatches that occur within one
// rendering interval into a single batched notification per dispatcher,
// synchronized to the host's display refresh cycle via a
// sched.FrameScheduler.
package batch

import (
	"time"

	"github.com/reflow-ui/reflow/pkg/dispatch"
	"github.com/reflow-ui/reflow/pkg/log"
	"github.com/reflow-ui/reflow/pkg/sched"
)

// FrameBatcher is an action processor that defers actions tagged with
// Deferred until the next host rendering frame, then delivers everything
// accumulated in that window to each destination dispatcher in one
// combined call, prefixed with a FrameStamp marker.
//
// Each FrameBatcher owns its own queue and frame-request flag, so
// independent batchers (for example in tests) never interfere. All
// methods, including the frame callback, must run on the host's single
// event-processing goroutine.
type FrameBatcher struct {
	sched          sched.FrameScheduler
	logger         log.Logger
	pending        []queued
	frameRequested bool
}

// queued pairs a deferred action with the dispatcher it arrived on.
type queued struct {
	action dispatch.Action
	target dispatch.Dispatcher
}

// Option configures optional behavior of a FrameBatcher.
type Option func(*FrameBatcher)

// WithLogger sets a custom logger. The default discards all output.
func WithLogger(l log.Logger) Option {
	return func(fb *FrameBatcher) { fb.logger = l }
}

// New creates a FrameBatcher that requests frame callbacks from s.
func New(s sched.FrameScheduler, opts ...Option) *FrameBatcher {
	fb := &FrameBatcher{
		sched:  s,
		logger: log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(fb)
	}
	return fb
}

// Process implements dispatch.Processor with three dispositions:
//
//  1. An action tagged by Deferred is queued together with its
//     originating dispatcher and a frame is requested. The chain is
//     short-circuited: the action is deferred, not dropped.
//  2. A flushed wrapper, seen while a flush re-dispatches queued actions,
//     is unwrapped and forwarded so the original action re-enters normal
//     processing exactly once.
//  3. Any other action is forwarded untouched.
func (fb *FrameBatcher) Process(d dispatch.Dispatcher, a dispatch.Action, next dispatch.Next) {
	switch a := a.(type) {
	case deferred:
		fb.pending = append(fb.pending, queued{action: a.action, target: d})
		fb.requestFrame()
	case flushed:
		next(a.action)
	default:
		next(a)
	}
}

// Pending returns the number of actions waiting for the next frame.
func (fb *FrameBatcher) Pending() int {
	return len(fb.pending)
}

// requestFrame asks the scheduler for a frame callback. It is idempotent
// per outstanding frame: while one is requested, further calls are no-ops.
func (fb *FrameBatcher) requestFrame() {
	if fb.frameRequested {
		return
	}
	fb.frameRequested = true
	fb.sched.RequestFrame(fb.flush)
}

// flush is the frame callback. It swaps out the queue, partitions the
// taken actions by destination dispatcher preserving per-dispatcher
// arrival order, and issues one combined dispatch call per dispatcher:
// a FrameStamp carrying the frame timestamp followed by that dispatcher's
// actions, each rewrapped so the batcher unwraps them on re-entry.
//
// The request flag is cleared first, so a deferred action submitted
// synchronously while the flush dispatches (an action handler emitting
// another deferred action) requests its own frame through the idempotent
// guard and is delivered on the following frame rather than lost. No
// frame is requested when nothing is pending, so batching goes idle after
// the last batch drains.
func (fb *FrameBatcher) flush(ts time.Duration) {
	fb.frameRequested = false
	if len(fb.pending) == 0 {
		return
	}

	taken := fb.pending
	fb.pending = nil

	batches := make(map[dispatch.Dispatcher][]dispatch.Action)
	var order []dispatch.Dispatcher
	for _, q := range taken {
		if _, seen := batches[q.target]; !seen {
			order = append(order, q.target)
		}
		batches[q.target] = append(batches[q.target], flushed{action: q.action})
	}

	for _, d := range order {
		seq := make([]dispatch.Action, 0, len(batches[d])+1)
		seq = append(seq, FrameStamp{Time: ts})
		seq = append(seq, batches[d]...)
		d.DispatchAll(seq)
	}

	fb.logger.Debug("frame flush",
		log.Duration("frame_ts", ts),
		log.Int("actions", len(taken)),
		log.Int("dispatchers", len(order)))
}

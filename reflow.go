// Package reflow is a small toolkit for reactive client applications:
// it models asynchronously fetched data with a precise loading, error,
// staleness and retry state machine (pkg/pot), and coalesces bursts of
// state-changing actions into one batched notification per rendering
// frame (pkg/batch).
//
// Example usage:
//
//	pipe := reflow.New(applyAction)
//	defer pipe.Close()
//
//	pipe.Dispatch(reflow.Deferred(Increment{N: 1}))
//	pipe.Dispatch(reflow.Deferred(Increment{N: 2}))
//	// Both actions are delivered on the next frame in one combined
//	// dispatch call, prefixed with a batch.FrameStamp.
package reflow

import (
	"context"

	"github.com/reflow-ui/reflow/pkg/batch"
	"github.com/reflow-ui/reflow/pkg/dispatch"
	"github.com/reflow-ui/reflow/pkg/log"
	"github.com/reflow-ui/reflow/pkg/sched"
)

// Action is any value routed through a dispatcher.
type Action = dispatch.Action

// Dispatcher delivers actions to registered listeners.
type Dispatcher = dispatch.Dispatcher

// Processor is one stage of an action-processing chain.
type Processor = dispatch.Processor

// Deferred tags an action for frame-synchronized delivery.
func Deferred(a Action) Action {
	return batch.Deferred(a)
}

// Pipeline couples a dispatcher with the frame batcher sitting in its
// processor chain and the scheduler driving frame callbacks.
type Pipeline struct {
	Bus     *dispatch.Bus
	Batcher *batch.FrameBatcher

	ticker *sched.Ticker
	cancel context.CancelFunc
}

// Option configures optional behavior of a Pipeline.
type Option func(*options)

type options struct {
	logger     log.Logger
	scheduler  sched.FrameScheduler
	processors []dispatch.Processor
	name       string
}

// WithLogger sets a custom logger for the bus and batcher.
// If not provided, a no-op logger is used (no output).
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithFrameScheduler sets the frame scheduler. If not provided, a
// wall-clock sched.Ticker at the default frame interval is created and
// run on a background goroutine until Close is called.
func WithFrameScheduler(s sched.FrameScheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// WithProcessors installs extra processors ahead of the frame batcher.
func WithProcessors(ps ...dispatch.Processor) Option {
	return func(o *options) { o.processors = append(o.processors, ps...) }
}

// WithName sets the bus name used in log output.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// New assembles a dispatcher whose Deferred-tagged actions are
// frame-batched. Surviving actions are applied by handler.
func New(handler func(Action), opts ...Option) *Pipeline {
	o := options{logger: log.NewNoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	p := &Pipeline{}
	if o.scheduler == nil {
		p.ticker = sched.NewTicker(sched.DefaultFrameInterval)
		o.scheduler = p.ticker
		ctx, cancel := context.WithCancel(context.Background())
		p.cancel = cancel
		go p.ticker.Run(ctx)
	}

	p.Batcher = batch.New(o.scheduler, batch.WithLogger(o.logger))
	procs := append(o.processors, dispatch.Processor(p.Batcher))
	p.Bus = dispatch.NewBus(handler,
		dispatch.WithName(o.name),
		dispatch.WithProcessors(procs...),
		dispatch.WithLogger(o.logger),
	)
	return p
}

// Dispatch delivers a through the bus. With an internally created ticker
// the call is routed onto the event-loop goroutine, so Dispatch is safe
// from any goroutine. With a caller-supplied scheduler it runs inline and
// the caller owns the threading discipline.
func (p *Pipeline) Dispatch(a Action) {
	if p.ticker != nil {
		p.ticker.Submit(func() { p.Bus.Dispatch(a) })
		return
	}
	p.Bus.Dispatch(a)
}

// Close stops the internally created scheduler, if any. Pipelines built
// with WithFrameScheduler own nothing and Close is a no-op.
func (p *Pipeline) Close() {
	if p.cancel != nil {
		p.cancel()
	}
}

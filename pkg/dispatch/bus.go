package dispatch

import (
	"github.com/reflow-ui/reflow/pkg/log"
)

// Bus is an in-memory Dispatcher. Every dispatched action runs through a
// processor chain; actions that survive the chain are applied by the
// terminal handler. Listeners are notified once per dispatch call,
// regardless of how many actions the call carried, which is the batch
// guarantee frame batching depends on.
//
// Bus is not safe for concurrent use; it is meant to be driven from a
// single event-processing goroutine.
type Bus struct {
	name      string
	procs     []Processor
	handler   func(Action)
	listeners []listener
	nextID    int
	applied   int
	logger    log.Logger
}

type listener struct {
	id int
	fn func()
}

// BusOption configures optional behavior of a Bus.
type BusOption func(*Bus)

// WithName sets a name used in log output.
func WithName(name string) BusOption {
	return func(b *Bus) { b.name = name }
}

// WithProcessors installs the processor chain, in order. The first
// processor sees every dispatched action; the last one's next applies the
// action via the terminal handler.
func WithProcessors(ps ...Processor) BusOption {
	return func(b *Bus) { b.procs = append(b.procs, ps...) }
}

// WithLogger sets a custom logger. The default discards all output.
func WithLogger(l log.Logger) BusOption {
	return func(b *Bus) { b.logger = l }
}

// NewBus creates a Bus whose surviving actions are applied by handler.
// A nil handler discards actions that reach the end of the chain.
func NewBus(handler func(Action), opts ...BusOption) *Bus {
	b := &Bus{
		handler: handler,
		logger:  log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the bus name, which may be empty.
func (b *Bus) Name() string {
	return b.name
}

// Subscribe registers fn to run after each dispatch call. The returned
// function removes the subscription.
func (b *Bus) Subscribe(fn func()) func() {
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range b.listeners {
			if l.id == id {
				b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers a single action through the processor chain and
// notifies listeners once.
func (b *Bus) Dispatch(a Action) {
	b.DispatchAll([]Action{a})
}

// DispatchAll delivers an ordered sequence of actions through the
// processor chain, then notifies listeners exactly once, provided at
// least one action survived the chain and was applied. A call whose every
// action was short-circuited (deferred, for example) changes nothing and
// produces no notification. Dispatching an empty sequence does nothing.
func (b *Bus) DispatchAll(as []Action) {
	if len(as) == 0 {
		return
	}
	before := b.applied
	for _, a := range as {
		b.process(a)
	}
	if b.applied == before {
		return
	}
	b.logger.Debug("dispatched", log.String("bus", b.name), log.Int("actions", len(as)))
	b.notify()
}

func (b *Bus) process(a Action) {
	next := Next(b.apply)
	for i := len(b.procs) - 1; i >= 0; i-- {
		p := b.procs[i]
		n := next
		next = func(x Action) { p.Process(b, x, n) }
	}
	next(a)
}

func (b *Bus) apply(a Action) {
	b.applied++
	if b.handler != nil {
		b.handler(a)
	}
}

func (b *Bus) notify() {
	// Copy so a listener unsubscribing itself does not skip its neighbor.
	ls := append([]listener(nil), b.listeners...)
	for _, l := range ls {
		l.fn()
	}
}

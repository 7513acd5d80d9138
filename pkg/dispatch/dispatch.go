// Package dispatch defines the action-processing chain and dispatcher
// interfaces the rest of reflow plugs into, plus Bus, a minimal in-memory
// dispatcher implementing them.
package dispatch

// Action is any value routed through a dispatcher. Actions are plain
// data; capabilities such as frame batching are expressed by wrapping an
// action at creation time, not by a type hierarchy.
type Action = any

// Next continues an action-processing chain with a (possibly different)
// action.
type Next func(a Action)

// Processor is one stage of an action-processing chain.
//
// A processor receives the originating dispatcher, the action, and the
// continuation of the chain. It must either short-circuit by returning
// without calling next (the action produces no further processing), or
// call next, possibly with a different or unwrapped action, to continue.
type Processor interface {
	Process(d Dispatcher, a Action, next Next)
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(d Dispatcher, a Action, next Next)

// Process calls f.
func (f ProcessorFunc) Process(d Dispatcher, a Action, next Next) {
	f(d, a, next)
}

// Dispatcher delivers actions to registered listeners.
type Dispatcher interface {
	// Dispatch delivers a single action.
	Dispatch(a Action)

	// DispatchAll delivers an ordered sequence of actions as one unit:
	// listeners are notified once after the whole sequence is applied,
	// not once per element.
	DispatchAll(as []Action)
}

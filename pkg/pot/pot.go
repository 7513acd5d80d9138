package pot

import (
	"fmt"
	"time"

	"github.com/reflow-ui/reflow/pkg/retry"
)

// Pot is an immutable value tracking one piece of asynchronously obtained
// data. The zero value is an empty Pot with no retry policy.
//
// Only the fields valid for the current state are populated: the value in
// Ready, PendingStale and FailedStale; the error in Failed and
// FailedStale; the start time in the pending and failed states.
type Pot[A any] struct {
	state  State
	value  A
	err    error
	start  time.Time
	policy retry.Policy
}

// Empty returns a Pot with no data and no attempt in flight.
func Empty[A any]() Pot[A] {
	return Pot[A]{}
}

// Ready returns a Pot holding data that is already known.
func Ready[A any](v A) Pot[A] {
	return Pot[A]{state: StateReady, value: v}
}

// WithRetryPolicy returns a copy of p carrying the given retry policy.
func (p Pot[A]) WithRetryPolicy(policy retry.Policy) Pot[A] {
	p.policy = policy
	return p
}

// Pending marks the start of a load. If p already holds data the result is
// PendingStale and the data stays visible; otherwise it is Pending. The
// start time is set to now in both cases: a refresh is a fresh load, so
// its duration is measured from the refresh, not the original load.
func (p Pot[A]) Pending(now time.Time) Pot[A] {
	next := p
	next.err = nil
	next.start = now
	if p.hasValue() {
		next.state = StatePendingStale
	} else {
		next.state = StatePending
	}
	return next
}

// Ready marks a successful load, clearing any error and start time.
func (p Pot[A]) Ready(v A) Pot[A] {
	return Pot[A]{state: StateReady, value: v, policy: p.policy}
}

// Fail marks a failed load. Prior data, if any, is retained for continued
// display (FailedStale); without prior data the result is Failed. The
// start time is unchanged so the total duration of the attempt chain stays
// observable.
func (p Pot[A]) Fail(err error) Pot[A] {
	next := p
	next.err = err
	if p.hasValue() {
		next.state = StateFailedStale
	} else {
		next.state = StateFailed
	}
	return next
}

// Retry moves a failed Pot back to its pending form, carrying nextPolicy
// for subsequent failures. The start time is deliberately not touched:
// duration reflects the whole retry sequence. Calling Retry on a
// non-failed Pot returns it unchanged.
func (p Pot[A]) Retry(nextPolicy retry.Policy) Pot[A] {
	next := p
	next.policy = nextPolicy
	switch p.state {
	case StateFailed:
		next.state = StatePending
		next.err = nil
	case StateFailedStale:
		next.state = StatePendingStale
		next.err = nil
	default:
		return p
	}
	return next
}

// State returns the current lifecycle state.
func (p Pot[A]) State() State {
	return p.state
}

// IsEmpty reports whether p holds no usable data, even if an attempt is or
// was in flight.
func (p Pot[A]) IsEmpty() bool {
	return !p.hasValue()
}

// NonEmpty reports whether p holds usable data, possibly stale.
func (p Pot[A]) NonEmpty() bool {
	return p.hasValue()
}

// IsPending reports whether a load is in flight.
func (p Pot[A]) IsPending() bool {
	return p.state == StatePending || p.state == StatePendingStale
}

// IsStale reports whether p holds data from a prior load while a refresh
// is in flight or has failed.
func (p Pot[A]) IsStale() bool {
	return p.state == StatePendingStale || p.state == StateFailedStale
}

// IsFailed reports whether the latest load failed.
func (p Pot[A]) IsFailed() bool {
	return p.state == StateFailed || p.state == StateFailedStale
}

// IsReady reports whether p holds fresh data.
func (p Pot[A]) IsReady() bool {
	return p.state == StateReady
}

// Value returns the contained data and whether it is present.
func (p Pot[A]) Value() (A, bool) {
	return p.value, p.hasValue()
}

// Err returns the failure of the latest load, or nil.
func (p Pot[A]) Err() error {
	return p.err
}

// StartTime returns when the current pending/failed chain began and
// whether a start time is present. Empty and Ready Pots have none.
func (p Pot[A]) StartTime() (time.Time, bool) {
	return p.start, p.hasStart()
}

// Duration returns the elapsed time of the current pending/failed chain.
// The second result is false for states without a start time.
func (p Pot[A]) Duration(now time.Time) (time.Duration, bool) {
	if !p.hasStart() {
		return 0, false
	}
	return now.Sub(p.start), true
}

// RetryPolicy returns the policy carried by p, or retry.None if none was set.
func (p Pot[A]) RetryPolicy() retry.Policy {
	if p.policy == nil {
		return retry.None
	}
	return p.policy
}

// GetOrElse returns the contained data, or def if p is empty.
func (p Pot[A]) GetOrElse(def A) A {
	if p.hasValue() {
		return p.value
	}
	return def
}

// OrElse returns p if it holds data, otherwise other.
func (p Pot[A]) OrElse(other Pot[A]) Pot[A] {
	if p.hasValue() {
		return p
	}
	return other
}

// Filter returns p if it holds data satisfying pred, otherwise an empty Pot.
func (p Pot[A]) Filter(pred func(A) bool) Pot[A] {
	if p.hasValue() && pred(p.value) {
		return p
	}
	return Empty[A]()
}

// ForEach calls f with the contained data, if present.
func (p Pot[A]) ForEach(f func(A)) {
	if p.hasValue() {
		f(p.value)
	}
}

// String renders the state and its payload for debugging.
func (p Pot[A]) String() string {
	switch p.state {
	case StateReady:
		return fmt.Sprintf("Ready(%v)", p.value)
	case StatePendingStale:
		return fmt.Sprintf("PendingStale(%v)", p.value)
	case StateFailed:
		return fmt.Sprintf("Failed(%v)", p.err)
	case StateFailedStale:
		return fmt.Sprintf("FailedStale(%v, %v)", p.value, p.err)
	default:
		return p.state.String()
	}
}

// Map transforms the contained data, preserving state, error, start time
// and retry policy.
func Map[A, B any](p Pot[A], f func(A) B) Pot[B] {
	next := Pot[B]{state: p.state, err: p.err, start: p.start, policy: p.policy}
	if p.hasValue() {
		next.value = f(p.value)
	}
	return next
}

// FlatMap replaces a data-bearing Pot with f applied to its data. Pots
// without data keep their state, error and start time.
func FlatMap[A, B any](p Pot[A], f func(A) Pot[B]) Pot[B] {
	if p.hasValue() {
		return f(p.value)
	}
	return Pot[B]{state: p.state, err: p.err, start: p.start, policy: p.policy}
}

func (p Pot[A]) hasValue() bool {
	switch p.state {
	case StateReady, StatePendingStale, StateFailedStale:
		return true
	}
	return false
}

func (p Pot[A]) hasStart() bool {
	switch p.state {
	case StatePending, StatePendingStale, StateFailed, StateFailedStale:
		return true
	}
	return false
}

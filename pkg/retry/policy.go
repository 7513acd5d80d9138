// Package retry provides pure retry policies for failed asynchronous
// operations.
//
// A Policy is an immutable decision value: consuming an attempt yields a
// successor policy and an Effect describing when the operation should run
// again. Policies never sleep or schedule anything themselves, which keeps
// retry sequences reproducible in tests; callers hand the Effect to a
// sched.Scheduler when they want it executed.
package retry

import (
	"errors"
	"fmt"
	"time"

	"github.com/reflow-ui/reflow/pkg/sched"
)

// ErrExhausted reports that a policy's attempt budget is spent.
// Match with errors.Is.
var ErrExhausted = errors.New("retry: attempts exhausted")

// ExhaustedError wraps the failure that spent the last attempt.
// errors.Is(err, ErrExhausted) matches it.
type ExhaustedError struct {
	Cause error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retry: attempts exhausted: %v", e.Cause)
}

func (e *ExhaustedError) Unwrap() error { return e.Cause }

func (e *ExhaustedError) Is(target error) bool { return target == ErrExhausted }

// Effect is a deferred re-invocation of a failed operation.
type Effect struct {
	// Delay is how long to wait before running Op.
	Delay time.Duration

	// Op re-issues the original asynchronous operation.
	Op func()
}

// ScheduleOn registers the effect with s.
func (e Effect) ScheduleOn(s sched.Scheduler) {
	s.After(e.Delay, e.Op)
}

// Policy decides whether and when a failed operation runs again.
//
// Implementations are immutable values. Retry consumes one attempt: on
// success it returns the successor policy (with one fewer attempt and, for
// backoff, a grown delay) and an Effect that re-issues op after the
// policy's delay. Once the attempt budget is spent it returns an
// *ExhaustedError wrapping cause, and the caller must stop retrying.
type Policy interface {
	Retry(cause error, op func()) (Policy, Effect, error)
}

// None is a policy with no attempts. It is the default for values that
// should never retry.
var None Policy = none{}

type none struct{}

func (none) Retry(cause error, op func()) (Policy, Effect, error) {
	return None, Effect{}, &ExhaustedError{Cause: cause}
}

// Immediate returns a policy that re-runs a failed operation right away,
// at most maxRetries times.
func Immediate(maxRetries int) Policy {
	return immediate{left: maxRetries}
}

type immediate struct {
	left int
}

func (p immediate) Retry(cause error, op func()) (Policy, Effect, error) {
	if p.left <= 0 {
		return p, Effect{}, &ExhaustedError{Cause: cause}
	}
	return immediate{left: p.left - 1}, Effect{Op: op}, nil
}

// Backoff returns a policy whose delay starts at base and is multiplied by
// factor after each attempt, capped at max, for at most maxRetries
// attempts. A factor below 1 is treated as 1 so delays never shrink.
// There is no jitter; successive delays are deterministic.
func Backoff(maxRetries int, base time.Duration, factor float64, max time.Duration) Policy {
	if factor < 1 {
		factor = 1
	}
	if base < 0 {
		base = 0
	}
	if max < base {
		max = base
	}
	return backoff{left: maxRetries, delay: base, factor: factor, max: max}
}

type backoff struct {
	left   int
	delay  time.Duration
	factor float64
	max    time.Duration
}

func (p backoff) Retry(cause error, op func()) (Policy, Effect, error) {
	if p.left <= 0 {
		return p, Effect{}, &ExhaustedError{Cause: cause}
	}
	next := time.Duration(float64(p.delay) * p.factor)
	if next > p.max {
		next = p.max
	}
	return backoff{left: p.left - 1, delay: next, factor: p.factor, max: p.max},
		Effect{Delay: p.delay, Op: op}, nil
}

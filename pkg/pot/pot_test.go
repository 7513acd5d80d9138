package pot

import (
	"errors"
	"testing"
	"time"

	"github.com/reflow-ui/reflow/pkg/retry"
)

var (
	t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	t1 = t0.Add(100 * time.Millisecond)
	t2 = t0.Add(250 * time.Millisecond)
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateEmpty, "Empty"},
		{StatePending, "Pending"},
		{StatePendingStale, "PendingStale"},
		{StateReady, "Ready"},
		{StateFailed, "Failed"},
		{StateFailedStale, "FailedStale"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %s, want %s", tt.state, got, tt.want)
		}
	}
}

func TestPot_Pending(t *testing.T) {
	tests := []struct {
		name      string
		pot       Pot[int]
		wantState State
	}{
		{"from empty", Empty[int](), StatePending},
		{"from ready", Ready(7), StatePendingStale},
		{"from pending", Empty[int]().Pending(t0), StatePending},
		{"from failed", Empty[int]().Pending(t0).Fail(errors.New("x")), StatePending},
		{"from pending stale", Ready(7).Pending(t0), StatePendingStale},
		{"from failed stale", Ready(7).Pending(t0).Fail(errors.New("x")), StatePendingStale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.pot.Pending(t1)
			if got.State() != tt.wantState {
				t.Fatalf("state = %v, want %v", got.State(), tt.wantState)
			}
			start, ok := got.StartTime()
			if !ok || !start.Equal(t1) {
				t.Errorf("start = %v (ok=%v), want %v", start, ok, t1)
			}
			if got.Err() != nil {
				t.Errorf("err = %v, want nil", got.Err())
			}
			if !got.IsPending() {
				t.Error("IsPending() = false after Pending()")
			}
		})
	}
}

func TestPot_Pending_RetainsData(t *testing.T) {
	p := Ready(42).Pending(t1)

	if p.State() != StatePendingStale {
		t.Fatalf("state = %v, want StatePendingStale", p.State())
	}
	if v, ok := p.Value(); !ok || v != 42 {
		t.Errorf("Value() = %d, %v, want 42, true", v, ok)
	}
	if !p.IsStale() {
		t.Error("IsStale() = false for PendingStale")
	}
}

func TestPot_Fail(t *testing.T) {
	boom := errors.New("boom")

	t.Run("pending to failed", func(t *testing.T) {
		p := Empty[int]().Pending(t0).Fail(boom)
		if p.State() != StateFailed {
			t.Fatalf("state = %v, want StateFailed", p.State())
		}
		if p.Err() != boom {
			t.Errorf("err = %v, want %v", p.Err(), boom)
		}
		if start, ok := p.StartTime(); !ok || !start.Equal(t0) {
			t.Errorf("start = %v (ok=%v), want %v unchanged", start, ok, t0)
		}
		if !p.IsEmpty() {
			t.Error("IsEmpty() = false for Failed")
		}
	})

	t.Run("pending stale to failed stale keeps data", func(t *testing.T) {
		p := Ready(9).Pending(t0).Fail(boom)
		if p.State() != StateFailedStale {
			t.Fatalf("state = %v, want StateFailedStale", p.State())
		}
		if v, ok := p.Value(); !ok || v != 9 {
			t.Errorf("Value() = %d, %v, want 9, true", v, ok)
		}
		if p.Err() != boom {
			t.Errorf("err = %v, want %v", p.Err(), boom)
		}
	})
}

func TestPot_Retry(t *testing.T) {
	boom := errors.New("boom")
	policy := retry.Immediate(3)

	t.Run("failed to pending", func(t *testing.T) {
		p := Empty[int]().Pending(t0).Fail(boom).Retry(policy)
		if p.State() != StatePending {
			t.Fatalf("state = %v, want StatePending", p.State())
		}
		if start, ok := p.StartTime(); !ok || !start.Equal(t0) {
			t.Errorf("start = %v (ok=%v), want %v preserved across retry", start, ok, t0)
		}
		if p.Err() != nil {
			t.Errorf("err = %v, want nil", p.Err())
		}
	})

	t.Run("failed stale to pending stale keeps data", func(t *testing.T) {
		p := Ready(5).Pending(t0).Fail(boom).Retry(policy)
		if p.State() != StatePendingStale {
			t.Fatalf("state = %v, want StatePendingStale", p.State())
		}
		if v, ok := p.Value(); !ok || v != 5 {
			t.Errorf("Value() = %d, %v, want 5, true", v, ok)
		}
	})

	t.Run("non-failed is unchanged", func(t *testing.T) {
		for _, p := range []Pot[int]{Empty[int](), Ready(1), Empty[int]().Pending(t0)} {
			if got := p.Retry(policy); got.State() != p.State() {
				t.Errorf("Retry changed state %v to %v", p.State(), got.State())
			}
		}
	})
}

func TestPot_RoundTrip(t *testing.T) {
	p := Empty[int]().
		Pending(t0).
		Fail(errors.New("transient")).
		Retry(retry.Immediate(1)).
		Ready(11)

	if p.State() != StateReady {
		t.Fatalf("state = %v, want StateReady", p.State())
	}
	if v, ok := p.Value(); !ok || v != 11 {
		t.Errorf("Value() = %d, %v, want 11, true", v, ok)
	}
	if p.Err() != nil {
		t.Errorf("residual err = %v, want nil", p.Err())
	}
	if _, ok := p.StartTime(); ok {
		t.Error("StartTime present on Ready")
	}
}

func TestPot_EmptinessInvariant(t *testing.T) {
	boom := errors.New("boom")
	pots := []Pot[int]{
		Empty[int](),
		Empty[int]().Pending(t0),
		Empty[int]().Pending(t0).Fail(boom),
		Empty[int]().Pending(t0).Fail(boom).Retry(retry.None),
		Ready(1),
		Ready(1).Pending(t0),
		Ready(1).Pending(t0).Fail(boom),
		Ready(1).Pending(t0).Fail(boom).Retry(retry.None),
	}

	for _, p := range pots {
		wantEmpty := p.State() == StateEmpty || p.State() == StatePending || p.State() == StateFailed
		if p.IsEmpty() != wantEmpty {
			t.Errorf("%v: IsEmpty() = %v, want %v", p.State(), p.IsEmpty(), wantEmpty)
		}
		if p.NonEmpty() == p.IsEmpty() {
			t.Errorf("%v: NonEmpty() is not the complement of IsEmpty()", p.State())
		}
	}
}

func TestPot_Duration(t *testing.T) {
	boom := errors.New("boom")

	t.Run("absent for empty and ready", func(t *testing.T) {
		for _, p := range []Pot[int]{Empty[int](), Ready(1)} {
			if _, ok := p.Duration(t2); ok {
				t.Errorf("%v: Duration present", p.State())
			}
		}
	})

	t.Run("measures from first pending across retries", func(t *testing.T) {
		p := Empty[int]().Pending(t0).Fail(boom).Retry(retry.Immediate(1))
		d, ok := p.Duration(t2)
		if !ok {
			t.Fatal("Duration absent for Pending")
		}
		if want := t2.Sub(t0); d != want {
			t.Errorf("Duration = %v, want %v", d, want)
		}
	})

	t.Run("refresh restarts the clock", func(t *testing.T) {
		p := Ready(1).Pending(t1)
		d, ok := p.Duration(t2)
		if !ok {
			t.Fatal("Duration absent for PendingStale")
		}
		if want := t2.Sub(t1); d != want {
			t.Errorf("Duration = %v, want %v", d, want)
		}
	})
}

func TestPot_Combinators(t *testing.T) {
	boom := errors.New("boom")

	t.Run("GetOrElse", func(t *testing.T) {
		if got := Ready(3).GetOrElse(0); got != 3 {
			t.Errorf("GetOrElse = %d, want 3", got)
		}
		if got := Empty[int]().GetOrElse(8); got != 8 {
			t.Errorf("GetOrElse = %d, want 8", got)
		}
	})

	t.Run("OrElse", func(t *testing.T) {
		other := Ready(4)
		if got := Empty[int]().OrElse(other); got.GetOrElse(0) != 4 {
			t.Error("OrElse did not fall back")
		}
		if got := Ready(2).OrElse(other); got.GetOrElse(0) != 2 {
			t.Error("OrElse replaced a non-empty Pot")
		}
	})

	t.Run("Filter", func(t *testing.T) {
		even := func(v int) bool { return v%2 == 0 }
		if got := Ready(2).Filter(even); got.IsEmpty() {
			t.Error("Filter dropped a matching value")
		}
		if got := Ready(3).Filter(even); !got.IsEmpty() || got.State() != StateEmpty {
			t.Error("Filter kept a non-matching value")
		}
	})

	t.Run("ForEach", func(t *testing.T) {
		calls := 0
		Ready(1).ForEach(func(int) { calls++ })
		Empty[int]().ForEach(func(int) { calls++ })
		if calls != 1 {
			t.Errorf("ForEach calls = %d, want 1", calls)
		}
	})

	t.Run("Map preserves state and error", func(t *testing.T) {
		p := Ready(21).Pending(t0).Fail(boom)
		got := Map(p, func(v int) string {
			if v != 21 {
				t.Errorf("Map saw %d, want 21", v)
			}
			return "x"
		})
		if got.State() != StateFailedStale {
			t.Errorf("state = %v, want StateFailedStale", got.State())
		}
		if got.Err() != boom {
			t.Errorf("err = %v, want %v", got.Err(), boom)
		}
		if v, ok := got.Value(); !ok || v != "x" {
			t.Errorf("Value() = %q, %v, want \"x\", true", v, ok)
		}
		if start, ok := got.StartTime(); !ok || !start.Equal(t0) {
			t.Errorf("start = %v (ok=%v), want %v", start, ok, t0)
		}
	})

	t.Run("Map on valueless Pot keeps state", func(t *testing.T) {
		p := Empty[int]().Pending(t0)
		got := Map(p, func(v int) string {
			t.Error("Map called f on a valueless Pot")
			return ""
		})
		if got.State() != StatePending {
			t.Errorf("state = %v, want StatePending", got.State())
		}
	})

	t.Run("FlatMap", func(t *testing.T) {
		got := FlatMap(Ready(2), func(v int) Pot[string] { return Ready("two") })
		if v, ok := got.Value(); !ok || v != "two" {
			t.Errorf("Value() = %q, %v, want \"two\", true", v, ok)
		}

		failed := Empty[int]().Pending(t0).Fail(boom)
		got2 := FlatMap(failed, func(v int) Pot[string] {
			t.Error("FlatMap called f on a valueless Pot")
			return Empty[string]()
		})
		if got2.State() != StateFailed || got2.Err() != boom {
			t.Errorf("state = %v err = %v, want StateFailed %v", got2.State(), got2.Err(), boom)
		}
	})
}

func TestPot_RetryPolicyDefaultsToNone(t *testing.T) {
	p := Empty[int]()
	if p.RetryPolicy() != retry.None {
		t.Error("RetryPolicy() != retry.None for zero value")
	}

	policy := retry.Backoff(2, time.Millisecond, 2, time.Second)
	if Empty[int]().WithRetryPolicy(policy).RetryPolicy() == retry.None {
		t.Error("WithRetryPolicy did not carry the policy")
	}
}

func TestPot_String(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		pot  Pot[int]
		want string
	}{
		{Empty[int](), "Empty"},
		{Empty[int]().Pending(t0), "Pending"},
		{Ready(3), "Ready(3)"},
		{Ready(3).Pending(t0), "PendingStale(3)"},
		{Empty[int]().Pending(t0).Fail(boom), "Failed(boom)"},
		{Ready(3).Pending(t0).Fail(boom), "FailedStale(3, boom)"},
	}

	for _, tt := range tests {
		if got := tt.pot.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

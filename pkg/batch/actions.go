package batch

import (
	"time"

	"github.com/reflow-ui/reflow/pkg/dispatch"
)

// Deferred tags an action for frame-synchronized delivery. A FrameBatcher
// in the originating dispatcher's processor chain intercepts the tagged
// action and holds it until the next host rendering frame instead of
// applying it immediately.
func Deferred(a dispatch.Action) dispatch.Action {
	return deferred{action: a}
}

// deferred is the capability tag applied by Deferred.
type deferred struct {
	action dispatch.Action
}

// flushed wraps a deferred action while it re-enters the processor chain
// during a flush. The batcher unwraps it and forwards the original action
// unchanged, so a flushed action is processed exactly once.
type flushed struct {
	action dispatch.Action
}

// FrameStamp is the frame-timestamp marker prepended to every flushed
// batch. All actions coalesced into one frame share this single time
// reference, so downstream animation logic does not see per-action
// timestamps drifting within a batch.
type FrameStamp struct {
	// Time is the high-resolution timestamp the host supplied for the frame.
	Time time.Duration
}

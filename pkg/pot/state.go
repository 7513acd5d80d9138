package pot

// State identifies the lifecycle phase of a Pot.
type State int

const (
	StateEmpty State = iota
	StatePending
	StatePendingStale
	StateReady
	StateFailed
	StateFailedStale
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StatePending:
		return "Pending"
	case StatePendingStale:
		return "PendingStale"
	case StateReady:
		return "Ready"
	case StateFailed:
		return "Failed"
	case StateFailedStale:
		return "FailedStale"
	default:
		return "Unknown"
	}
}

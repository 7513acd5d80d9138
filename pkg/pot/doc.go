// Package pot models potential data: a value that is fetched or mutated
// asynchronously and may not exist yet, may be loading, may have failed,
// and may still hold stale data from a prior successful load.
//
// A Pot is an immutable tagged value in one of six states:
//
//	StateEmpty        no data, no attempt in flight
//	StatePending      first load in flight, no prior data
//	StatePendingStale refresh in flight, prior data still usable
//	StateReady        data loaded
//	StateFailed       load failed, no prior data
//	StateFailedStale  refresh failed, prior data still usable
//
// Transitions return a fresh value; a Pot is never mutated in place. The
// six-state design exists so consumers can distinguish "no value because
// nothing was attempted" from "no value because an attempt is in flight or
// failed", and so a failed refresh never discards data that was valid a
// moment ago.
//
// The start time set by the first Pending transition is preserved across
// Retry transitions, so Duration reports the total elapsed time of the
// whole retry sequence rather than the latest attempt.
package pot

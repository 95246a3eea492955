package driving

import (
	"context"
	"time"
)

// Synchronizer owns the polling loop against the source of truth.
type Synchronizer interface {
	// Run blocks, executing one cycle immediately and then one per poll
	// interval, until the context is cancelled. With polling disabled it
	// returns after the initial cycle.
	Run(ctx context.Context) error

	// SyncOnce executes a single cycle. A cycle already in progress is
	// not overlapped; the call is coalesced and returns immediately.
	SyncOnce(ctx context.Context) error

	// Status returns the current synchroniser state.
	Status() SyncStatus
}

// SyncState names a synchroniser state machine state.
type SyncState string

// Synchroniser states.
const (
	// StateIdle means no cycle is running.
	StateIdle SyncState = "idle"

	// StateChecking means a diff is being requested.
	StateChecking SyncState = "checking"

	// StateRebuilding means changed documents are being re-parsed.
	StateRebuilding SyncState = "rebuilding"

	// StatePublishing means a new snapshot is being assembled.
	StatePublishing SyncState = "publishing"
)

// SyncStatus is a point-in-time view of the synchroniser.
type SyncStatus struct {
	// State is the current state machine state.
	State SyncState

	// Cursor is the last marker acknowledged by the source.
	Cursor string

	// LastSync is when the last successful cycle completed.
	LastSync time.Time

	// LastError is the message of the most recent cycle failure,
	// cleared on the next successful cycle.
	LastError string

	// ConsecutiveFailures counts cycles failed in a row. Failures never
	// become fatal; the count is surfaced for operators.
	ConsecutiveFailures int

	// CyclesCompleted counts successful cycles since startup.
	CyclesCompleted int
}

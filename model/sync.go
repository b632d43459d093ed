package model

import "time"

// SyncPhase is the synchronization state of one cloud account
type SyncPhase string

const (
	SyncIdle    SyncPhase = "idle"
	SyncSyncing SyncPhase = "syncing"
	SyncSuccess SyncPhase = "success"
	SyncError   SyncPhase = "error"
	// SyncUnknown is returned for accounts with no tracked state,
	// including accounts that were disconnected.
	SyncUnknown SyncPhase = "unknown"
)

// SyncState records synchronization progress for one account. Warning may
// coexist with success: a degraded success produced usable data even though
// a dependency was unreachable.
type SyncState struct {
	AccountID  string
	Phase      SyncPhase
	Warning    string
	Err        string
	StartedAt  time.Time
	FinishedAt time.Time
}

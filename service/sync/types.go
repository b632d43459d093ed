package sync

import (
	"context"
	"errors"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

// ErrSyncInFlight is returned when a sync is requested for an account that
// already has one running. Duplicate syncs for one account are rejected
// rather than queued or coalesced.
var ErrSyncInFlight = errors.New("sync already in flight for account")

// Tracker records per-account synchronization state
type Tracker interface {
	Begin(accountID string) error
	Succeed(accountID, warning string)
	Fail(accountID string, err error)
	Status(accountID string) model.SyncState
	Forget(accountID string)
}

// SyncService drives a full account synchronization and exposes its tracked
// state
type SyncService interface {
	SyncAccount(ctx context.Context, accountID string) (model.SyncState, error)
	Status(accountID string) model.SyncState
	Disconnect(accountID string) bool
}

// SyncResult is the caller-facing outcome of one sync call
type SyncResult struct {
	Success bool
	Warning string
	Error   string
}

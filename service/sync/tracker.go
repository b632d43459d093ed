package sync

import (
	stdsync "sync"
	"time"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
)

// tracker is the in-memory state machine: idle → syncing → success|error.
// Entering syncing clears any previous warning; a later sync for the same
// account overwrites prior terminal state.
type tracker struct {
	mu     stdsync.Mutex
	states map[string]*model.SyncState
}

func NewTracker() *tracker {
	return &tracker{
		states: make(map[string]*model.SyncState),
	}
}

// Begin transitions an account into syncing. At most one sync per account
// may be in flight; a second call while syncing returns ErrSyncInFlight.
func (t *tracker) Begin(accountID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if st, ok := t.states[accountID]; ok && st.Phase == model.SyncSyncing {
		return ErrSyncInFlight
	}

	t.states[accountID] = &model.SyncState{
		AccountID: accountID,
		Phase:     model.SyncSyncing,
		StartedAt: time.Now(),
	}
	return nil
}

// Succeed records a terminal success, optionally degraded with a warning
func (t *tracker) Succeed(accountID, warning string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.states[accountID]
	if !ok || st.Phase != model.SyncSyncing {
		return
	}
	st.Phase = model.SyncSuccess
	st.Warning = warning
	st.Err = ""
	st.FinishedAt = time.Now()
}

// Fail records a terminal error
func (t *tracker) Fail(accountID string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.states[accountID]
	if !ok || st.Phase != model.SyncSyncing {
		return
	}
	st.Phase = model.SyncError
	if err != nil {
		st.Err = err.Error()
	}
	st.FinishedAt = time.Now()
}

// Status returns the tracked state, or an unknown phase for accounts that
// were never synced or have been forgotten
func (t *tracker) Status(accountID string) model.SyncState {
	t.mu.Lock()
	defer t.mu.Unlock()

	if st, ok := t.states[accountID]; ok {
		return *st
	}
	return model.SyncState{AccountID: accountID, Phase: model.SyncUnknown}
}

// Forget purges all tracked state for an account, including any cached
// warning text. Called when the account is removed so nothing stale leaks
// after disconnect.
func (t *tracker) Forget(accountID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.states, accountID)
}

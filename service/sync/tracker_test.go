package sync

import (
	"errors"
	"testing"

	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerLifecycle(t *testing.T) {
	tr := NewTracker()

	assert.Equal(t, model.SyncUnknown, tr.Status("acc-1").Phase)

	require.NoError(t, tr.Begin("acc-1"))
	st := tr.Status("acc-1")
	assert.Equal(t, model.SyncSyncing, st.Phase)
	assert.False(t, st.StartedAt.IsZero())

	tr.Succeed("acc-1", "")
	st = tr.Status("acc-1")
	assert.Equal(t, model.SyncSuccess, st.Phase)
	assert.Empty(t, st.Warning)
	assert.False(t, st.FinishedAt.IsZero())
}

func TestTrackerRejectsConcurrentSync(t *testing.T) {
	tr := NewTracker()

	require.NoError(t, tr.Begin("acc-1"))
	assert.ErrorIs(t, tr.Begin("acc-1"), ErrSyncInFlight)

	// another account is unaffected
	assert.NoError(t, tr.Begin("acc-2"))
}

func TestTrackerFail(t *testing.T) {
	tr := NewTracker()

	require.NoError(t, tr.Begin("acc-1"))
	tr.Fail("acc-1", errors.New("token acquisition failed"))

	st := tr.Status("acc-1")
	assert.Equal(t, model.SyncError, st.Phase)
	assert.Equal(t, "token acquisition failed", st.Err)
}

func TestTrackerResyncOverwritesTerminalState(t *testing.T) {
	tr := NewTracker()

	require.NoError(t, tr.Begin("acc-1"))
	tr.Fail("acc-1", errors.New("boom"))

	require.NoError(t, tr.Begin("acc-1"))
	st := tr.Status("acc-1")
	assert.Equal(t, model.SyncSyncing, st.Phase)
	assert.Empty(t, st.Err, "re-entering syncing clears the previous error")

	tr.Succeed("acc-1", "partial data")
	st = tr.Status("acc-1")
	assert.Equal(t, model.SyncSuccess, st.Phase)
	assert.Equal(t, "partial data", st.Warning)
}

func TestTrackerDegradedSuccessKeepsWarning(t *testing.T) {
	tr := NewTracker()

	require.NoError(t, tr.Begin("acc-1"))
	tr.Succeed("acc-1", "cost api unreachable")

	st := tr.Status("acc-1")
	assert.Equal(t, model.SyncSuccess, st.Phase)
	assert.Equal(t, "cost api unreachable", st.Warning)
}

func TestTrackerTerminalTransitionsRequireSyncing(t *testing.T) {
	tr := NewTracker()

	tr.Succeed("acc-1", "")
	tr.Fail("acc-1", errors.New("boom"))

	assert.Equal(t, model.SyncUnknown, tr.Status("acc-1").Phase)
}

func TestTrackerForget(t *testing.T) {
	tr := NewTracker()

	require.NoError(t, tr.Begin("acc-1"))
	tr.Succeed("acc-1", "stale warning")

	tr.Forget("acc-1")

	st := tr.Status("acc-1")
	assert.Equal(t, model.SyncUnknown, st.Phase)
	assert.Empty(t, st.Warning, "forgetting purges cached warnings")
}

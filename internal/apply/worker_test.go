package apply

import (
	"context"
	"sync"
	"testing"

	"autocareer/internal/models"
	"autocareer/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingNotifier struct {
	mu      sync.Mutex
	reports []models.QueueItem
}

func (n *recordingNotifier) ReportAttempt(item models.QueueItem, _ *Result) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reports = append(n.reports, item)
	return nil
}

func seedQueue(t *testing.T, st *store.Memory, n int) []*models.QueueItem {
	t.Helper()
	ctx := context.Background()

	profile := &models.Profile{Name: "Jordan", Email: "jordan@example.com"}
	require.NoError(t, st.CreateProfile(ctx, profile))

	items := make([]*models.QueueItem, 0, n)
	for i := 0; i < n; i++ {
		job := &models.Job{
			Title: "Engineer", Company: "Acme",
			URL:    "https://jobs.example.com/" + string(rune('a'+i)),
			Source: "greenhouse",
		}
		require.NoError(t, st.CreateJob(ctx, job))

		item := &models.QueueItem{JobID: job.ID, ProfileID: profile.ID, Priority: i}
		require.NoError(t, st.Enqueue(ctx, item))
		items = append(items, item)
	}
	return items
}

func TestProcessQueueSubmitsPendingItems(t *testing.T) {
	st := store.NewMemory()
	items := seedQueue(t, st, 3)

	page := newFakePage(`input[type="email"]`, `button[type="submit"]`)
	factory, _ := fakeFactory(page)
	applier := NewApplier(st, factory, fastOptions(t), zap.NewNop())
	notifier := &recordingNotifier{}
	runner := NewRunner(st, applier, 2, notifier, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, runner.ProcessQueue(ctx, false))

	for _, item := range items {
		current, err := st.GetQueueItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, models.QueueSubmitted, current.Status)
		assert.NotNil(t, current.SubmittedAt)
	}
	assert.Len(t, notifier.reports, 3)

	logs, err := st.ListLogs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}

func TestProcessQueueDryRunLeavesItemsPending(t *testing.T) {
	st := store.NewMemory()
	items := seedQueue(t, st, 2)

	page := newFakePage(`input[type="email"]`, `button[type="submit"]`)
	factory, _ := fakeFactory(page)
	applier := NewApplier(st, factory, fastOptions(t), zap.NewNop())
	runner := NewRunner(st, applier, 1, nil, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, runner.ProcessQueue(ctx, true))

	for _, item := range items {
		current, err := st.GetQueueItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, models.QueuePending, current.Status)
	}
}

func TestProcessQueueSecondRunIsNoOp(t *testing.T) {
	st := store.NewMemory()
	seedQueue(t, st, 2)

	page := newFakePage(`input[type="email"]`, `button[type="submit"]`)
	factory, _ := fakeFactory(page)
	applier := NewApplier(st, factory, fastOptions(t), zap.NewNop())
	runner := NewRunner(st, applier, 1, nil, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, runner.ProcessQueue(ctx, false))

	logs, err := st.ListLogs(ctx, 0)
	require.NoError(t, err)
	firstRun := len(logs)

	// Everything is submitted now; running again must not attempt anything.
	require.NoError(t, runner.ProcessQueue(ctx, false))

	logs, err = st.ListLogs(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, firstRun, len(logs))
}

func TestProcessQueueManualRequiredStaysPending(t *testing.T) {
	st := store.NewMemory()
	items := seedQueue(t, st, 1)

	// No submit control on the page.
	page := newFakePage(`input[type="email"]`)
	factory, _ := fakeFactory(page)
	applier := NewApplier(st, factory, fastOptions(t), zap.NewNop())
	runner := NewRunner(st, applier, 1, nil, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, runner.ProcessQueue(ctx, false))

	current, err := st.GetQueueItem(ctx, items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.QueuePending, current.Status)
}

func TestProcessQueueEmpty(t *testing.T) {
	st := store.NewMemory()
	factory, _ := fakeFactory(newFakePage())
	applier := NewApplier(st, factory, fastOptions(t), zap.NewNop())
	runner := NewRunner(st, applier, 4, nil, zap.NewNop())

	require.NoError(t, runner.ProcessQueue(context.Background(), false))
}

package apply

import (
	"context"
	"fmt"
	"testing"
	"time"

	"autocareer/internal/models"
	"autocareer/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fastOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		ScreenshotDir: t.TempDir(),
		SettleDelay:   time.Millisecond,
		SubmitPause:   time.Millisecond,
		PostClickWait: time.Millisecond,
	}
}

func seedAttempt(t *testing.T) (*store.Memory, *models.Job, *models.Profile, *models.Draft) {
	t.Helper()
	st := store.NewMemory()
	ctx := context.Background()

	profile := &models.Profile{
		Name:   "Jordan Diaz",
		Email:  "jordan@example.com",
		Phone:  "555-0100",
		Links:  "https://linkedin.com/in/jordan,https://github.com/jordan",
		Skills: "Python, SQL",
	}
	require.NoError(t, st.CreateProfile(ctx, profile))

	job := &models.Job{
		Title:   "Backend Engineer",
		Company: "Acme Robotics",
		URL:     "https://jobs.example.com/backend-1",
		Source:  "greenhouse",
	}
	require.NoError(t, st.CreateJob(ctx, job))

	draft := &models.Draft{
		JobID:       job.ID,
		ProfileID:   profile.ID,
		CoverLetter: "Dear hiring team, I would love to join Acme Robotics.",
	}
	require.NoError(t, st.CreateDraft(ctx, draft))

	return st, job, profile, draft
}

func TestApplyDryRunNeverWrites(t *testing.T) {
	st, job, profile, draft := seedAttempt(t)
	page := newFakePage(
		`input[name*="name"]`,
		`input[type="email"]`,
		`textarea`,
		`button[type="submit"]`,
	)
	factory, session := fakeFactory(page)
	applier := NewApplier(st, factory, fastOptions(t), zap.NewNop())

	result, err := applier.Apply(context.Background(), job.ID, profile.ID, &draft.ID, true)
	require.NoError(t, err)

	assert.Equal(t, StatusDryRunComplete, result.Status)
	assert.True(t, result.DryRun)
	assert.Equal(t, FillDryRun, result.FieldsFilled[CategoryName])
	assert.Equal(t, FillDryRun, result.FieldsFilled[CategoryEmail])
	assert.Equal(t, FillDryRun, result.FieldsFilled[CategoryCoverLetter])
	assert.NotContains(t, result.FieldsFilled, CategoryLinkedIn)

	// Nothing touched the page beyond navigation and probes.
	assert.Empty(t, page.fills)
	assert.Empty(t, page.clicks)
	assert.True(t, session.closed)

	// The session still produced the review screenshot.
	assert.Contains(t, result.ScreenshotPath, fmt.Sprintf("application_%d.png", job.ID))
	assert.Len(t, page.screenshots, 1)
}

func TestApplyFillsAndSubmits(t *testing.T) {
	st, job, profile, draft := seedAttempt(t)
	page := newFakePage(
		`input[name*="name"]`,
		`input[type="email"]`,
		`input[name*="linkedin"]`,
		`textarea`,
		`button[type="submit"]`,
	)
	factory, _ := fakeFactory(page)
	applier := NewApplier(st, factory, fastOptions(t), zap.NewNop())

	result, err := applier.Apply(context.Background(), job.ID, profile.ID, &draft.ID, false)
	require.NoError(t, err)

	assert.Equal(t, StatusSubmitted, result.Status)
	assert.Equal(t, FillOK, result.FieldsFilled[CategoryName])
	assert.Equal(t, FillOK, result.FieldsFilled[CategoryEmail])
	assert.Equal(t, FillOK, result.FieldsFilled[CategoryLinkedIn])
	assert.Equal(t, FillOK, result.FieldsFilled[CategoryCoverLetter])

	assert.Equal(t, "Jordan Diaz", page.fills[`input[name*="name"]`])
	assert.Equal(t, "jordan@example.com", page.fills[`input[type="email"]`])
	assert.Equal(t, "https://linkedin.com/in/jordan", page.fills[`input[name*="linkedin"]`])
	assert.Equal(t, draft.CoverLetter, page.fills[`textarea`])
	assert.Equal(t, []string{`button[type="submit"]`}, page.clicks)
}

func TestApplyManualRequiredWithoutSubmitControl(t *testing.T) {
	st, job, profile, draft := seedAttempt(t)
	page := newFakePage(`input[type="email"]`)
	factory, _ := fakeFactory(page)
	applier := NewApplier(st, factory, fastOptions(t), zap.NewNop())

	result, err := applier.Apply(context.Background(), job.ID, profile.ID, &draft.ID, false)
	require.NoError(t, err)

	assert.Equal(t, StatusManualRequired, result.Status)
	assert.Contains(t, result.Message, "Manual submission required")
	assert.Empty(t, page.clicks)
}

func TestApplyFillMismatchContinuesRun(t *testing.T) {
	st, job, profile, draft := seedAttempt(t)
	page := newFakePage(`input[type="email"]`, `input[type="tel"]`)
	// The email widget mangles its input; read-back verification catches it.
	page.values = map[string]string{`input[type="email"]`: "jordan@example"}
	factory, _ := fakeFactory(page)
	applier := NewApplier(st, factory, fastOptions(t), zap.NewNop())

	result, err := applier.Apply(context.Background(), job.ID, profile.ID, &draft.ID, false)
	require.NoError(t, err)

	assert.Equal(t, FillFailed, result.FieldsFilled[CategoryEmail])
	assert.Equal(t, FillOK, result.FieldsFilled[CategoryPhone])
	assert.Equal(t, StatusManualRequired, result.Status)
}

func TestApplyNavigationErrorIsAudited(t *testing.T) {
	st, job, profile, _ := seedAttempt(t)
	page := newFakePage()
	page.gotoErr = fmt.Errorf("net::ERR_NAME_NOT_RESOLVED")
	factory, session := fakeFactory(page)
	applier := NewApplier(st, factory, fastOptions(t), zap.NewNop())

	result, err := applier.Apply(context.Background(), job.ID, profile.ID, nil, false)
	require.NoError(t, err)

	assert.Equal(t, StatusError, result.Status)
	assert.Contains(t, result.Message, "navigation failed")
	assert.True(t, session.closed)

	logs, err := st.ListLogs(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, string(StatusError), logs[0].Status)
	require.NotNil(t, logs[0].ErrorMessage)
	assert.Contains(t, *logs[0].ErrorMessage, "navigation failed")
}

func TestApplySessionFailureIsAudited(t *testing.T) {
	st, job, profile, _ := seedAttempt(t)
	applier := NewApplier(st, failingFactory(), fastOptions(t), zap.NewNop())

	result, err := applier.Apply(context.Background(), job.ID, profile.ID, nil, true)
	require.NoError(t, err)
	assert.Equal(t, StatusError, result.Status)

	logs, err := st.ListLogs(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestApplyExactlyOneLogPerAttempt(t *testing.T) {
	st, job, profile, draft := seedAttempt(t)
	page := newFakePage(`input[type="email"]`, `button[type="submit"]`)
	factory, _ := fakeFactory(page)
	applier := NewApplier(st, factory, fastOptions(t), zap.NewNop())

	ctx := context.Background()
	_, err := applier.Apply(ctx, job.ID, profile.ID, &draft.ID, true)
	require.NoError(t, err)
	_, err = applier.Apply(ctx, job.ID, profile.ID, &draft.ID, false)
	require.NoError(t, err)

	logs, err := st.ListLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	// Newest first; the real run carries the draft content.
	assert.Equal(t, string(StatusSubmitted), logs[0].Status)
	assert.Equal(t, string(StatusDryRunComplete), logs[1].Status)
	require.NotNil(t, logs[0].DraftContent)
	assert.Equal(t, draft.CoverLetter, *logs[0].DraftContent)
}

func TestApplyRejectsForeignDraft(t *testing.T) {
	st, _, profile, draft := seedAttempt(t)
	ctx := context.Background()

	other := &models.Job{Title: "Other", Company: "Acme", URL: "https://jobs.example.com/other-1", Source: "lever"}
	require.NoError(t, st.CreateJob(ctx, other))

	factory, _ := fakeFactory(newFakePage())
	applier := NewApplier(st, factory, fastOptions(t), zap.NewNop())

	// The draft belongs to another job; the attempt must not start.
	_, err := applier.Apply(ctx, other.ID, profile.ID, &draft.ID, false)
	assert.ErrorIs(t, err, store.ErrDraftMismatch)

	logs, err := st.ListLogs(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestApplyUnknownJob(t *testing.T) {
	st, _, profile, _ := seedAttempt(t)
	factory, _ := fakeFactory(newFakePage())
	applier := NewApplier(st, factory, fastOptions(t), zap.NewNop())

	_, err := applier.Apply(context.Background(), 9999, profile.ID, nil, true)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestApplyWithoutDraftFillsIdentityOnly(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	profile := &models.Profile{Name: "Sam", Email: "sam@example.com"}
	require.NoError(t, st.CreateProfile(ctx, profile))
	job := &models.Job{Title: "QA", Company: "Acme", URL: "https://jobs.example.com/qa-1", Source: "lever"}
	require.NoError(t, st.CreateJob(ctx, job))

	page := newFakePage(`input[type="email"]`, `textarea`)
	factory, _ := fakeFactory(page)
	applier := NewApplier(st, factory, fastOptions(t), zap.NewNop())

	result, err := applier.Apply(ctx, job.ID, profile.ID, nil, false)
	require.NoError(t, err)

	// No draft exists, so the cover letter textarea is left alone.
	assert.Equal(t, FillOK, result.FieldsFilled[CategoryEmail])
	assert.NotContains(t, result.FieldsFilled, CategoryCoverLetter)
	assert.Nil(t, result.DraftID)
}

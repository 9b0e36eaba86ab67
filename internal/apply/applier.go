package apply

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"autocareer/internal/models"
	"autocareer/internal/store"

	"go.uber.org/zap"
)

// Status is the terminal state of one application attempt.
type Status string

const (
	StatusDryRunComplete Status = "dry_run_complete"
	StatusSubmitted      Status = "submitted"
	StatusManualRequired Status = "manual_required"
	StatusError          Status = "error"
)

// Fill outcomes recorded per category.
const (
	FillDryRun = "dry_run"
	FillOK     = "filled"
	FillFailed = "failed"
)

// submitSelectors are probed in order; the first match is the submit control.
var submitSelectors = []string{
	`button[type="submit"]`,
	`input[type="submit"]`,
	`button:has-text("Submit")`,
	`button:has-text("Apply")`,
	`button[name*="submit"]`,
}

// Result is what one attempt reports back to the caller.
type Result struct {
	JobID          int64               `json:"job_id"`
	Status         Status              `json:"status"`
	Message        string              `json:"message"`
	DryRun         bool                `json:"dry_run"`
	FieldsDetected map[Category]int    `json:"fields_detected"`
	FieldsFilled   map[Category]string `json:"fields_filled"`
	ScreenshotPath string              `json:"screenshot,omitempty"`
	DraftID        *int64              `json:"draft_id,omitempty"`
}

// Options tune attempt timing and artifact placement.
type Options struct {
	ScreenshotDir string
	SettleDelay   time.Duration
	SubmitPause   time.Duration
	PostClickWait time.Duration
}

// Applier performs one application attempt at a time against an isolated
// browser session. Filling is best-effort and independent per category; the
// dry-run contract guarantees no write and no submit ever happens.
type Applier struct {
	store    store.Store
	sessions SessionFactory
	opts     Options
	log      *zap.Logger
}

func NewApplier(st store.Store, sessions SessionFactory, opts Options, log *zap.Logger) *Applier {
	if opts.SettleDelay == 0 {
		opts.SettleDelay = 3 * time.Second
	}
	if opts.SubmitPause == 0 {
		opts.SubmitPause = 10 * time.Second
	}
	if opts.PostClickWait == 0 {
		opts.PostClickWait = 3 * time.Second
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = filepath.Join("logs", "screenshots")
	}
	return &Applier{store: st, sessions: sessions, opts: opts, log: log}
}

// Apply runs one attempt. Exactly one audit log entry is appended whatever
// the outcome; a store failure appending it is the only error that can
// escape alongside an unknown job/profile id.
func (a *Applier) Apply(ctx context.Context, jobID, profileID int64, draftID *int64, dryRun bool) (*Result, error) {
	job, err := a.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	profile, err := a.store.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	// Draft is optional; an attempt without a letter still fills identity
	// fields.
	var draft *models.Draft
	if draftID != nil {
		draft, err = a.store.GetDraft(ctx, *draftID)
	} else {
		draft, err = a.store.LatestDraftForJob(ctx, jobID)
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	// A caller-supplied draft must belong to this job; filling another job's
	// letter into the form is never acceptable.
	if draft != nil && draft.JobID != jobID {
		return nil, store.ErrDraftMismatch
	}

	result := &Result{
		JobID:          jobID,
		DryRun:         dryRun,
		FieldsDetected: make(map[Category]int),
		FieldsFilled:   make(map[Category]string),
	}
	if draft != nil {
		result.DraftID = &draft.ID
	}

	a.runAttempt(ctx, job, profile, draft, dryRun, result)

	entry := &models.ApplicationLogEntry{
		JobID:     jobID,
		ProfileID: profileID,
		JobURL:    job.URL,
		Company:   job.Company,
		Action:    "apply",
		Status:    string(result.Status),
	}
	if draft != nil {
		entry.DraftID = &draft.ID
		entry.DraftContent = &draft.CoverLetter
	}
	if result.Status == StatusError {
		entry.ErrorMessage = &result.Message
	}
	if err := a.store.AppendLog(ctx, entry); err != nil {
		return result, err
	}

	a.log.Info("application attempt finished",
		zap.Int64("job_id", jobID),
		zap.String("status", string(result.Status)),
		zap.Bool("dry_run", dryRun))

	return result, nil
}

func (a *Applier) runAttempt(ctx context.Context, job *models.Job, profile *models.Profile, draft *models.Draft, dryRun bool, result *Result) {
	session, err := a.sessions()
	if err != nil {
		result.Status = StatusError
		result.Message = fmt.Sprintf("could not open browser session: %v", err)
		return
	}
	// Torn down on every exit path so contexts never leak.
	defer session.Close()

	page := session.Page()

	a.log.Info("navigating to application page", zap.String("url", job.URL))
	if err := page.Goto(job.URL); err != nil {
		result.Status = StatusError
		result.Message = fmt.Sprintf("navigation failed: %v", err)
		return
	}

	// Let client-rendered forms settle before probing.
	if !sleepCtx(ctx, a.opts.SettleDelay) {
		result.Status = StatusError
		result.Message = "attempt cancelled"
		return
	}

	detected := DetectFields(page)
	for cat, sels := range detected {
		result.FieldsDetected[cat] = len(sels)
	}
	a.log.Info("detected form fields", zap.Any("fields", result.FieldsDetected))

	for _, cat := range fillOrder {
		selectors := detected[cat]
		value := a.valueFor(cat, profile, draft)
		if len(selectors) == 0 || value == "" {
			continue
		}

		// Only the first matched locator per category, one attempt each.
		selector := selectors[0]
		if dryRun {
			a.log.Info("[DRY RUN] would fill field",
				zap.String("category", string(cat)), zap.String("selector", selector))
			result.FieldsFilled[cat] = FillDryRun
			continue
		}

		if err := a.fillField(page, selector, value); err != nil {
			a.log.Warn("could not fill field",
				zap.String("category", string(cat)), zap.String("selector", selector), zap.Error(err))
			result.FieldsFilled[cat] = FillFailed
		} else {
			result.FieldsFilled[cat] = FillOK
		}
	}

	// The human-reviewable artifact for both modes, captured before any
	// submission decision.
	screenshotPath := filepath.Join(a.opts.ScreenshotDir, fmt.Sprintf("application_%d.png", job.ID))
	if err := os.MkdirAll(a.opts.ScreenshotDir, 0755); err != nil {
		a.log.Warn("could not create screenshot directory", zap.Error(err))
	} else if err := page.Screenshot(screenshotPath); err != nil {
		a.log.Warn("could not capture screenshot", zap.Error(err))
	} else {
		result.ScreenshotPath = screenshotPath
	}

	if dryRun {
		total := 0
		for _, n := range result.FieldsDetected {
			total += n
		}
		result.Status = StatusDryRunComplete
		result.Message = fmt.Sprintf("Dry run completed. Detected %d form fields. Screenshot saved.", total)
		return
	}

	a.submit(ctx, page, result)
}

// valueFor picks the profile/draft value to write for a category. Empty
// means the category is skipped.
func (a *Applier) valueFor(cat Category, profile *models.Profile, draft *models.Draft) string {
	links := ResolveLinks(profile.Links)
	switch cat {
	case CategoryName:
		return profile.Name
	case CategoryEmail:
		return profile.Email
	case CategoryPhone:
		return profile.Phone
	case CategoryLinkedIn:
		return links.LinkedIn
	case CategoryWebsite:
		return links.Website
	case CategoryGitHub:
		return links.GitHub
	case CategoryCoverLetter:
		if draft != nil {
			return draft.CoverLetter
		}
	}
	return ""
}

// fillField sets a value once and verifies it stuck. No retry loop: the form
// is a one-shot external resource and blind rewrites risk corrupting its
// state.
func (a *Applier) fillField(page Page, selector, value string) error {
	if err := page.Fill(selector, value); err != nil {
		return err
	}
	filled, err := page.Value(selector)
	if err != nil {
		return err
	}
	if filled != value {
		return fmt.Errorf("field value mismatch for %s", selector)
	}
	return nil
}

func (a *Applier) submit(ctx context.Context, page Page, result *Result) {
	for _, selector := range submitSelectors {
		ok, err := page.Exists(selector)
		if err != nil || !ok {
			continue
		}

		a.log.Info("found submit control, pausing for manual review",
			zap.String("selector", selector), zap.Duration("pause", a.opts.SubmitPause))
		if !sleepCtx(ctx, a.opts.SubmitPause) {
			result.Status = StatusError
			result.Message = "attempt cancelled before submission"
			return
		}

		if err := page.Click(selector); err != nil {
			a.log.Warn("submit click failed", zap.String("selector", selector), zap.Error(err))
			continue
		}
		sleepCtx(ctx, a.opts.PostClickWait)

		result.Status = StatusSubmitted
		result.Message = "Application submitted successfully"
		return
	}

	// Not an error: a missing submit control signals a necessary human step.
	result.Status = StatusManualRequired
	result.Message = "Could not find submit button. Manual submission required."
}

// sleepCtx waits for d unless the context ends first. Returns false on
// cancellation.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

package store

import (
	"context"
	"errors"

	"autocareer/internal/models"
)

// ErrNotFound is returned when a requested row does not exist. Callers treat
// it as fatal to the operation, unlike automation or model failures.
var ErrNotFound = errors.New("not found")

// ErrDraftMismatch is returned when a draft is referenced for a job it does
// not belong to.
var ErrDraftMismatch = errors.New("draft does not belong to job")

// Store is the persistence handle injected into every component. One logical
// record insert/update per call; no partial writes are ever visible.
type Store interface {
	// Profiles (owned by the ingestion side; the core only reads them)
	CreateProfile(ctx context.Context, p *models.Profile) error
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)

	// Jobs. CreateJob is an insert keyed by the unique URL; on conflict the
	// existing row id is returned in job.ID.
	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id int64) (*models.Job, error)
	ListJobs(ctx context.Context, status models.JobStatus, limit int) ([]models.Job, error)
	UpdateJobAnalysis(ctx context.Context, jobID int64, score float64, rationale string) error

	// Drafts
	CreateDraft(ctx context.Context, d *models.Draft) error
	GetDraft(ctx context.Context, id int64) (*models.Draft, error)
	LatestDraftForJob(ctx context.Context, jobID int64) (*models.Draft, error)
	UpdateDraft(ctx context.Context, id int64, upd models.DraftUpdate) error

	// Audit trail. Append-only: there is deliberately no update or delete.
	AppendLog(ctx context.Context, entry *models.ApplicationLogEntry) error
	ListLogs(ctx context.Context, limit int) ([]models.ApplicationLogEntry, error)

	// Queue. Enqueue rejects a draft id that belongs to another job with
	// ErrDraftMismatch; a zero draft id means no draft.
	Enqueue(ctx context.Context, item *models.QueueItem) error
	GetQueueItem(ctx context.Context, id int64) (*models.QueueItem, error)
	ListQueue(ctx context.Context, status models.QueueStatus) ([]models.QueueItem, error)
	// MarkQueueSubmitted transitions pending->submitted and stamps
	// submitted_at. Returns false when the item was not pending, so a second
	// call is a detectable no-op.
	MarkQueueSubmitted(ctx context.Context, id int64) (bool, error)

	Close()
}

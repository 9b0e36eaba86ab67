package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"autocareer/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Postgres struct {
	db *pgxpool.Pool
}

var _ Store = (*Postgres)(nil)

// ConnectPostgres opens a pooled connection and ensures the schema exists.
func ConnectPostgres(ctx context.Context, connString string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// Connection poolers (PgBouncer in transaction mode) do not support
	// prepared statements, so the statement cache stays off.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := &Postgres{db: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Postgres) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *Postgres) migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
CREATE TABLE IF NOT EXISTS profiles (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT,
	phone TEXT,
	resume_text TEXT NOT NULL,
	skills TEXT,
	experience TEXT,
	education TEXT,
	links TEXT,
	vector_db_id TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS jobs (
	id BIGSERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	company TEXT NOT NULL,
	location TEXT,
	salary_min INTEGER,
	salary_max INTEGER,
	description TEXT,
	requirements TEXT,
	url TEXT UNIQUE NOT NULL,
	source TEXT NOT NULL,
	fit_score DOUBLE PRECISION,
	fit_rationale TEXT,
	scraped_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	analyzed_at TIMESTAMPTZ,
	status TEXT NOT NULL DEFAULT 'discovered'
);

CREATE TABLE IF NOT EXISTS drafts (
	id BIGSERIAL PRIMARY KEY,
	job_id BIGINT NOT NULL REFERENCES jobs(id),
	profile_id BIGINT NOT NULL REFERENCES profiles(id),
	cover_letter TEXT,
	custom_answers TEXT,
	company_context TEXT,
	generated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	edited_at TIMESTAMPTZ,
	status TEXT NOT NULL DEFAULT 'draft'
);

CREATE TABLE IF NOT EXISTS application_logs (
	id BIGSERIAL PRIMARY KEY,
	job_id BIGINT NOT NULL REFERENCES jobs(id),
	profile_id BIGINT NOT NULL REFERENCES profiles(id),
	draft_id BIGINT REFERENCES drafts(id),
	job_url TEXT NOT NULL,
	company TEXT NOT NULL,
	action TEXT NOT NULL,
	status TEXT NOT NULL,
	draft_content TEXT,
	error_message TEXT,
	timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS queue (
	id BIGSERIAL PRIMARY KEY,
	job_id BIGINT NOT NULL REFERENCES jobs(id),
	profile_id BIGINT NOT NULL REFERENCES profiles(id),
	draft_id BIGINT REFERENCES drafts(id),
	priority INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'pending',
	scheduled_at TIMESTAMPTZ,
	submitted_at TIMESTAMPTZ
);`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// ---------------- PROFILE OPERATIONS ----------------

func (s *Postgres) CreateProfile(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profiles (name, email, phone, resume_text, skills, experience, education, links, vector_db_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := s.db.QueryRow(ctx, query, p.Name, p.Email, p.Phone, p.ResumeText, p.Skills, p.Experience, p.Education, p.Links, p.VectorDBID).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (s *Postgres) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	var p models.Profile
	query := `SELECT id, name, email, phone, resume_text, skills, experience, education, links, vector_db_id, created_at, updated_at
		FROM profiles WHERE id = $1`
	err := s.db.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.ResumeText, &p.Skills, &p.Experience, &p.Education, &p.Links, &p.VectorDBID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// ---------------- JOB OPERATIONS ----------------

// CreateJob inserts a new posting. The URL is unique; a repeat insert keeps
// the existing row and returns its id.
func (s *Postgres) CreateJob(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (title, company, location, salary_min, salary_max, description, requirements, url, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (url) DO UPDATE SET url = EXCLUDED.url
		RETURNING id, scraped_at, status`

	err := s.db.QueryRow(ctx, query, job.Title, job.Company, job.Location, job.SalaryMin, job.SalaryMax,
		job.Description, job.Requirements, job.URL, job.Source).
		Scan(&job.ID, &job.ScrapedAt, &job.Status)
	if err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

func (s *Postgres) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	var j models.Job
	// fit_rationale is NULL until the job is analyzed.
	query := `SELECT id, title, company, location, salary_min, salary_max, description, requirements,
		url, source, fit_score, COALESCE(fit_rationale, ''), scraped_at, analyzed_at, status FROM jobs WHERE id = $1`
	err := s.db.QueryRow(ctx, query, id).Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.SalaryMin, &j.SalaryMax,
		&j.Description, &j.Requirements, &j.URL, &j.Source, &j.FitScore, &j.FitRationale, &j.ScrapedAt, &j.AnalyzedAt, &j.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &j, nil
}

func (s *Postgres) ListJobs(ctx context.Context, status models.JobStatus, limit int) ([]models.Job, error) {
	query := `SELECT id, title, company, location, salary_min, salary_max, description, requirements,
		url, source, fit_score, COALESCE(fit_rationale, ''), scraped_at, analyzed_at, status FROM jobs `
	// LIMIT NULL means unlimited.
	var lim any
	if limit > 0 {
		lim = limit
	}
	args := []any{}
	if status != "" {
		query += `WHERE status = $1 ORDER BY fit_score DESC NULLS LAST, scraped_at DESC LIMIT $2`
		args = append(args, status, lim)
	} else {
		query += `ORDER BY fit_score DESC NULLS LAST, scraped_at DESC LIMIT $1`
		args = append(args, lim)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		var j models.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.SalaryMin, &j.SalaryMax,
			&j.Description, &j.Requirements, &j.URL, &j.Source, &j.FitScore, &j.FitRationale,
			&j.ScrapedAt, &j.AnalyzedAt, &j.Status); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// UpdateJobAnalysis records the fit score and moves the job to analyzed.
// A job never reverts to discovered.
func (s *Postgres) UpdateJobAnalysis(ctx context.Context, jobID int64, score float64, rationale string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE jobs SET fit_score = $1, fit_rationale = $2, status = $3, analyzed_at = now() WHERE id = $4`,
		score, rationale, models.JobAnalyzed, jobID)
	if err != nil {
		return fmt.Errorf("failed to update job analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------- DRAFT OPERATIONS ----------------

func (s *Postgres) CreateDraft(ctx context.Context, d *models.Draft) error {
	if d.Status == "" {
		d.Status = models.DraftPending
	}
	query := `
		INSERT INTO drafts (job_id, profile_id, cover_letter, custom_answers, company_context, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, generated_at`

	err := s.db.QueryRow(ctx, query, d.JobID, d.ProfileID, d.CoverLetter, d.CustomAnswers, d.CompanyContext, d.Status).
		Scan(&d.ID, &d.GeneratedAt)
	if err != nil {
		return fmt.Errorf("failed to create draft: %w", err)
	}
	return nil
}

func (s *Postgres) GetDraft(ctx context.Context, id int64) (*models.Draft, error) {
	var d models.Draft
	query := `SELECT id, job_id, profile_id, cover_letter, custom_answers, company_context, generated_at, edited_at, status
		FROM drafts WHERE id = $1`
	err := s.db.QueryRow(ctx, query, id).
		Scan(&d.ID, &d.JobID, &d.ProfileID, &d.CoverLetter, &d.CustomAnswers, &d.CompanyContext, &d.GeneratedAt, &d.EditedAt, &d.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return &d, nil
}

func (s *Postgres) LatestDraftForJob(ctx context.Context, jobID int64) (*models.Draft, error) {
	var d models.Draft
	query := `SELECT id, job_id, profile_id, cover_letter, custom_answers, company_context, generated_at, edited_at, status
		FROM drafts WHERE job_id = $1 ORDER BY generated_at DESC, id DESC LIMIT 1`
	err := s.db.QueryRow(ctx, query, jobID).
		Scan(&d.ID, &d.JobID, &d.ProfileID, &d.CoverLetter, &d.CustomAnswers, &d.CompanyContext, &d.GeneratedAt, &d.EditedAt, &d.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest draft: %w", err)
	}
	return &d, nil
}

// UpdateDraft applies a partial edit and stamps edited_at.
func (s *Postgres) UpdateDraft(ctx context.Context, id int64, upd models.DraftUpdate) error {
	sets := "edited_at = now()"
	args := []any{}
	i := 1
	if upd.CoverLetter != nil {
		sets += fmt.Sprintf(", cover_letter = $%d", i)
		args = append(args, *upd.CoverLetter)
		i++
	}
	if upd.CustomAnswers != nil {
		sets += fmt.Sprintf(", custom_answers = $%d", i)
		args = append(args, *upd.CustomAnswers)
		i++
	}
	if upd.Status != nil {
		sets += fmt.Sprintf(", status = $%d", i)
		args = append(args, *upd.Status)
		i++
	}
	args = append(args, id)

	tag, err := s.db.Exec(ctx, fmt.Sprintf("UPDATE drafts SET %s WHERE id = $%d", sets, i), args...)
	if err != nil {
		return fmt.Errorf("failed to update draft: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------- AUDIT LOG OPERATIONS ----------------

// AppendLog inserts one audit row. The table has no update path on purpose.
func (s *Postgres) AppendLog(ctx context.Context, entry *models.ApplicationLogEntry) error {
	query := `
		INSERT INTO application_logs (job_id, profile_id, draft_id, job_url, company, action, status, draft_content, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, timestamp`

	err := s.db.QueryRow(ctx, query, entry.JobID, entry.ProfileID, entry.DraftID, entry.JobURL, entry.Company,
		entry.Action, entry.Status, entry.DraftContent, entry.ErrorMessage).
		Scan(&entry.ID, &entry.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to append application log: %w", err)
	}
	return nil
}

func (s *Postgres) ListLogs(ctx context.Context, limit int) ([]models.ApplicationLogEntry, error) {
	query := `SELECT id, job_id, profile_id, draft_id, job_url, company, action, status, draft_content, error_message, timestamp
		FROM application_logs ORDER BY timestamp DESC, id DESC LIMIT $1`
	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := s.db.Query(ctx, query, lim)
	if err != nil {
		return nil, fmt.Errorf("failed to list application logs: %w", err)
	}
	defer rows.Close()

	var entries []models.ApplicationLogEntry
	for rows.Next() {
		var e models.ApplicationLogEntry
		if err := rows.Scan(&e.ID, &e.JobID, &e.ProfileID, &e.DraftID, &e.JobURL, &e.Company,
			&e.Action, &e.Status, &e.DraftContent, &e.ErrorMessage, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan application log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ---------------- QUEUE OPERATIONS ----------------

func (s *Postgres) Enqueue(ctx context.Context, item *models.QueueItem) error {
	if item.Status == "" {
		item.Status = models.QueuePending
	}

	// The FK only proves the draft exists; ownership needs an explicit check.
	if item.DraftID != 0 {
		var draftJobID int64
		err := s.db.QueryRow(ctx, `SELECT job_id FROM drafts WHERE id = $1`, item.DraftID).Scan(&draftJobID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to check draft ownership: %w", err)
		}
		if draftJobID != item.JobID {
			return ErrDraftMismatch
		}
	}

	query := `
		INSERT INTO queue (job_id, profile_id, draft_id, priority, status, scheduled_at)
		VALUES ($1, $2, NULLIF($3, 0), $4, $5, $6)
		RETURNING id`

	err := s.db.QueryRow(ctx, query, item.JobID, item.ProfileID, item.DraftID, item.Priority, item.Status, item.ScheduledAt).
		Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to enqueue application: %w", err)
	}
	return nil
}

func (s *Postgres) GetQueueItem(ctx context.Context, id int64) (*models.QueueItem, error) {
	var q models.QueueItem
	query := `SELECT id, job_id, profile_id, COALESCE(draft_id, 0), priority, status, scheduled_at, submitted_at FROM queue WHERE id = $1`
	err := s.db.QueryRow(ctx, query, id).
		Scan(&q.ID, &q.JobID, &q.ProfileID, &q.DraftID, &q.Priority, &q.Status, &q.ScheduledAt, &q.SubmittedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get queue item: %w", err)
	}
	return &q, nil
}

// ListQueue returns items in processing order: priority descending, then
// insertion order as the FIFO tie-break.
func (s *Postgres) ListQueue(ctx context.Context, status models.QueueStatus) ([]models.QueueItem, error) {
	query := `
		SELECT q.id, q.job_id, q.profile_id, COALESCE(q.draft_id, 0), q.priority, q.status, q.scheduled_at, q.submitted_at,
		       j.title, j.company, j.url
		FROM queue q
		JOIN jobs j ON q.job_id = j.id
		WHERE q.status = $1
		ORDER BY q.priority DESC, q.id ASC`

	rows, err := s.db.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list queue: %w", err)
	}
	defer rows.Close()

	var items []models.QueueItem
	for rows.Next() {
		var q models.QueueItem
		if err := rows.Scan(&q.ID, &q.JobID, &q.ProfileID, &q.DraftID, &q.Priority, &q.Status,
			&q.ScheduledAt, &q.SubmittedAt, &q.JobTitle, &q.JobCompany, &q.JobURL); err != nil {
			return nil, fmt.Errorf("failed to scan queue item: %w", err)
		}
		items = append(items, q)
	}
	return items, rows.Err()
}

func (s *Postgres) MarkQueueSubmitted(ctx context.Context, id int64) (bool, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE queue SET status = $1, submitted_at = now() WHERE id = $2 AND status = $3`,
		models.QueueSubmitted, id, models.QueuePending)
	if err != nil {
		return false, fmt.Errorf("failed to mark queue item submitted: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

package models

import (
	"time"
)

type JobStatus string

const (
	JobDiscovered JobStatus = "discovered"
	JobAnalyzed   JobStatus = "analyzed"
)

type DraftStatus string

const (
	DraftPending  DraftStatus = "draft"
	DraftEdited   DraftStatus = "edited"
	DraftApproved DraftStatus = "approved"
)

type QueueStatus string

const (
	QueuePending   QueueStatus = "pending"
	QueueSubmitted QueueStatus = "submitted"
	QueueSkipped   QueueStatus = "skipped"
)

// Profile is a candidate identity produced by the resume ingestion side.
// The core only reads it.
type Profile struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	ResumeText string    `json:"resume_text"`
	Skills     string    `json:"skills"`
	Experience string    `json:"experience"`
	Education  string    `json:"education"`
	Links      string    `json:"links"` // comma-separated URLs (linkedin/github/website mixed)
	VectorDBID string    `json:"vector_db_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Job is a discovered posting. URL is unique across the store.
type Job struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Location     string     `json:"location,omitempty"`
	SalaryMin    *int       `json:"salary_min,omitempty"`
	SalaryMax    *int       `json:"salary_max,omitempty"`
	Description  string     `json:"description,omitempty"`
	Requirements string     `json:"requirements,omitempty"`
	URL          string     `json:"url"`
	Source       string     `json:"source"`
	FitScore     *float64   `json:"fit_score,omitempty"`
	FitRationale string     `json:"fit_rationale,omitempty"`
	ScrapedAt    time.Time  `json:"scraped_at"`
	AnalyzedAt   *time.Time `json:"analyzed_at,omitempty"`
	Status       JobStatus  `json:"status"`
}

// Draft is a generated cover letter tied to exactly one job and one profile.
type Draft struct {
	ID             int64       `json:"id"`
	JobID          int64       `json:"job_id"`
	ProfileID      int64       `json:"profile_id"`
	CoverLetter    string      `json:"cover_letter"`
	CustomAnswers  string      `json:"custom_answers,omitempty"`
	CompanyContext string      `json:"company_context,omitempty"`
	GeneratedAt    time.Time   `json:"generated_at"`
	EditedAt       *time.Time  `json:"edited_at,omitempty"`
	Status         DraftStatus `json:"status"`
}

// DraftUpdate is a partial draft edit. Nil fields are left untouched.
type DraftUpdate struct {
	CoverLetter   *string
	CustomAnswers *string
	Status        *DraftStatus
}

// QueueItem is one scheduled application attempt. Items are processed in
// priority-descending order with insertion order breaking ties. A zero
// DraftID means the attempt has no letter; a non-zero one must reference a
// draft belonging to the same job.
type QueueItem struct {
	ID          int64       `json:"id"`
	JobID       int64       `json:"job_id"`
	ProfileID   int64       `json:"profile_id"`
	DraftID     int64       `json:"draft_id"`
	Priority    int         `json:"priority"`
	Status      QueueStatus `json:"status"`
	ScheduledAt *time.Time  `json:"scheduled_at,omitempty"`
	SubmittedAt *time.Time  `json:"submitted_at,omitempty"`

	// Joined for display, populated on list queries only.
	JobTitle   string `json:"title,omitempty"`
	JobCompany string `json:"company,omitempty"`
	JobURL     string `json:"url,omitempty"`
}

// ApplicationLogEntry is one row of the append-only audit trail. Entries are
// never updated or deleted after insertion.
type ApplicationLogEntry struct {
	ID           int64     `json:"id"`
	JobID        int64     `json:"job_id"`
	ProfileID    int64     `json:"profile_id"`
	DraftID      *int64    `json:"draft_id,omitempty"`
	JobURL       string    `json:"job_url"`
	Company      string    `json:"company"`
	Action       string    `json:"action"`
	Status       string    `json:"status"`
	DraftContent *string   `json:"draft_content,omitempty"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Analysis is the outcome of scoring (and optionally drafting) one job
// against one profile.
type Analysis struct {
	JobID       int64   `json:"job_id"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Score       float64 `json:"score"`
	Rationale   string  `json:"rationale"`
	CoverLetter *string `json:"cover_letter,omitempty"`
}

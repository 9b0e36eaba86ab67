package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"autocareer/internal/models"
)

// Memory is an in-process Store for tests and for running the engine without
// a database. Mutex required because Go maps are not thread-safe and queue
// workers hit the store concurrently.
type Memory struct {
	mu       sync.Mutex
	profiles map[int64]models.Profile
	jobs     map[int64]models.Job
	drafts   map[int64]models.Draft
	logs     []models.ApplicationLogEntry
	queue    map[int64]models.QueueItem
	nextID   int64
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		profiles: make(map[int64]models.Profile),
		jobs:     make(map[int64]models.Job),
		drafts:   make(map[int64]models.Draft),
		queue:    make(map[int64]models.QueueItem),
		nextID:   1,
	}
}

func (m *Memory) Close() {}

func (m *Memory) id() int64 {
	id := m.nextID
	m.nextID++
	return id
}

func (m *Memory) CreateProfile(_ context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.id()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.profiles[p.ID] = *p
	return nil
}

func (m *Memory) GetProfile(_ context.Context, id int64) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *Memory) CreateJob(_ context.Context, job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.jobs {
		if existing.URL == job.URL {
			*job = existing
			return nil
		}
	}
	job.ID = m.id()
	job.ScrapedAt = time.Now()
	if job.Status == "" {
		job.Status = models.JobDiscovered
	}
	m.jobs[job.ID] = *job
	return nil
}

func (m *Memory) GetJob(_ context.Context, id int64) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &j, nil
}

func (m *Memory) ListJobs(_ context.Context, status models.JobStatus, limit int) ([]models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var jobs []models.Job
	for _, j := range m.jobs {
		if status == "" || j.Status == status {
			jobs = append(jobs, j)
		}
	}
	sort.Slice(jobs, func(i, k int) bool {
		si, sk := -1.0, -1.0
		if jobs[i].FitScore != nil {
			si = *jobs[i].FitScore
		}
		if jobs[k].FitScore != nil {
			sk = *jobs[k].FitScore
		}
		if si != sk {
			return si > sk
		}
		return jobs[i].ScrapedAt.After(jobs[k].ScrapedAt)
	})
	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

func (m *Memory) UpdateJobAnalysis(_ context.Context, jobID int64, score float64, rationale string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobID]
	if !ok {
		return ErrNotFound
	}
	now := time.Now()
	j.FitScore = &score
	j.FitRationale = rationale
	j.AnalyzedAt = &now
	j.Status = models.JobAnalyzed
	m.jobs[jobID] = j
	return nil
}

func (m *Memory) CreateDraft(_ context.Context, d *models.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[d.JobID]; !ok {
		return ErrNotFound
	}
	if _, ok := m.profiles[d.ProfileID]; !ok {
		return ErrNotFound
	}
	d.ID = m.id()
	d.GeneratedAt = time.Now()
	if d.Status == "" {
		d.Status = models.DraftPending
	}
	m.drafts[d.ID] = *d
	return nil
}

func (m *Memory) GetDraft(_ context.Context, id int64) (*models.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (m *Memory) LatestDraftForJob(_ context.Context, jobID int64) (*models.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *models.Draft
	for id := range m.drafts {
		d := m.drafts[id]
		if d.JobID != jobID {
			continue
		}
		if latest == nil || d.ID > latest.ID {
			latest = &d
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return latest, nil
}

func (m *Memory) UpdateDraft(_ context.Context, id int64, upd models.DraftUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[id]
	if !ok {
		return ErrNotFound
	}
	if upd.CoverLetter != nil {
		d.CoverLetter = *upd.CoverLetter
	}
	if upd.CustomAnswers != nil {
		d.CustomAnswers = *upd.CustomAnswers
	}
	if upd.Status != nil {
		d.Status = *upd.Status
	}
	now := time.Now()
	d.EditedAt = &now
	m.drafts[id] = d
	return nil
}

func (m *Memory) AppendLog(_ context.Context, entry *models.ApplicationLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = m.id()
	entry.Timestamp = time.Now()
	m.logs = append(m.logs, *entry)
	return nil
}

func (m *Memory) ListLogs(_ context.Context, limit int) ([]models.ApplicationLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]models.ApplicationLogEntry, len(m.logs))
	copy(entries, m.logs)
	sort.Slice(entries, func(i, k int) bool { return entries[i].ID > entries[k].ID })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (m *Memory) Enqueue(_ context.Context, item *models.QueueItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[item.JobID]; !ok {
		return ErrNotFound
	}
	if item.DraftID != 0 {
		d, ok := m.drafts[item.DraftID]
		if !ok {
			return ErrNotFound
		}
		if d.JobID != item.JobID {
			return ErrDraftMismatch
		}
	}
	item.ID = m.id()
	if item.Status == "" {
		item.Status = models.QueuePending
	}
	m.queue[item.ID] = *item
	return nil
}

func (m *Memory) GetQueueItem(_ context.Context, id int64) (*models.QueueItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.queue[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &q, nil
}

func (m *Memory) ListQueue(_ context.Context, status models.QueueStatus) ([]models.QueueItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []models.QueueItem
	for id := range m.queue {
		q := m.queue[id]
		if q.Status != status {
			continue
		}
		if j, ok := m.jobs[q.JobID]; ok {
			q.JobTitle = j.Title
			q.JobCompany = j.Company
			q.JobURL = j.URL
		}
		items = append(items, q)
	}
	sort.Slice(items, func(i, k int) bool {
		if items[i].Priority != items[k].Priority {
			return items[i].Priority > items[k].Priority
		}
		return items[i].ID < items[k].ID
	})
	return items, nil
}

func (m *Memory) MarkQueueSubmitted(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.queue[id]
	if !ok {
		return false, nil
	}
	if q.Status != models.QueuePending {
		return false, nil
	}
	now := time.Now()
	q.Status = models.QueueSubmitted
	q.SubmittedAt = &now
	m.queue[id] = q
	return true, nil
}

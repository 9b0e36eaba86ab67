package apply

import (
	"context"
	"sync"

	"autocareer/internal/models"
	"autocareer/internal/store"

	"go.uber.org/zap"
)

// Notifier receives the outcome of each processed queue item. Optional.
type Notifier interface {
	ReportAttempt(item models.QueueItem, result *Result) error
}

// Runner drains the application queue with a bounded pool of workers. Each
// worker owns one isolated browser session at a time; the only shared
// mutable state is the store.
type Runner struct {
	store    store.Store
	applier  *Applier
	workers  int
	notifier Notifier
	log      *zap.Logger
}

func NewRunner(st store.Store, applier *Applier, workers int, notifier Notifier, log *zap.Logger) *Runner {
	if workers <= 0 {
		workers = 1
	}
	return &Runner{store: st, applier: applier, workers: workers, notifier: notifier, log: log}
}

// ProcessQueue runs every pending item to completion. Items are fed in
// priority-descending, insertion order; dryRun forces a simulation pass over
// the whole backlog.
func (r *Runner) ProcessQueue(ctx context.Context, dryRun bool) error {
	items, err := r.store.ListQueue(ctx, models.QueuePending)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		r.log.Info("queue is empty")
		return nil
	}

	r.log.Info("processing application queue",
		zap.Int("items", len(items)), zap.Int("workers", r.workers), zap.Bool("dry_run", dryRun))

	ch := make(chan models.QueueItem)
	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range ch {
				r.processItem(ctx, item, dryRun)
			}
		}()
	}

feed:
	for _, item := range items {
		select {
		case <-ctx.Done():
			break feed
		case ch <- item:
		}
	}
	close(ch)
	wg.Wait()

	return ctx.Err()
}

func (r *Runner) processItem(ctx context.Context, item models.QueueItem, dryRun bool) {
	// Re-read the current status: an already-submitted item must be a
	// no-op, not a duplicate attempt.
	current, err := r.store.GetQueueItem(ctx, item.ID)
	if err != nil {
		r.log.Error("could not load queue item", zap.Int64("queue_id", item.ID), zap.Error(err))
		return
	}
	if current.Status != models.QueuePending {
		r.log.Info("skipping queue item, already processed",
			zap.Int64("queue_id", item.ID), zap.String("status", string(current.Status)))
		return
	}

	var draftID *int64
	if item.DraftID != 0 {
		id := item.DraftID
		draftID = &id
	}
	result, err := r.applier.Apply(ctx, item.JobID, item.ProfileID, draftID, dryRun)
	if err != nil {
		r.log.Error("application attempt failed",
			zap.Int64("queue_id", item.ID), zap.Int64("job_id", item.JobID), zap.Error(err))
		return
	}

	if result.Status == StatusSubmitted {
		changed, err := r.store.MarkQueueSubmitted(ctx, item.ID)
		if err != nil {
			r.log.Error("could not mark queue item submitted", zap.Int64("queue_id", item.ID), zap.Error(err))
		} else if !changed {
			r.log.Warn("queue item no longer pending after attempt", zap.Int64("queue_id", item.ID))
		}
	}

	if r.notifier != nil {
		if err := r.notifier.ReportAttempt(item, result); err != nil {
			r.log.Warn("could not send attempt report", zap.Error(err))
		}
	}
}

package service

import (
	"context"
	"log/slog"

	"github.com/aryan0dhankhar/workforce/internal/domain"
	"github.com/aryan0dhankhar/workforce/internal/observability/metrics"
)

// Enricher joins tasks with summaries of their assignees at read time.
// An assignee that no longer resolves is rendered as null instead of
// failing the read; lookup errors still propagate.
type Enricher struct {
	lookup domain.EmployeeLookup
	logger *slog.Logger
}

// NewEnricher creates an enricher over lookup
func NewEnricher(lookup domain.EmployeeLookup, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{lookup: lookup, logger: logger}
}

// Enrich returns the read view of a single task
func (e *Enricher) Enrich(ctx context.Context, task *domain.Task) (*domain.TaskView, error) {
	views, err := e.EnrichAll(ctx, []*domain.Task{task})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// EnrichAll resolves every distinct assignee in one lookup and preserves task order
func (e *Enricher) EnrichAll(ctx context.Context, tasks []*domain.Task) ([]*domain.TaskView, error) {
	views := make([]*domain.TaskView, 0, len(tasks))
	if len(tasks) == 0 {
		return views, nil
	}

	seen := make(map[string]struct{}, len(tasks))
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if _, ok := seen[t.AssignedTo]; ok {
			continue
		}
		seen[t.AssignedTo] = struct{}{}
		ids = append(ids, t.AssignedTo)
	}

	summaries, err := e.lookup.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	orphans := 0
	for _, t := range tasks {
		summary := summaries[t.AssignedTo]
		if summary == nil {
			orphans++
			e.logger.Warn("task assignee not found",
				slog.String("task_id", t.ID),
				slog.String("assigned_to", t.AssignedTo),
			)
		}
		views = append(views, domain.NewTaskView(t, summary))
	}
	metrics.ObserveOrphans(orphans)
	return views, nil
}

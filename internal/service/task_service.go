package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/aryan0dhankhar/workforce/internal/domain"
	"github.com/aryan0dhankhar/workforce/internal/events"
	"github.com/aryan0dhankhar/workforce/internal/observability/tracing"
	"github.com/aryan0dhankhar/workforce/internal/validation"
)

// TaskService owns the task registry
type TaskService struct {
	tasks     domain.TaskRepository
	employees domain.EmployeeRepository
	enricher  *Enricher
	publisher Publisher
	logger    *slog.Logger
}

// NewTaskService creates a new task service. Assignee existence is checked
// against employees; read views are built by enricher.
func NewTaskService(
	tasks domain.TaskRepository,
	employees domain.EmployeeRepository,
	enricher *Enricher,
	publisher Publisher,
	logger *slog.Logger,
) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &TaskService{
		tasks:     tasks,
		employees: employees,
		enricher:  enricher,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateTask validates payload, checks the assignee exists and persists the
// task. Nothing is written when the assignee does not resolve.
func (s *TaskService) CreateTask(ctx context.Context, payload map[string]any) (_ *domain.TaskView, err error) {
	ctx, span := tracing.Start(ctx, "TaskService.CreateTask")
	start := time.Now()
	defer func() {
		observe("create_task", start, err)
		tracing.End(span, err)
	}()

	task, err := validation.Task(payload)
	if err != nil {
		return nil, err
	}

	assignee, err := s.employees.GetByID(ctx, task.AssignedTo)
	if err != nil {
		return nil, err
	}

	task.ID = uuid.NewString()
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("task.id", task.ID))
	s.logger.Info("task created",
		slog.String("task_id", task.ID),
		slog.String("assigned_to", task.AssignedTo),
		slog.String("priority", task.Priority.String()),
	)
	s.publisher.Publish(events.Event{Type: events.TaskCreated, ID: task.ID, At: task.CreatedAt})
	return domain.NewTaskView(task, assignee.Summary()), nil
}

// ListTasks returns every task with its assignee embedded
func (s *TaskService) ListTasks(ctx context.Context) (_ []*domain.TaskView, err error) {
	ctx, span := tracing.Start(ctx, "TaskService.ListTasks")
	start := time.Now()
	defer func() {
		observe("list_tasks", start, err)
		tracing.End(span, err)
	}()

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		s.logger.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, err
	}
	span.SetAttributes(attribute.Int("task.count", len(tasks)))
	return s.enricher.EnrichAll(ctx, tasks)
}

// UpdateTask applies the fields present in payload to task id. An unknown id
// fails with ErrTaskNotFound whatever the payload holds. A changed assignee must exist;
// an unchanged one is not re-checked. An empty payload returns the task
// unchanged without a write. If the assignee cannot be looked up after a
// committed write, the task is returned with a null assignee.
func (s *TaskService) UpdateTask(ctx context.Context, id string, payload map[string]any) (_ *domain.TaskView, err error) {
	ctx, span := tracing.Start(ctx, "TaskService.UpdateTask", attribute.String("task.id", id))
	start := time.Now()
	defer func() {
		observe("update_task", start, err)
		tracing.End(span, err)
	}()

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch, err := validation.TaskPatch(payload)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return s.enricher.Enrich(ctx, task)
	}

	if patch.AssignedTo != nil && *patch.AssignedTo != task.AssignedTo {
		if _, err := s.employees.GetByID(ctx, *patch.AssignedTo); err != nil {
			return nil, err
		}
	}

	patch.Apply(task)
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("task updated",
		slog.String("task_id", task.ID),
		slog.String("status", task.Status.String()),
	)
	s.publisher.Publish(events.Event{Type: events.TaskUpdated, ID: task.ID, At: task.UpdatedAt})

	// The write is committed; a failed assignee lookup only costs the embed.
	view, lookupErr := s.enricher.Enrich(ctx, task)
	if lookupErr != nil {
		s.logger.Warn("task updated but assignee lookup failed",
			slog.String("task_id", task.ID),
			slog.String("error", lookupErr.Error()),
		)
		return domain.NewTaskView(task, nil), nil
	}
	return view, nil
}

// DeleteTask removes task id. Deleting an absent task fails with ErrTaskNotFound.
func (s *TaskService) DeleteTask(ctx context.Context, id string) (err error) {
	ctx, span := tracing.Start(ctx, "TaskService.DeleteTask", attribute.String("task.id", id))
	start := time.Now()
	defer func() {
		observe("delete_task", start, err)
		tracing.End(span, err)
	}()

	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("task deleted", slog.String("task_id", id))
	s.publisher.Publish(events.Event{Type: events.TaskDeleted, ID: id, At: time.Now().UTC()})
	return nil
}

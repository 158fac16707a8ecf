package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aryan0dhankhar/workforce/internal/domain"
)

// PostgresTaskRepository implements domain.TaskRepository using PostgreSQL
type PostgresTaskRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresTaskRepository creates a new task repository
func NewPostgresTaskRepository(db *sql.DB, logger *slog.Logger) *PostgresTaskRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskRepository{db: db, logger: logger}
}

const taskColumns = `id, title, description, assigned_to, status, priority, due_date, created_at, updated_at`

// Create inserts a new task. The foreign key on assigned_to rejects a
// dangling assignee even if the employee vanished after the service check.
func (r *PostgresTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, assigned_to, status, priority, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.AssignedTo,
		task.Status.String(),
		task.Priority.String(),
		task.DueDate,
	).Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		mapped := classifyPQ("create task", err)
		if !errors.Is(mapped, domain.ErrEmployeeNotFound) {
			r.logger.Error("failed to create task",
				slog.String("assigned_to", task.AssignedTo),
				slog.String("error", err.Error()),
			)
		}
		return mapped
	}
	return nil
}

// GetByID retrieves a task by ID
func (r *PostgresTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, domain.NewStoreFailure("get task", err)
	}
	return task, nil
}

// List returns all tasks in insertion order
func (r *PostgresTaskRepository) List(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, domain.NewStoreFailure("list tasks", err)
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			r.logger.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, domain.NewStoreFailure("list tasks", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreFailure("list tasks", err)
	}
	return tasks, nil
}

// Update replaces every mutable column of a task in one statement
func (r *PostgresTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, description = $2, assigned_to = $3, status = $4, priority = $5,
		    due_date = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		task.Title,
		task.Description,
		task.AssignedTo,
		task.Status.String(),
		task.Priority.String(),
		task.DueDate,
		task.ID,
	).Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return classifyPQ("update task", err)
	}
	return nil
}

// Delete removes a task
func (r *PostgresTaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return domain.NewStoreFailure("delete task", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return domain.NewStoreFailure("delete task", err)
	}
	if rows == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	task := &domain.Task{}
	var status, priority string
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.AssignedTo,
		&status,
		&priority,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if task.Status, err = domain.ParseStatus(status); err != nil {
		return nil, fmt.Errorf("task %s: %w", task.ID, err)
	}
	if task.Priority, err = domain.ParsePriority(priority); err != nil {
		return nil, fmt.Errorf("task %s: %w", task.ID, err)
	}
	task.DueDate = task.DueDate.UTC()
	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()
	return task, nil
}

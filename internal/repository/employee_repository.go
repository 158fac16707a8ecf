package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/lib/pq"

	"github.com/aryan0dhankhar/workforce/internal/domain"
)

// PostgresEmployeeRepository implements domain.EmployeeRepository using PostgreSQL
type PostgresEmployeeRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresEmployeeRepository creates a new employee repository
func NewPostgresEmployeeRepository(db *sql.DB, logger *slog.Logger) *PostgresEmployeeRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresEmployeeRepository{
		db:     db,
		logger: logger,
	}
}

const employeeColumns = `id, first_name, last_name, email, designation, department, hire_date, created_at`

// Create inserts a new employee. The unique index on lower(email) rejects
// duplicates that slipped past the service pre-check.
func (r *PostgresEmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	query := `
		INSERT INTO employees (id, first_name, last_name, email, designation, department, hire_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		employee.ID,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		employee.Designation,
		employee.Department,
		employee.HireDate,
	).Scan(&employee.CreatedAt)

	if err != nil {
		mapped := classifyPQ("create employee", err)
		if !errors.Is(mapped, domain.ErrDuplicateEmail) {
			r.logger.Error("failed to create employee",
				slog.String("email", employee.Email),
				slog.String("error", err.Error()),
			)
		}
		return mapped
	}

	return nil
}

// GetByID retrieves an employee by ID
func (r *PostgresEmployeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	employee, err := scanEmployee(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEmployeeNotFound
		}
		r.logger.Error("failed to get employee by id",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, domain.NewStoreFailure("get employee", err)
	}

	return employee, nil
}

// GetByEmail retrieves an employee by case-insensitive email
func (r *PostgresEmployeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE lower(email) = lower($1)`

	employee, err := scanEmployee(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, domain.NewStoreFailure("get employee by email", err)
	}

	return employee, nil
}

// List returns all employees in insertion order
func (r *PostgresEmployeeRepository) List(ctx context.Context) ([]*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list employees", slog.String("error", err.Error()))
		return nil, domain.NewStoreFailure("list employees", err)
	}
	defer rows.Close()

	employees := []*domain.Employee{}
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			r.logger.Error("failed to scan employee row", slog.String("error", err.Error()))
			return nil, domain.NewStoreFailure("list employees", err)
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreFailure("list employees", err)
	}

	return employees, nil
}

// FindByIDs resolves summaries for the given IDs in a single round trip
func (r *PostgresEmployeeRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.EmployeeSummary, error) {
	out := make(map[string]*domain.EmployeeSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		r.logger.Error("failed to look up employees", slog.Int("count", len(ids)), slog.String("error", err.Error()))
		return nil, domain.NewStoreFailure("find employees", err)
	}
	defer rows.Close()

	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, domain.NewStoreFailure("find employees", err)
		}
		out[employee.ID] = employee.Summary()
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreFailure("find employees", err)
	}

	return out, nil
}

// ExistingIDs reports which of ids are stored, reading only the key column
func (r *PostgresEmployeeRepository) ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	out := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id FROM employees WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, domain.NewStoreFailure("check employees", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, domain.NewStoreFailure("check employees", err)
		}
		out[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreFailure("check employees", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	employee := &domain.Employee{}
	err := row.Scan(
		&employee.ID,
		&employee.FirstName,
		&employee.LastName,
		&employee.Email,
		&employee.Designation,
		&employee.Department,
		&employee.HireDate,
		&employee.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	employee.HireDate = employee.HireDate.UTC()
	employee.CreatedAt = employee.CreatedAt.UTC()
	return employee, nil
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/aryan0dhankhar/workforce/internal/domain"
	"github.com/aryan0dhankhar/workforce/internal/events"
	"github.com/aryan0dhankhar/workforce/internal/observability/tracing"
	"github.com/aryan0dhankhar/workforce/internal/validation"
)

// EmployeeService owns the employee directory
type EmployeeService struct {
	employees domain.EmployeeRepository
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employees domain.EmployeeRepository, publisher Publisher, logger *slog.Logger) *EmployeeService {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &EmployeeService{
		employees: employees,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateEmployee validates payload and registers a new employee.
// The email pre-check gives a fast answer; the store's unique constraint
// decides when two creates race.
func (s *EmployeeService) CreateEmployee(ctx context.Context, payload map[string]any) (_ *domain.Employee, err error) {
	ctx, span := tracing.Start(ctx, "EmployeeService.CreateEmployee")
	start := time.Now()
	defer func() {
		observe("create_employee", start, err)
		tracing.End(span, err)
	}()

	employee, err := validation.Employee(payload, s.now())
	if err != nil {
		return nil, err
	}

	existing, err := s.employees.GetByEmail(ctx, employee.Email)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrDuplicateEmail
	case err != nil && !errors.Is(err, domain.ErrEmployeeNotFound):
		return nil, err
	}

	employee.ID = uuid.NewString()
	if err := s.employees.Create(ctx, employee); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			s.logger.Info("duplicate email rejected by store", slog.String("email", employee.Email))
		}
		return nil, err
	}

	span.SetAttributes(attribute.String("employee.id", employee.ID))
	s.logger.Info("employee created",
		slog.String("employee_id", employee.ID),
		slog.String("department", employee.Department),
	)
	s.publisher.Publish(events.Event{Type: events.EmployeeCreated, ID: employee.ID, At: employee.CreatedAt})
	return employee, nil
}

// ListEmployees returns every employee in store order
func (s *EmployeeService) ListEmployees(ctx context.Context) (_ []*domain.Employee, err error) {
	ctx, span := tracing.Start(ctx, "EmployeeService.ListEmployees")
	start := time.Now()
	defer func() {
		observe("list_employees", start, err)
		tracing.End(span, err)
	}()

	employees, err := s.employees.List(ctx)
	if err != nil {
		s.logger.Error("failed to list employees", slog.String("error", err.Error()))
		return nil, err
	}
	return employees, nil
}

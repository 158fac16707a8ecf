package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/aryan0dhankhar/workforce/internal/domain"
)

// MemoryStore keeps employees and tasks in process memory. Uniqueness and
// referential checks run under the same lock as the write, so they hold
// under concurrent requests.
type MemoryStore struct {
	mu            sync.RWMutex
	employees     map[string]*domain.Employee
	employeeOrder []string
	emails        map[string]string // lower-cased email -> employee ID
	tasks         map[string]*domain.Task
	taskOrder     []string
	now           func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		employees: map[string]*domain.Employee{},
		emails:    map[string]string{},
		tasks:     map[string]*domain.Task{},
		now:       time.Now,
	}
}

// Employees returns the employee repository view of the store
func (s *MemoryStore) Employees() *MemoryEmployeeRepository {
	return &MemoryEmployeeRepository{store: s}
}

// Tasks returns the task repository view of the store
func (s *MemoryStore) Tasks() *MemoryTaskRepository {
	return &MemoryTaskRepository{store: s}
}

// Ping always succeeds
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}

// MemoryEmployeeRepository implements domain.EmployeeRepository on a MemoryStore
type MemoryEmployeeRepository struct {
	store *MemoryStore
}

// Create stores a new employee
func (r *MemoryEmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	if err := ctx.Err(); err != nil {
		return domain.NewStoreFailure("create employee", err)
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(employee.Email)
	if _, taken := s.emails[key]; taken {
		return domain.ErrDuplicateEmail
	}
	employee.CreatedAt = s.now().UTC()
	stored := *employee
	s.employees[employee.ID] = &stored
	s.employeeOrder = append(s.employeeOrder, employee.ID)
	s.emails[key] = employee.ID
	return nil
}

// GetByID retrieves an employee by ID
func (r *MemoryEmployeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	out := *e
	return &out, nil
}

// GetByEmail retrieves an employee by case-insensitive email
func (r *MemoryEmployeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	out := *s.employees[id]
	return &out, nil
}

// List returns all employees in insertion order
func (r *MemoryEmployeeRepository) List(ctx context.Context) ([]*domain.Employee, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Employee, 0, len(s.employeeOrder))
	for _, id := range s.employeeOrder {
		e := *s.employees[id]
		out = append(out, &e)
	}
	return out, nil
}

// FindByIDs resolves summaries for the given employee IDs
func (r *MemoryEmployeeRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.EmployeeSummary, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*domain.EmployeeSummary, len(ids))
	for _, id := range ids {
		if e, ok := s.employees[id]; ok {
			out[id] = e.Summary()
		}
	}
	return out, nil
}

// ExistingIDs reports which of ids are stored
func (r *MemoryEmployeeRepository) ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := s.employees[id]; ok {
			out[id] = true
		}
	}
	return out, nil
}

// MemoryTaskRepository implements domain.TaskRepository on a MemoryStore
type MemoryTaskRepository struct {
	store *MemoryStore
}

// Create stores a new task if its assignee exists
func (r *MemoryTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if err := ctx.Err(); err != nil {
		return domain.NewStoreFailure("create task", err)
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[task.AssignedTo]; !ok {
		return domain.ErrEmployeeNotFound
	}
	now := s.now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	stored := *task
	s.tasks[task.ID] = &stored
	s.taskOrder = append(s.taskOrder, task.ID)
	return nil
}

// GetByID retrieves a task by ID
func (r *MemoryTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	out := *t
	return &out, nil
}

// List returns all tasks in insertion order
func (r *MemoryTaskRepository) List(ctx context.Context) ([]*domain.Task, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Task, 0, len(s.taskOrder))
	for _, id := range s.taskOrder {
		t := *s.tasks[id]
		out = append(out, &t)
	}
	return out, nil
}

// Update replaces a stored task atomically
func (r *MemoryTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if err := ctx.Err(); err != nil {
		return domain.NewStoreFailure("update task", err)
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[task.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	if task.AssignedTo != existing.AssignedTo {
		if _, ok := s.employees[task.AssignedTo]; !ok {
			return domain.ErrEmployeeNotFound
		}
	}
	task.CreatedAt = existing.CreatedAt
	task.UpdatedAt = s.now().UTC()
	stored := *task
	s.tasks[task.ID] = &stored
	return nil
}

// Delete removes a task
func (r *MemoryTaskRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return domain.NewStoreFailure("delete task", err)
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(s.tasks, id)
	s.taskOrder = removeID(s.taskOrder, id)
	return nil
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

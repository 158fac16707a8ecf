package domain

import (
	"context"
	"time"
)

// Employee represents a member of the workforce directory
type Employee struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"` // Stored lower-cased, unique
	Designation string    `json:"designation"`
	Department  string    `json:"department"`
	HireDate    time.Time `json:"hireDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EmployeeSummary is the read-only view of an Employee embedded in task responses
type EmployeeSummary struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
}

// Summary projects the employee onto its embeddable view
func (e *Employee) Summary() *EmployeeSummary {
	return &EmployeeSummary{
		ID:          e.ID,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Email:       e.Email,
		Designation: e.Designation,
		Department:  e.Department,
	}
}

// EmployeeRepository defines data access for employees.
// Create must enforce email uniqueness at write time and return ErrDuplicateEmail on conflict.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *Employee) error
	GetByID(ctx context.Context, id string) (*Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	List(ctx context.Context) ([]*Employee, error)
	EmployeeIndex
}

// EmployeeLookup resolves employee summaries in bulk. Missing ids are absent from the result.
type EmployeeLookup interface {
	FindByIDs(ctx context.Context, ids []string) (map[string]*EmployeeSummary, error)
}

// EmployeeIndex is an EmployeeLookup that can also report which ids still
// exist without loading the employees.
type EmployeeIndex interface {
	EmployeeLookup
	ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error)
}

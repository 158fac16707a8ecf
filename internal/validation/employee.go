package validation

import (
	"strings"
	"time"

	"github.com/aryan0dhankhar/workforce/internal/domain"
)

type employeeInput struct {
	FirstName   string `json:"firstName" validate:"required,max=50"`
	LastName    string `json:"lastName" validate:"required,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Designation string `json:"designation" validate:"required,max=100"`
	Department  string `json:"department" validate:"required,max=100"`
	HireDate    string `json:"hireDate" validate:"omitempty,date"`
}

// Employee validates a create-employee payload. The returned record has no ID;
// HireDate defaults to now when omitted and Email is lower-cased.
func Employee(payload map[string]any, now time.Time) (*domain.Employee, error) {
	f := newFields(payload)
	in := employeeInput{
		FirstName:   f.value("firstName"),
		LastName:    f.value("lastName"),
		Email:       strings.ToLower(f.value("email")),
		Designation: f.value("designation"),
		Department:  f.value("department"),
		HireDate:    f.value("hireDate", "hiredate"),
	}
	if err := f.check(&in); err != nil {
		return nil, err
	}

	hireDate := now.UTC()
	if in.HireDate != "" {
		hireDate, _ = ParseDate(in.HireDate)
	}

	return &domain.Employee{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Designation: in.Designation,
		Department:  in.Department,
		HireDate:    hireDate,
	}, nil
}

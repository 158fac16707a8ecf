package repository

import (
	"errors"

	"github.com/lib/pq"

	"github.com/aryan0dhankhar/workforce/internal/domain"
)

const emailIndex = "employees_email_lower_key"

// classifyPQ maps constraint violations raised by Postgres onto domain errors;
// everything else becomes a StoreFailure
func classifyPQ(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			if pqErr.Constraint == emailIndex {
				return domain.ErrDuplicateEmail
			}
		case "foreign_key_violation":
			return domain.ErrEmployeeNotFound
		}
	}
	return domain.NewStoreFailure(op, err)
}

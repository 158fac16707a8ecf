package repository

import (
	"errors"
	"testing"

	"github.com/lib/pq"

	"github.com/aryan0dhankhar/workforce/internal/domain"
)

func TestClassifyPQ(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"email unique", &pq.Error{Code: "23505", Constraint: emailIndex}, domain.ErrDuplicateEmail},
		{"assignee fk", &pq.Error{Code: "23503", Constraint: "tasks_assigned_to_fkey"}, domain.ErrEmployeeNotFound},
	}
	for _, tc := range cases {
		if got := classifyPQ("op", tc.err); !errors.Is(got, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}

	var sf *domain.StoreFailure
	if got := classifyPQ("create employee", &pq.Error{Code: "23505", Constraint: "employees_pkey"}); !errors.As(got, &sf) {
		t.Fatalf("expected other unique violations to be store failures, got %v", got)
	}
	if got := classifyPQ("list tasks", errors.New("connection reset")); !errors.As(got, &sf) || sf.Op != "list tasks" {
		t.Fatalf("expected store failure for list tasks, got %v", got)
	}
}

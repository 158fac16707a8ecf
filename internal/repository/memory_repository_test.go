package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aryan0dhankhar/workforce/internal/domain"
)

func newEmployee(id, email string) *domain.Employee {
	return &domain.Employee{
		ID:          id,
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       email,
		Designation: "Engineer",
		Department:  "R&D",
		HireDate:    time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func newTask(id, assignee string) *domain.Task {
	return &domain.Task{
		ID:         id,
		Title:      "Design review",
		AssignedTo: assignee,
		Status:     domain.StatusPending,
		Priority:   domain.PriorityMedium,
		DueDate:    time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestMemoryEmployeeCreateRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	employees := NewMemoryStore().Employees()

	if err := employees.Create(ctx, newEmployee("e1", "ada@example.com")); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := employees.Create(ctx, newEmployee("e2", "ADA@example.com"))
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	list, _ := employees.List(ctx)
	if len(list) != 1 {
		t.Fatalf("expected 1 employee, got %d", len(list))
	}
}

func TestMemoryEmployeeConcurrentDuplicateCreate(t *testing.T) {
	ctx := context.Background()
	employees := NewMemoryStore().Employees()

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- employees.Create(ctx, newEmployee(fmt.Sprintf("e%d", i), "same@example.com"))
		}(i)
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case !errors.Is(err, domain.ErrDuplicateEmail):
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("expected exactly one successful create, got %d", ok)
	}
}

func TestMemoryListPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	employees := store.Employees()
	tasks := store.Tasks()

	for _, id := range []string{"c", "a", "b"} {
		if err := employees.Create(ctx, newEmployee(id, id+"@example.com")); err != nil {
			t.Fatalf("create employee %s: %v", id, err)
		}
		if err := tasks.Create(ctx, newTask("t-"+id, id)); err != nil {
			t.Fatalf("create task %s: %v", id, err)
		}
	}

	list, _ := employees.List(ctx)
	taskList, _ := tasks.List(ctx)
	for i, want := range []string{"c", "a", "b"} {
		if list[i].ID != want {
			t.Fatalf("employee %d: expected %s, got %s", i, want, list[i].ID)
		}
		if taskList[i].ID != "t-"+want {
			t.Fatalf("task %d: expected t-%s, got %s", i, want, taskList[i].ID)
		}
	}
}

func TestMemoryTaskCreateRequiresAssignee(t *testing.T) {
	ctx := context.Background()
	tasks := NewMemoryStore().Tasks()

	err := tasks.Create(ctx, newTask("t1", "missing"))
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
	list, _ := tasks.List(ctx)
	if len(list) != 0 {
		t.Fatalf("expected no tasks persisted, got %d", len(list))
	}
}

func TestMemoryTaskUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_ = store.Employees().Create(ctx, newEmployee("e1", "a@example.com"))
	tasks := store.Tasks()
	_ = tasks.Create(ctx, newTask("t1", "e1"))

	updated := newTask("t1", "e1")
	updated.Status = domain.StatusCompleted
	if err := tasks.Update(ctx, updated); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := tasks.GetByID(ctx, "t1")
	if got.Status != domain.StatusCompleted {
		t.Fatalf("expected Completed, got %s", got.Status)
	}

	reassigned := newTask("t1", "ghost")
	if err := tasks.Update(ctx, reassigned); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
	if err := tasks.Update(ctx, newTask("nope", "e1")); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}

	if err := tasks.Delete(ctx, "t1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := tasks.Delete(ctx, "t1"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound on second delete, got %v", err)
	}
}

func TestMemoryUpdateOfOrphanedTaskKeepsAssignee(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	employees := store.Employees()
	_ = employees.Create(ctx, newEmployee("e1", "a@example.com"))
	_ = store.Tasks().Create(ctx, newTask("t1", "e1"))
	employees.remove("e1")

	task, _ := store.Tasks().GetByID(ctx, "t1")
	task.Status = domain.StatusInProgress
	if err := store.Tasks().Update(ctx, task); err != nil {
		t.Fatalf("expected status-only update of orphaned task to succeed, got %v", err)
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_ = store.Employees().Create(ctx, newEmployee("e1", "a@example.com"))

	e, _ := store.Employees().GetByID(ctx, "e1")
	e.FirstName = "Mutated"

	again, _ := store.Employees().GetByID(ctx, "e1")
	if again.FirstName != "Ada" {
		t.Fatalf("expected stored employee to be unaffected, got %s", again.FirstName)
	}
}

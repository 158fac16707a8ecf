package domain

import (
	"context"
	"fmt"
	"time"
)

// Status is the lifecycle state of a task
type Status uint8

const (
	StatusPending Status = iota + 1
	StatusInProgress
	StatusCompleted
)

var statusNames = map[Status]string{
	StatusPending:    "Pending",
	StatusInProgress: "In Progress",
	StatusCompleted:  "Completed",
}

// Statuses lists every status in display order
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Valid reports whether s is one of the declared statuses
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// ParseStatus maps a wire value onto a Status. "InProgress" is accepted as
// an alternate spelling of "In Progress"; anything else is rejected.
func ParseStatus(v string) (Status, error) {
	switch v {
	case "Pending":
		return StatusPending, nil
	case "In Progress", "InProgress":
		return StatusInProgress, nil
	case "Completed":
		return StatusCompleted, nil
	}
	return 0, fmt.Errorf("unknown status %q", v)
}

// MarshalText implements encoding.TextMarshaler
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Status) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Priority is the urgency of a task
type Priority uint8

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
)

var priorityNames = map[Priority]string{
	PriorityLow:    "Low",
	PriorityMedium: "Medium",
	PriorityHigh:   "High",
}

// Priorities lists every priority in ascending order
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Priority(%d)", uint8(p))
}

// Valid reports whether p is one of the declared priorities
func (p Priority) Valid() bool {
	_, ok := priorityNames[p]
	return ok
}

// ParsePriority maps a wire value onto a Priority
func ParsePriority(v string) (Priority, error) {
	for p, name := range priorityNames {
		if name == v {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown priority %q", v)
}

// MarshalText implements encoding.TextMarshaler
func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid priority %d", uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Priority) UnmarshalText(b []byte) error {
	parsed, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Task is a unit of work assigned to exactly one employee
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AssignedTo  string    `json:"assignedTo"` // Employee ID
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	DueDate     time.Time `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskPatch carries the fields of a partial update; nil fields are left unchanged
type TaskPatch struct {
	Title       *string
	Description *string
	AssignedTo  *string
	Status      *Status
	Priority    *Priority
	DueDate     *time.Time
}

// Empty reports whether the patch changes nothing
func (p *TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.AssignedTo == nil &&
		p.Status == nil && p.Priority == nil && p.DueDate == nil
}

// Apply copies the set fields onto t
func (p *TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.AssignedTo != nil {
		t.AssignedTo = *p.AssignedTo
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
}

// TaskView is a task as returned to readers, with the assignee embedded.
// AssignedTo is nil when the referenced employee no longer resolves.
type TaskView struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	AssignedTo  *EmployeeSummary `json:"assignedTo"`
	Status      Status           `json:"status"`
	Priority    Priority         `json:"priority"`
	DueDate     time.Time        `json:"dueDate"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// NewTaskView builds the read view of t with the given assignee summary
func NewTaskView(t *Task, assignee *EmployeeSummary) *TaskView {
	return &TaskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		AssignedTo:  assignee,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// TaskRepository defines data access for tasks.
// Create and Update must reject a dangling AssignedTo with ErrEmployeeNotFound where the
// store can enforce it, and return ErrTaskNotFound for unknown ids.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context) ([]*Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id string) error
}

package validation

import (
	"github.com/aryan0dhankhar/workforce/internal/domain"
)

type taskInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	AssignedTo  string `json:"assignedTo" validate:"required"`
	DueDate     string `json:"dueDate" validate:"required,date"`
	Status      string `json:"status" validate:"omitempty,taskstatus"`
	Priority    string `json:"priority" validate:"omitempty,taskpriority"`
}

// Task validates a create-task payload. Status defaults to Pending and
// Priority to Medium; out-of-enum values are rejected, never coerced.
func Task(payload map[string]any) (*domain.Task, error) {
	f := newFields(payload)
	in := taskInput{
		Title:       f.value("title"),
		Description: f.value("description"),
		AssignedTo:  f.value("assignedTo"),
		DueDate:     f.value("dueDate"),
		Status:      f.value("status"),
		Priority:    f.value("priority"),
	}
	if err := f.check(&in); err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		AssignedTo:  in.AssignedTo,
		Status:      domain.StatusPending,
		Priority:    domain.PriorityMedium,
	}
	task.DueDate, _ = ParseDate(in.DueDate)
	if in.Status != "" {
		task.Status, _ = domain.ParseStatus(in.Status)
	}
	if in.Priority != "" {
		task.Priority, _ = domain.ParsePriority(in.Priority)
	}
	return task, nil
}

type taskPatchInput struct {
	Title       *string `json:"title" validate:"omitnil,min=1,max=200"`
	Description *string `json:"description"`
	AssignedTo  *string `json:"assignedTo" validate:"omitnil,min=1"`
	DueDate     *string `json:"dueDate" validate:"omitnil,date"`
	Status      *string `json:"status" validate:"omitnil,taskstatus"`
	Priority    *string `json:"priority" validate:"omitnil,taskpriority"`
}

// TaskPatch validates an update-task payload. Only keys present in the payload
// are checked and carried into the patch; a present null clears Description
// and is a violation for every other field.
func TaskPatch(payload map[string]any) (*domain.TaskPatch, error) {
	f := newFields(payload)
	in := taskPatchInput{
		Title:       f.lookup("title"),
		Description: f.lookup("description"),
		AssignedTo:  f.lookup("assignedTo"),
		DueDate:     f.lookup("dueDate"),
		Status:      f.lookup("status"),
		Priority:    f.lookup("priority"),
	}
	if err := f.check(&in); err != nil {
		return nil, err
	}

	patch := &domain.TaskPatch{
		Title:       in.Title,
		Description: in.Description,
		AssignedTo:  in.AssignedTo,
	}
	if in.DueDate != nil {
		due, _ := ParseDate(*in.DueDate)
		patch.DueDate = &due
	}
	if in.Status != nil {
		s, _ := domain.ParseStatus(*in.Status)
		patch.Status = &s
	}
	if in.Priority != nil {
		p, _ := domain.ParsePriority(*in.Priority)
		patch.Priority = &p
	}
	return patch, nil
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/aryan0dhankhar/workforce/internal/service"
)

// CreateTaskHandler handles task creation and assignment
type CreateTaskHandler struct {
	taskService *service.TaskService
	logger      *slog.Logger
}

// NewCreateTaskHandler creates a new create task handler
func NewCreateTaskHandler(taskService *service.TaskService, logger *slog.Logger) *CreateTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreateTaskHandler{taskService: taskService, logger: logger}
}

// ServeHTTP handles POST /task requests
func (h *CreateTaskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(w, r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), payload)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, envelope{
		"success": true,
		"message": MsgTaskCreated,
		"task":    task,
	})
}

// ListTasksHandler lists every task with its assignee embedded
type ListTasksHandler struct {
	taskService *service.TaskService
	logger      *slog.Logger
}

// NewListTasksHandler creates a new list tasks handler
func NewListTasksHandler(taskService *service.TaskService, logger *slog.Logger) *ListTasksHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListTasksHandler{taskService: taskService, logger: logger}
}

// ServeHTTP handles GET /task requests
func (h *ListTasksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, envelope{
		"success": true,
		"tasks":   tasks,
	})
}

// UpdateTaskHandler applies a partial update to a task
type UpdateTaskHandler struct {
	taskService *service.TaskService
	logger      *slog.Logger
}

// NewUpdateTaskHandler creates a new update task handler
func NewUpdateTaskHandler(taskService *service.TaskService, logger *slog.Logger) *UpdateTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UpdateTaskHandler{taskService: taskService, logger: logger}
}

// ServeHTTP handles PUT /task/{id} requests
func (h *UpdateTaskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("id")
	if taskID == "" {
		writeMessage(w, h.logger, http.StatusBadRequest, MsgMissingIdentifier)
		return
	}

	payload, err := decodePayload(w, r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), taskID, payload)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, envelope{
		"success": true,
		"message": MsgTaskUpdated,
		"task":    task,
	})
}

// DeleteTaskHandler removes a task
type DeleteTaskHandler struct {
	taskService *service.TaskService
	logger      *slog.Logger
}

// NewDeleteTaskHandler creates a new delete task handler
func NewDeleteTaskHandler(taskService *service.TaskService, logger *slog.Logger) *DeleteTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeleteTaskHandler{taskService: taskService, logger: logger}
}

// ServeHTTP handles DELETE /task/{id} requests
func (h *DeleteTaskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("id")
	if taskID == "" {
		writeMessage(w, h.logger, http.StatusBadRequest, MsgMissingIdentifier)
		return
	}

	h.logger.Debug("delete task request", slog.String("task_id", taskID))

	if err := h.taskService.DeleteTask(r.Context(), taskID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeMessage(w, h.logger, http.StatusOK, MsgTaskDeleted)
}

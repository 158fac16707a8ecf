package handler

import (
	"log/slog"
	"net/http"

	"github.com/aryan0dhankhar/workforce/internal/service"
)

// Handlers groups the API endpoint handlers
type Handlers struct {
	CreateEmployee *CreateEmployeeHandler
	ListEmployees  *ListEmployeesHandler
	CreateTask     *CreateTaskHandler
	ListTasks      *ListTasksHandler
	UpdateTask     *UpdateTaskHandler
	DeleteTask     *DeleteTaskHandler
}

// NewHandlers builds every API handler over the given services
func NewHandlers(employees *service.EmployeeService, tasks *service.TaskService, logger *slog.Logger) *Handlers {
	return &Handlers{
		CreateEmployee: NewCreateEmployeeHandler(employees, logger),
		ListEmployees:  NewListEmployeesHandler(employees, logger),
		CreateTask:     NewCreateTaskHandler(tasks, logger),
		ListTasks:      NewListTasksHandler(tasks, logger),
		UpdateTask:     NewUpdateTaskHandler(tasks, logger),
		DeleteTask:     NewDeleteTaskHandler(tasks, logger),
	}
}

// Register mounts the API on mux. With legacy set, the paths used by the
// original web UI are mounted onto the same handlers.
func (h *Handlers) Register(mux *http.ServeMux, legacy bool) {
	mux.Handle("POST /employee", h.CreateEmployee)
	mux.Handle("GET /employee", h.ListEmployees)
	mux.Handle("POST /task", h.CreateTask)
	mux.Handle("GET /task", h.ListTasks)
	mux.Handle("PUT /task/{id}", h.UpdateTask)
	mux.Handle("DELETE /task/{id}", h.DeleteTask)

	if !legacy {
		return
	}
	mux.Handle("POST /api/v1/employee/send", h.CreateEmployee)
	mux.Handle("GET /api/v1/employee/getall", h.ListEmployees)
	mux.Handle("POST /api/v1/task/send", h.CreateTask)
	mux.Handle("GET /api/v1/task/getall", h.ListTasks)
	mux.Handle("PUT /api/v1/task/update/{id}", h.UpdateTask)
	mux.Handle("DELETE /api/v1/task/delete/{id}", h.DeleteTask)
}

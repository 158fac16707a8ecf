package handler

import (
	"log/slog"
	"net/http"

	"github.com/aryan0dhankhar/workforce/internal/service"
)

// CreateEmployeeHandler handles employee registration
type CreateEmployeeHandler struct {
	employeeService *service.EmployeeService
	logger          *slog.Logger
}

// NewCreateEmployeeHandler creates a new create employee handler
func NewCreateEmployeeHandler(employeeService *service.EmployeeService, logger *slog.Logger) *CreateEmployeeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreateEmployeeHandler{employeeService: employeeService, logger: logger}
}

// ServeHTTP handles POST /employee requests
func (h *CreateEmployeeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(w, r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	employee, err := h.employeeService.CreateEmployee(r.Context(), payload)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, envelope{
		"success":  true,
		"message":  MsgEmployeeCreated,
		"employee": employee,
	})
}

// ListEmployeesHandler lists the employee directory
type ListEmployeesHandler struct {
	employeeService *service.EmployeeService
	logger          *slog.Logger
}

// NewListEmployeesHandler creates a new list employees handler
func NewListEmployeesHandler(employeeService *service.EmployeeService, logger *slog.Logger) *ListEmployeesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListEmployeesHandler{employeeService: employeeService, logger: logger}
}

// ServeHTTP handles GET /employee requests
func (h *ListEmployeesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.ListEmployees(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, envelope{
		"success":   true,
		"employees": employees,
	})
}

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"
)

// Pinger is a dependency that can report its health
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependency is a named readiness check. Optional dependencies are reported
// but do not make the service unready.
type Dependency struct {
	Name     string
	Pinger   Pinger
	Optional bool
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	deps   []Dependency
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(logger *slog.Logger, deps ...Dependency) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{deps: deps, logger: logger}
}

// HealthResponse represents the health status response
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadinessResponse represents the readiness check response
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health handles GET /healthz, a liveness check that always succeeds
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, envelope{"status": "ok"})
}

// Ready handles GET /readyz. It returns 503 when a required dependency fails.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.deps))
	status := "ready"
	statusCode := http.StatusOK

	for _, dep := range h.deps {
		if err := dep.Pinger.Ping(ctx); err != nil {
			checks[dep.Name] = "error: " + err.Error()
			if dep.Optional {
				if status == "ready" {
					status = "degraded"
				}
				continue
			}
			status = "not_ready"
			statusCode = http.StatusServiceUnavailable
			continue
		}
		checks[dep.Name] = "ok"
	}

	writeJSON(w, h.logger, statusCode, envelope{"status": status, "checks": checks})

	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)
	attrs := []any{slog.String("status", status)}
	for _, name := range names {
		attrs = append(attrs, slog.String(name, checks[name]))
	}
	h.logger.Debug("readiness check", attrs...)
}

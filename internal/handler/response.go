package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aryan0dhankhar/workforce/internal/domain"
)

const maxBodyBytes = 1 << 20

// Messages returned to API clients
const (
	MsgEmployeeCreated   = "Employee Created Successfully!"
	MsgDuplicateEmail    = "Email already registered!"
	MsgTaskCreated       = "Task Created and Assigned Successfully!"
	MsgEmployeeNotFound  = "Employee not found! Cannot assign task."
	MsgTaskUpdated       = "Task Updated Successfully!"
	MsgTaskNotFound      = "Task not found!"
	MsgTaskDeleted       = "Task Deleted Successfully!"
	MsgInvalidJSON       = "Request body must be a valid JSON object"
	MsgBodyTooLarge      = "Request body is too large"
	MsgInternalError     = "Internal server error"
	MsgMissingIdentifier = "Task id is required"
)

// envelope is the uniform response body: success, an optional message and
// the operation payload.
type envelope map[string]any

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func writeMessage(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	writeJSON(w, logger, status, envelope{"success": status < 400, "message": message})
}

// writeError converts a service error into the response envelope. Store
// details are logged and never sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var verr *domain.ValidationError
	var maxErr *http.MaxBytesError

	switch {
	case errors.As(err, &verr):
		writeMessage(w, logger, http.StatusBadRequest, verr.Error())
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeMessage(w, logger, http.StatusBadRequest, MsgDuplicateEmail)
	case errors.Is(err, domain.ErrEmployeeNotFound):
		writeMessage(w, logger, http.StatusNotFound, MsgEmployeeNotFound)
	case errors.Is(err, domain.ErrTaskNotFound):
		writeMessage(w, logger, http.StatusNotFound, MsgTaskNotFound)
	case errors.As(err, &maxErr):
		writeMessage(w, logger, http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
	case errors.Is(err, errInvalidJSON):
		writeMessage(w, logger, http.StatusBadRequest, MsgInvalidJSON)
	default:
		logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeMessage(w, logger, http.StatusInternalServerError, MsgInternalError)
	}
}

var errInvalidJSON = errors.New("invalid json body")

// decodePayload reads the body as a JSON object. An empty body decodes to an
// empty payload so that validation reports the missing fields.
func decodePayload(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, err
		}
		return nil, errInvalidJSON
	}
	if payload == nil {
		return map[string]any{}, nil
	}
	if dec.More() {
		return nil, errInvalidJSON
	}
	return payload, nil
}

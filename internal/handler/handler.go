package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"mini-inventory/internal/middleware"
	"mini-inventory/internal/model"

	"github.com/rs/zerolog"
)

// PathRequest names a file under the inventory data directory.
type PathRequest struct {
	Path string `json:"path"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeText writes a plain-text response.
func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}

// writeError writes an error response carrying the request's correlation id.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	correlationID := middleware.RequestIDFromContext(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Str("error", code).
		Str("message", message).
		Int("status", status).
		Str("request_id", correlationID).
		Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: correlationID,
	})
}

// writeDomainError maps a service error to its HTTP status.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var de *model.DomainError
	if !errors.As(err, &de) {
		logger.Error().Err(err).Msg("unexpected error")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}

	// The cause can name server paths; it goes to the log only.
	status := statusFor(de.Code)
	if de.Err != nil {
		logger.Debug().Err(err).Str("error", de.Code).Int("status", status).Msg("error cause")
	}
	writeError(w, r, status, de.Code, de.Message, logger)
}

func statusFor(code string) int {
	switch code {
	case model.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case model.ErrCodeProductNotFound:
		return http.StatusNotFound
	case model.ErrCodeInsufficientStock:
		return http.StatusConflict
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeDatabaseDisabled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return model.NewInvalidInput("invalid request body", err)
	}
	return nil
}

// decodePath decodes a PathRequest and rejects paths that escape the data directory.
func decodePath(r *http.Request) (string, error) {
	var req PathRequest
	if err := decodeJSON(r, &req); err != nil {
		return "", err
	}
	if req.Path == "" {
		return "", model.NewInvalidInput("path is required", nil)
	}
	if !filepath.IsLocal(req.Path) {
		return "", model.NewInvalidInput(fmt.Sprintf("path %q must be relative to the data directory", req.Path), nil)
	}
	return req.Path, nil
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"library-rental-backend/internal/domain"
	"library-rental-backend/internal/logger"
)

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnavailable),
		errors.Is(err, domain.ErrAlreadyReturned),
		errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidArgument), errors.As(err, &validationErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := ErrorResponse{
		Message:   http.StatusText(status),
		RequestID: RequestIDFromContext(r.Context()),
	}
	if status == http.StatusInternalServerError {
		// Corruption and store failures are not echoed to clients.
		logger.ErrorContext(r.Context(), "Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", resp.RequestID,
			"error", err)
	} else {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeMessage(w http.ResponseWriter, r *http.Request, status int, details string) {
	writeJSON(w, status, ErrorResponse{
		Message:   http.StatusText(status),
		Details:   details,
		RequestID: RequestIDFromContext(r.Context()),
	})
}

package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/templui/vidshare/internal/service"
	"github.com/templui/vidshare/internal/validation"
)

const maxJSONBody = 1 << 20 // 1 MB

var errInvalidBody = &validation.Error{Code: "invalid_request_body", Message: "Invalid request body"}

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// decodeJSON reads a bounded JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return errInvalidBody
	}
	return nil
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Anything unrecognised is a 500 whose cause is logged, not echoed.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Code, verr.Message)
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
	case errors.Is(err, service.ErrInvalidSession), errors.Is(err, service.ErrSessionExpired):
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
	case errors.Is(err, service.ErrInvalidOrExpiredToken):
		writeError(w, http.StatusBadRequest, "invalid_or_expired_reset_token", "Invalid or expired reset token")
	case errors.Is(err, service.ErrEmailAlreadyExists):
		writeError(w, http.StatusConflict, "email_already_exists", "User already exists")
	case errors.Is(err, service.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", "User not found")
	case errors.Is(err, service.ErrVideoNotFound):
		writeError(w, http.StatusNotFound, "video_not_found", "Video not found")
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}

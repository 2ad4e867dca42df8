package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"quiz-backend/internal/services"
	"quiz-backend/utils/response"

	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	// The body must hold exactly one JSON value.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps service errors onto statuses. Store failures are logged
// with their cause and reported to the client with a generic message only.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError

	switch {
	case errors.As(err, &verr):
		response.Error(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, services.ErrDuplicateEntity):
		response.Error(w, http.StatusBadRequest, "Entity already exists")
	case errors.Is(err, services.ErrMissingToken):
		response.Error(w, http.StatusUnauthorized, "Token is missing")
	case errors.Is(err, services.ErrInvalidToken):
		response.Error(w, http.StatusUnauthorized, "Token is invalid")
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrForbidden):
		response.Error(w, http.StatusForbidden, "Admin access required")
	case errors.Is(err, services.ErrUserNotFound):
		response.Error(w, http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrCategoryNotFound):
		response.Error(w, http.StatusNotFound, "Category not found")
	case errors.Is(err, services.ErrStoreUnavailable):
		slog.ErrorContext(r.Context(), "store failure", "method", r.Method, "path", r.URL.Path, "error", err)
		response.Error(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}

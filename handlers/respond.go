// Package handlers exposes the JSON HTTP surface: public post reads and
// comments, session endpoints, and the privilege-gated admin routes.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/projectwalnut/backend/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the service error taxonomy onto HTTP status codes.
// Unrecognized errors are logged in full and reported generically.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	var verr *apperr.ValidationError
	var rerr *apperr.RenderError
	switch {
	case errors.As(err, &verr), errors.As(err, &rerr), errors.Is(err, apperr.ErrSelfDelete):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, apperr.ErrInvalidCredentials),
		errors.Is(err, apperr.ErrLoginDisabled),
		errors.Is(err, apperr.ErrInvalidToken),
		errors.Is(err, apperr.ErrTokenExpired):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, apperr.ErrForbidden), errors.Is(err, apperr.ErrRegistrationDisabled):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, apperr.ErrDuplicateUsername):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		log.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

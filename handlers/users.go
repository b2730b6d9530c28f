package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/projectwalnut/backend/apperr"
	"github.com/projectwalnut/backend/middleware"
	"github.com/projectwalnut/backend/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler serves the webmaster user-administration panel.
type UserHandler struct {
	Users *service.UserService
	Log   *slog.Logger
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	actingID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}
	users, err := h.Users.AdminListUsers(r.Context(), actingID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	actingID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}
	targetID, err := userIDParam(r)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	var in service.AdminUpdateUserInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := h.Users.AdminUpdateUser(r.Context(), actingID, targetID, in); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user updated"})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actingID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}
	targetID, err := userIDParam(r)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Users.AdminDeleteUser(r.Context(), actingID, targetID); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

func userIDParam(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		return primitive.NilObjectID, apperr.ErrNotFound
	}
	return id, nil
}

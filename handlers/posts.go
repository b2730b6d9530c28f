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

// PostHandler serves the authenticated dashboard routes.
type PostHandler struct {
	Posts *service.PostService
	Log   *slog.Logger
}

func (h *PostHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}
	posts, err := h.Posts.ListVisibleFor(r.Context(), userID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}
	var in service.PostInput
	if !decodeBody(w, r, &in) {
		return
	}
	id, err := h.Posts.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id.Hex()})
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}
	postID, err := postIDParam(r)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	var in service.PostInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := h.Posts.Update(r.Context(), postID, userID, in); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "post updated"})
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}
	postID, err := postIDParam(r)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Posts.Delete(r.Context(), postID, userID); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}

func postIDParam(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "postID"))
	if err != nil {
		return primitive.NilObjectID, apperr.ErrNotFound
	}
	return id, nil
}

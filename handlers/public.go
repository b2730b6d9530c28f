package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/projectwalnut/backend/middleware"
	"github.com/projectwalnut/backend/models"
	"github.com/projectwalnut/backend/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PublicHandler serves the unauthenticated reading surface: the paginated
// home feed, post detail with comments, search, and anonymous commenting.
type PublicHandler struct {
	Posts      *service.PostService
	Comments   *service.CommentService
	SiteConfig *service.SiteConfigService
	Users      service.UserStore
	Log        *slog.Logger
}

func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = n
		}
	}
	posts, hasNext, err := h.Posts.ListPublic(r.Context(), page)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	sc, err := h.SiteConfig.Public(r.Context())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if page < 1 {
		page = 1
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"posts":       posts,
		"page":        page,
		"hasNextPage": hasNext,
		"siteConfig":  sc,
	})
}

// PostDetail serves a single post with its comments. Unapproved posts are
// visible only to authenticated users.
func (h *PublicHandler) PostDetail(w http.ResponseWriter, r *http.Request) {
	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "postID"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "post not found"})
		return
	}
	post, err := h.Posts.Get(r.Context(), postID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if !post.IsApproved {
		if _, authed := middleware.UserIDFromContext(r.Context()); !authed {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "post not found"})
			return
		}
	}

	authorName := h.authorDisplayName(r, post.Author)
	comments, err := h.Comments.ListForPost(r.Context(), postID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"post":       post,
		"authorName": authorName,
		"comments":   comments,
	})
}

// authorDisplayName resolves the post author's display name, falling back
// when the account has since been deleted.
func (h *PublicHandler) authorDisplayName(r *http.Request, username string) string {
	author, err := h.Users.UserByUsername(r.Context(), username)
	if err != nil || author == nil {
		return "Anonymous"
	}
	return author.Name
}

func (h *PublicHandler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.Posts.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if results == nil {
		results = []models.Post{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": results})
}

func (h *PublicHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "postID"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "post not found"})
		return
	}
	var in service.CommentInput
	if !decodeBody(w, r, &in) {
		return
	}
	id, err := h.Comments.Add(r.Context(), postID, in)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id.Hex()})
}

// DeleteComment requires moderator privileges; the route sits behind Auth.
func (h *PublicHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}
	commentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "commentID"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "comment not found"})
		return
	}
	if err := h.Comments.Delete(r.Context(), userID, commentID); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}

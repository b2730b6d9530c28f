package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/projectwalnut/backend/config"
	"github.com/projectwalnut/backend/service"
)

// UploadHandler accepts multipart thumbnail image uploads and returns the
// public URL to put in a post's thumbnailImageURI field.
type UploadHandler struct {
	Media *service.MediaService
	Cfg   *config.Config
	Log   *slog.Logger
}

func (h *UploadHandler) UploadThumbnail(w http.ResponseWriter, r *http.Request) {
	if h.Media == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "image uploads are not configured"})
		return
	}
	maxBytes := h.Cfg.MaxUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "upload too large or malformed"})
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "image file is required"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "only image uploads are accepted"})
		return
	}

	url, err := h.Media.UploadImage(r.Context(), header.Filename, file, contentType)
	if err != nil {
		h.Log.Error("thumbnail upload failed", "filename", header.Filename, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "upload failed"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

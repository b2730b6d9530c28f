package handlers

import (
	"log/slog"
	"net/http"

	"github.com/projectwalnut/backend/middleware"
	"github.com/projectwalnut/backend/service"
)

// SiteConfigHandler serves the webmaster site-settings panel.
type SiteConfigHandler struct {
	SiteConfig *service.SiteConfigService
	Log        *slog.Logger
}

func (h *SiteConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	actingID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}
	cfg, err := h.SiteConfig.Get(r.Context(), actingID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"siteConfig": cfg})
}

func (h *SiteConfigHandler) Update(w http.ResponseWriter, r *http.Request) {
	actingID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}
	var in service.SiteConfigInput
	if !decodeBody(w, r, &in) {
		return
	}
	cfg, err := h.SiteConfig.Update(r.Context(), actingID, in)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"siteConfig": cfg})
}

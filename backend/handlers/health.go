// ABOUTME: HTTP handlers for health and defaults endpoints
// ABOUTME: Reports service status and the form defaults used to seed clients

package handlers

import (
	"net/http"
	"time"

	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
)

// Health returns API status including scoring mode and cache size.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	sweep := h.searcher.Sweep()
	resp := models.HealthResponse{
		Status:    "ok",
		AuthMode:  h.cfg.AuthMode,
		Scoring:   sweep.Scoring,
		CoilStep:  sweep.CoilStep,
		Timestamp: time.Now().UTC(),
	}
	if h.cache != nil {
		resp.CacheEntries = h.cache.Len()
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// Defaults returns the starting assembly values and the active sweep grid.
func (h *Handler) Defaults(w http.ResponseWriter, r *http.Request) {
	in := models.DefaultAssemblyInput()
	in.ShearModulus = h.cfg.ShearModulus

	h.writeJSON(w, http.StatusOK, models.DefaultsResponse{
		Input: in,
		Sweep: h.searcher.Sweep(),
	})
}

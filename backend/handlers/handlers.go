// ABOUTME: HTTP handlers for the spring calculator API
// ABOUTME: Holds shared dependencies and JSON request/response helpers

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Kevin-Gith/spring-design-calculator/backend/cache"
	"github.com/Kevin-Gith/spring-design-calculator/backend/config"
	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
	"github.com/Kevin-Gith/spring-design-calculator/backend/services"
	"golang.org/x/sync/singleflight"
)

// maxRequestBodySize limits JSON request bodies to 1MB
const maxRequestBodySize = 1 << 20

type Handler struct {
	cfg      *config.Config
	cache    *cache.Cache[models.SearchResult]
	searcher *services.SpringSearcher
	gate     *services.AccessGate
	inflight singleflight.Group
}

// NewHandler wires the searcher and access gate from cfg. A nil cfg uses
// defaults and a nil cache disables result caching.
func NewHandler(cfg *config.Config, c *cache.Cache[models.SearchResult]) *Handler {
	if cfg == nil {
		cfg = &config.Config{
			AuthMode:      config.AuthModeDisabled,
			MaxBatchSize:  20,
			SearchTimeout: 30 * time.Second,
			ShearModulus:  models.DefaultShearModulus,
			CoilStep:      1,
			MinScore:      2,
			ScoringMode:   models.ScoringFull,
		}
	}

	h := &Handler{
		cfg:      cfg,
		cache:    c,
		searcher: services.NewSpringSearcher(cfg.Sweep()),
	}
	if cfg.AuthMode == config.AuthModeRequired {
		h.gate = services.NewAccessGate(cfg.AccessKeyHash, cfg.TokenKey, cfg.TokenTTL)
	}
	return h
}

// Gate returns the access gate, or nil when authentication is disabled.
func (h *Handler) Gate() *services.AccessGate {
	return h.gate
}

// writeJSON writes a JSON response with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError writes a JSON error response.
func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeErrorDetails(w, message, "", code)
}

func (h *Handler) writeErrorDetails(w http.ResponseWriter, message, details string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error:   message,
		Details: details,
		Code:    code,
	})
}

// decodeJSON reads a size-limited JSON body into dst. On failure it writes
// the error response and returns false.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		h.writeErrorDetails(w, "Invalid JSON", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

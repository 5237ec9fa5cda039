// ABOUTME: HTTP handler for the shared access-key login
// ABOUTME: Exchanges the access key for a bearer token when auth is required

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
	"github.com/Kevin-Gith/spring-design-calculator/backend/services"
)

// Login validates the access key and returns a signed token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if h.gate == nil {
		h.writeError(w, "Authentication is disabled", http.StatusNotFound)
		return
	}

	var req models.LoginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.AccessKey == "" {
		h.writeError(w, "access_key is required", http.StatusBadRequest)
		return
	}

	token, expires, err := h.gate.Login(req.AccessKey)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAccessKey) {
			slog.Info("Login rejected", "reason", "invalid access key")
			h.writeError(w, "Invalid access key", http.StatusUnauthorized)
			return
		}
		slog.Error("Token issue failed", "error", err)
		h.writeError(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: expires,
	})
}

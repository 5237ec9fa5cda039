// ABOUTME: Bearer token middleware for the shared access-key gate
// ABOUTME: Verifies session tokens issued by the login endpoint and stores the session ID

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// AuthMode defines how authentication is enforced
type AuthMode string

const (
	// AuthModeDisabled skips all authentication
	AuthModeDisabled AuthMode = "disabled"
	// AuthModeRequired rejects requests without valid tokens
	AuthModeRequired AuthMode = "required"
)

// ValidateAuthMode validates an auth mode string and returns the corresponding AuthMode.
// Empty string defaults to AuthModeDisabled.
func ValidateAuthMode(mode string) (AuthMode, error) {
	switch mode {
	case "", "disabled":
		return AuthModeDisabled, nil
	case "required":
		return AuthModeRequired, nil
	default:
		return "", fmt.Errorf("invalid auth mode: %q (must be disabled or required)", mode)
	}
}

// TokenVerifier checks a bearer token and returns its session ID
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthConfig holds authentication middleware settings
type AuthConfig struct {
	Mode     AuthMode
	Verifier TokenVerifier
}

// contextKey is a private type for context keys to avoid collisions
type contextKey string

const sessionIDKey contextKey = "sessionID"

// Auth returns middleware that requires a valid bearer token unless the
// mode is disabled.
func Auth(cfg AuthConfig) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if cfg.Mode == AuthModeDisabled {
				next(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				slog.Debug("Auth rejected: no token", "path", sanitizePath(r.URL.Path))
				writeJSONError(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				slog.Debug("Auth rejected: invalid format", "path", sanitizePath(r.URL.Path))
				writeJSONError(w, "Invalid authorization format", http.StatusUnauthorized)
				return
			}

			if cfg.Verifier == nil {
				writeJSONError(w, "Bearer authentication unavailable", http.StatusUnauthorized)
				return
			}

			sessionID, err := cfg.Verifier.Verify(token)
			if err != nil {
				slog.Debug("Auth rejected: invalid token", "path", sanitizePath(r.URL.Path), "error", err)
				writeJSONError(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
			next(w, r.WithContext(ctx))
		}
	}
}

// SessionID returns the verified session ID, or "" for anonymous requests.
func SessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionIDKey).(string)
	return id
}

// ABOUTME: CORS middleware for API cross-origin requests
// ABOUTME: Echoes allowed origins, handles preflight OPTIONS, and adds required headers

package middleware

import (
	"net/http"
	"slices"
)

// CORS returns middleware that adds CORS headers for allowed origins.
// An origin of "*" allows every origin; an empty list blocks all
// cross-origin requests. OPTIONS preflight requests are answered with
// 204 without calling the wrapped handler.
func CORS(allowedOrigins []string) Middleware {
	allowAll := slices.Contains(allowedOrigins, "*")

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (allowAll || slices.Contains(allowedOrigins, origin)) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, Retry-After")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next(w, r)
		}
	}
}

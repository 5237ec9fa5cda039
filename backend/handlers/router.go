// ABOUTME: Builds the HTTP mux from the route table
// ABOUTME: Applies logging, CORS, rate limiting, and auth middleware per route

package handlers

import (
	"net/http"
	"time"

	"github.com/Kevin-Gith/spring-design-calculator/backend/config"
	"github.com/Kevin-Gith/spring-design-calculator/backend/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter registers every route behind the middleware chain
// logging -> CORS -> rate limit -> auth, plus the Prometheus endpoint.
func (h *Handler) NewRouter() *http.ServeMux {
	var defaultLimiter, authLimiter *middleware.RateLimiter
	if h.cfg.RateLimitEnabled {
		defaultLimiter = middleware.NewRateLimiter(h.cfg.RateLimitDefault, time.Minute)
		authLimiter = middleware.NewRateLimiter(h.cfg.RateLimitAuth, time.Minute)
	}

	mode := middleware.AuthModeDisabled
	if h.cfg.AuthMode == config.AuthModeRequired {
		mode = middleware.AuthModeRequired
	}
	var verifier middleware.TokenVerifier
	if h.gate != nil {
		verifier = h.gate
	}
	auth := middleware.Auth(middleware.AuthConfig{Mode: mode, Verifier: verifier})
	cors := middleware.CORS(h.cfg.CORSAllowedOrigins)

	mux := http.NewServeMux()
	for _, route := range h.Routes() {
		limiter := defaultLimiter
		if route.Tier == TierAuth {
			limiter = authLimiter
		}

		var authMW middleware.Middleware
		if !route.Public {
			authMW = auth
		}

		handler := middleware.Chain(route.Handler,
			middleware.LogRequest,
			cors,
			middleware.RateLimit(limiter, middleware.ClientIP),
			authMW,
		)
		mux.HandleFunc(route.Method+" "+route.Path, handler)
		// Preflight requests carry no token and must reach the CORS layer
		mux.HandleFunc(http.MethodOptions+" "+route.Path, middleware.Chain(route.Handler, middleware.LogRequest, cors))
	}

	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

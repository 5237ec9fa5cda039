// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods, handlers, and access tiers

package handlers

import "net/http"

// RateTier selects which rate limiter guards a route
type RateTier int

const (
	// TierDefault uses the general request budget
	TierDefault RateTier = iota
	// TierAuth uses the stricter login budget
	TierAuth
)

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
	Public  bool             // reachable without a bearer token
	Tier    RateTier
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health & Status
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health, Public: true},
		{Method: http.MethodGet, Path: "/api/v1/defaults", Handler: h.Defaults, Public: true},

		// Auth
		{Method: http.MethodPost, Path: "/api/v1/auth/login", Handler: h.Login, Public: true, Tier: TierAuth},

		// Springs
		{Method: http.MethodPost, Path: "/api/v1/springs/search", Handler: h.SearchSprings},
		{Method: http.MethodPost, Path: "/api/v1/springs/batch", Handler: h.BatchSearch},
		{Method: http.MethodPost, Path: "/api/v1/springs/report", Handler: h.SpringReport},

		// Documentation
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec, Public: true},
	}
}

// ABOUTME: API envelope models shared by handlers and the CLI client
// ABOUTME: Health, batch, and error response structures

package models

import "time"

// HealthResponse reports service status
type HealthResponse struct {
	Status       string      `json:"status"`
	AuthMode     string      `json:"auth_mode"`
	Scoring      ScoringMode `json:"scoring"`
	CoilStep     float64     `json:"coil_step"`
	CacheEntries int         `json:"cache_entries"`
	Timestamp    time.Time   `json:"timestamp"`
}

// DefaultsResponse carries the form defaults and the active sweep grid
type DefaultsResponse struct {
	Input AssemblyInput `json:"input"`
	Sweep SweepConfig   `json:"sweep"`
}

// BatchRequest asks for several independent searches
type BatchRequest struct {
	Assemblies []AssemblyInput `json:"assemblies"`
}

// BatchResponse holds one result per requested assembly, in request order
type BatchResponse struct {
	Results []SearchResult `json:"results"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}

// ABOUTME: Auth request/response models for the shared access-key gate
// ABOUTME: Defines the login contract that exchanges an access key for a token

package models

import "time"

// LoginRequest carries the shared access key
type LoginRequest struct {
	AccessKey string `json:"access_key"`
}

// LoginResponse returns a bearer token for subsequent requests
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

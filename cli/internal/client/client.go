// ABOUTME: HTTP client for the spring design calculator API
// ABOUTME: Wraps API calls with bearer auth and error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
)

// Client is the API client for the spring calculator backend
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// WithToken returns a copy of the client that sends the bearer token
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Health calls the /api/v1/health endpoint
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var health models.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Defaults calls the /api/v1/defaults endpoint
func (c *Client) Defaults(ctx context.Context) (*models.DefaultsResponse, error) {
	var defaults models.DefaultsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/defaults", nil, &defaults); err != nil {
		return nil, err
	}
	return &defaults, nil
}

// Login exchanges the shared access key for a bearer token
func (c *Client) Login(ctx context.Context, accessKey string) (*models.LoginResponse, error) {
	var login models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{AccessKey: accessKey}, &login); err != nil {
		return nil, err
	}
	return &login, nil
}

// Search runs a spring search on the backend
func (c *Client) Search(ctx context.Context, in models.AssemblyInput) (*models.SearchResult, error) {
	var result models.SearchResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/springs/search", in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Batch runs several independent searches on the backend
func (c *Client) Batch(ctx context.Context, inputs []models.AssemblyInput) (*models.BatchResponse, error) {
	var batch models.BatchResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/springs/batch", models.BatchRequest{Assemblies: inputs}, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

// do sends a JSON request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return fmt.Errorf("request canceled")
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("request timed out")
		}
		return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
			return fmt.Errorf("backend returned status %d", resp.StatusCode)
		}
		if errResp.Details != "" {
			return fmt.Errorf("backend error: %s: %s", errResp.Error, errResp.Details)
		}
		return fmt.Errorf("backend error: %s", errResp.Error)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// ABOUTME: End-to-end tests for rate limiting middleware
// ABOUTME: Tests full request flows with rate limit enforcement, per-client quotas, and disable mode

package e2e

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
)

// TestRateLimit_E2E_LoginEndpoint tests that the login endpoint uses the
// auth tier: 3 attempts pass, the 4th gets 429.
func TestRateLimit_E2E_LoginEndpoint(t *testing.T) {
	env := requiredAuthEnv(t)
	env["RATE_LIMIT_AUTH"] = "3"
	withTestEnv(t, env)
	server := newTestServer(t)

	headers := map[string]string{"X-Forwarded-For": "203.0.113.1"}
	body := models.LoginRequest{AccessKey: testAccessKey}

	for i := 0; i < 3; i++ {
		resp := do(t, http.MethodPost, server.URL+"/api/v1/auth/login", body, headers)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Request %d should succeed, got %d", i+1, resp.StatusCode)
		}
	}

	resp := do(t, http.MethodPost, server.URL+"/api/v1/auth/login", body, headers)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("4th request should return 429, got %d", resp.StatusCode)
	}

	retry, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || retry < 1 {
		t.Errorf("Expected positive Retry-After, got %q", resp.Header.Get("Retry-After"))
	}
	errBody := decode[models.ErrorResponse](t, resp)
	if errBody.Code != http.StatusTooManyRequests {
		t.Errorf("Expected code 429 in body, got %d", errBody.Code)
	}
}

// TestRateLimit_E2E_SeparateIPQuotas verifies that each client address has
// its own bucket.
func TestRateLimit_E2E_SeparateIPQuotas(t *testing.T) {
	withTestEnv(t, map[string]string{"RATE_LIMIT_DEFAULT": "2"})
	server := newTestServer(t)

	first := map[string]string{"X-Forwarded-For": "198.51.100.1"}
	second := map[string]string{"X-Forwarded-For": "198.51.100.2"}

	for i := 0; i < 2; i++ {
		if resp := do(t, http.MethodGet, server.URL+"/api/v1/defaults", nil, first); resp.StatusCode != http.StatusOK {
			t.Fatalf("Request %d from first client should succeed, got %d", i+1, resp.StatusCode)
		}
	}
	if resp := do(t, http.MethodGet, server.URL+"/api/v1/defaults", nil, first); resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("First client should be limited, got %d", resp.StatusCode)
	}

	if resp := do(t, http.MethodGet, server.URL+"/api/v1/defaults", nil, second); resp.StatusCode != http.StatusOK {
		t.Fatalf("Second client should have its own quota, got %d", resp.StatusCode)
	}
}

// TestRateLimit_E2E_SearchEndpoint checks that the spring routes share the
// default tier.
func TestRateLimit_E2E_SearchEndpoint(t *testing.T) {
	withTestEnv(t, map[string]string{"RATE_LIMIT_DEFAULT": "1"})
	server := newTestServer(t)

	headers := map[string]string{"X-Forwarded-For": "192.0.2.7"}
	if resp := do(t, http.MethodPost, server.URL+"/api/v1/springs/search", defaultAssembly(), headers); resp.StatusCode != http.StatusOK {
		t.Fatalf("First search should succeed, got %d", resp.StatusCode)
	}
	if resp := do(t, http.MethodPost, server.URL+"/api/v1/springs/search", defaultAssembly(), headers); resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("Second search should be limited, got %d", resp.StatusCode)
	}
}

func TestRateLimit_E2E_DisabledMode(t *testing.T) {
	withTestEnv(t, map[string]string{
		"RATE_LIMIT_ENABLED": "false",
		"RATE_LIMIT_DEFAULT": "1",
	})
	server := newTestServer(t)

	headers := map[string]string{"X-Forwarded-For": "192.0.2.8"}
	for i := 0; i < 5; i++ {
		if resp := do(t, http.MethodGet, server.URL+"/api/v1/health", nil, headers); resp.StatusCode != http.StatusOK {
			t.Fatalf("Request %d should pass with rate limiting disabled, got %d", i+1, resp.StatusCode)
		}
	}
}

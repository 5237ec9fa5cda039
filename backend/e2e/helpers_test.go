// ABOUTME: Test helpers for e2e tests
// ABOUTME: Builds a full router from environment config and provides request helpers

package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Kevin-Gith/spring-design-calculator/backend/config"
	"github.com/Kevin-Gith/spring-design-calculator/backend/handlers"
	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
	"github.com/Kevin-Gith/spring-design-calculator/backend/services"
)

const (
	testAccessKey = "bench-7-coil-winder"
	testTokenKey  = "0123456789abcdef0123456789abcdef"
)

// envKeys lists every variable config.Load reads so tests start clean.
var envKeys = []string{
	"PORT", "CACHE_TTL", "CORS_ALLOWED_ORIGINS", "MAX_BATCH_SIZE", "SEARCH_TIMEOUT",
	"AUTH_MODE", "ACCESS_KEY_HASH", "TOKEN_KEY", "TOKEN_TTL",
	"RATE_LIMIT_ENABLED", "RATE_LIMIT_AUTH", "RATE_LIMIT_DEFAULT",
	"SHEAR_MODULUS", "COIL_STEP", "MIN_SCORE", "SCORING_MODE",
}

// withTestEnv clears the service environment and applies extra. Values are
// restored when the test ends.
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    withTestEnv(t, map[string]string{
//	        "CORS_ALLOWED_ORIGINS": "https://example.com",
//	    })
//	}
func withTestEnv(t *testing.T, extra map[string]string) {
	t.Helper()

	for _, key := range envKeys {
		t.Setenv(key, "")
	}
	for key, value := range extra {
		t.Setenv(key, value)
	}
}

// requiredAuthEnv returns the variables that turn on the access gate.
func requiredAuthEnv(t *testing.T) map[string]string {
	t.Helper()

	hash, err := services.HashAccessKey(testAccessKey)
	if err != nil {
		t.Fatalf("HashAccessKey failed: %v", err)
	}
	return map[string]string{
		"AUTH_MODE":       "required",
		"ACCESS_KEY_HASH": hash,
		"TOKEN_KEY":       testTokenKey,
	}
}

// newTestRouter loads config from the environment and builds the full router.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load failed: %v", err)
	}
	return handlers.NewHandler(cfg, nil).NewRouter()
}

// newTestServer serves the full router over a real listener.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(newTestRouter(t))
	t.Cleanup(server.Close)
	return server
}

// do sends a request with an optional JSON body and extra headers.
func do(t *testing.T, method, url string, body interface{}, headers map[string]string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func defaultAssembly() models.AssemblyInput {
	return models.DefaultAssemblyInput()
}

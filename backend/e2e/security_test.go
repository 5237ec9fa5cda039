// ABOUTME: End-to-end tests for request hardening and the spring routes
// ABOUTME: Covers body limits, strict decoding, batch bounds, reports, and metrics exposure

package e2e

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
)

func TestSecurity_OversizedBodyRejected(t *testing.T) {
	withTestEnv(t, nil)
	router := newTestRouter(t)

	huge := `{"pad":"` + strings.Repeat("x", 2<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/springs/search", strings.NewReader(huge))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("Expected 413, got %d", rr.Code)
	}
}

func TestSecurity_UnknownFieldsRejected(t *testing.T) {
	withTestEnv(t, nil)
	server := newTestServer(t)

	resp := do(t, http.MethodPost, server.URL+"/api/v1/springs/search", `{"chip_length_mm":25,"debug":true}`, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", resp.StatusCode)
	}
	body := decode[models.ErrorResponse](t, resp)
	if !strings.Contains(body.Details, "debug") {
		t.Errorf("Expected details to name the unknown field, got %q", body.Details)
	}
}

func TestSecurity_InvalidAssemblyRejected(t *testing.T) {
	withTestEnv(t, nil)
	server := newTestServer(t)

	in := defaultAssembly()
	in.ScrewHeadDiameter = in.ScrewShaftDiameter - 0.5

	resp := do(t, http.MethodPost, server.URL+"/api/v1/springs/search", in, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400 for head narrower than shaft, got %d", resp.StatusCode)
	}
}

func TestSecurity_BatchSizeBounded(t *testing.T) {
	withTestEnv(t, map[string]string{"MAX_BATCH_SIZE": "2"})
	server := newTestServer(t)

	req := models.BatchRequest{Assemblies: []models.AssemblyInput{defaultAssembly(), defaultAssembly(), defaultAssembly()}}
	resp := do(t, http.MethodPost, server.URL+"/api/v1/springs/batch", req, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400 for oversized batch, got %d", resp.StatusCode)
	}

	req.Assemblies = req.Assemblies[:2]
	resp = do(t, http.MethodPost, server.URL+"/api/v1/springs/batch", req, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 for batch within limit, got %d", resp.StatusCode)
	}
	batch := decode[models.BatchResponse](t, resp)
	if len(batch.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(batch.Results))
	}
	if batch.Results[0].Returned != batch.Results[1].Returned {
		t.Error("Identical assemblies should rank identically")
	}
}

func TestSecurity_ReportDownload(t *testing.T) {
	withTestEnv(t, nil)
	server := newTestServer(t)

	resp := do(t, http.MethodPost, server.URL+"/api/v1/springs/report?format=tsv", defaultAssembly(), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/tab-separated-values") {
		t.Errorf("Unexpected Content-Type %q", resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(resp.Header.Get("Content-Disposition"), ".tsv") {
		t.Errorf("Expected .tsv attachment, got %q", resp.Header.Get("Content-Disposition"))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines < 2 {
		t.Errorf("Expected header plus rows, got %d lines", lines)
	}

	resp = do(t, http.MethodPost, server.URL+"/api/v1/springs/report?format=docx", defaultAssembly(), nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400 for unknown format, got %d", resp.StatusCode)
	}
}

func TestSecurity_MethodNotAllowed(t *testing.T) {
	withTestEnv(t, nil)
	server := newTestServer(t)

	resp := do(t, http.MethodGet, server.URL+"/api/v1/springs/search", nil, nil)
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("Expected 405, got %d", resp.StatusCode)
	}
}

func TestSecurity_MetricsExposeSearchCounters(t *testing.T) {
	withTestEnv(t, nil)
	server := newTestServer(t)

	do(t, http.MethodPost, server.URL+"/api/v1/springs/search", defaultAssembly(), nil)

	resp := do(t, http.MethodGet, server.URL+"/metrics", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 from /metrics, got %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(data), "spring_search_total") {
		t.Error("Expected spring_search_total in metrics output")
	}
}

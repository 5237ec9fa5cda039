// ABOUTME: Tests for the search command
// ABOUTME: Covers input resolution, sweep options, local and remote searches, and exports

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
)

func localOptions() searchOptions {
	return searchOptions{sweepOptions: sweepOptions{coilStep: 1, minScore: 2}}
}

func TestResolveInput_FlagsOnly(t *testing.T) {
	in := models.DefaultAssemblyInput()
	cmd := &cobra.Command{}
	bindAssemblyFlags(cmd, &in)

	if err := cmd.Flags().Set("max-psi", "55"); err != nil {
		t.Fatal(err)
	}

	got, err := resolveInput(cmd, "", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ChipMaxPSI != 55 {
		t.Errorf("expected max psi 55, got %v", got.ChipMaxPSI)
	}
}

func TestResolveInput_FileWithOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.yaml")
	os.WriteFile(path, []byte("chip_width_mm: 30\nscrew_count: 6\n"), 0644)

	in := models.DefaultAssemblyInput()
	cmd := &cobra.Command{}
	bindAssemblyFlags(cmd, &in)
	cmd.Flags().Set("screws", "3")

	got, err := resolveInput(cmd, path, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ChipWidth != 30 {
		t.Errorf("expected width from file, got %v", got.ChipWidth)
	}
	if got.ScrewCount != 3 {
		t.Errorf("expected explicit flag to override file, got %d", got.ScrewCount)
	}
}

func TestResolveInput_MissingFile(t *testing.T) {
	in := models.DefaultAssemblyInput()
	cmd := &cobra.Command{}
	bindAssemblyFlags(cmd, &in)

	if _, err := resolveInput(cmd, "/nonexistent.yaml", in); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSweepOptions(t *testing.T) {
	sweep, err := sweepOptions{legacy: true, coilStep: 0.5, minScore: 3}.sweep()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sweep.Scoring != models.ScoringLegacy || sweep.CoilStep != 0.5 || sweep.MinScore != 3 {
		t.Errorf("unexpected sweep %+v", sweep)
	}

	if _, err := (sweepOptions{coilStep: 0.25, minScore: 2}).sweep(); err == nil {
		t.Error("expected error for coil step 0.25")
	}
	if _, err := (sweepOptions{legacy: true, coilStep: 1, minScore: 4}).sweep(); err == nil {
		t.Error("expected error for min score above the legacy maximum")
	}
}

func TestRunSearch_LocalHuman(t *testing.T) {
	var buf bytes.Buffer
	code := runSearch(context.Background(), &buf, models.DefaultAssemblyInput(), localOptions())

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Spring candidates") {
		t.Error("expected results header")
	}
	if !strings.Contains(buf.String(), "requested 5, returned 5") {
		t.Errorf("expected five results, got %s", buf.String())
	}
}

func TestRunSearch_LocalJSON(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	var buf bytes.Buffer
	if code := runSearch(context.Background(), &buf, models.DefaultAssemblyInput(), localOptions()); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	var result models.SearchResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if result.Returned != 5 {
		t.Errorf("expected 5 results, got %d", result.Returned)
	}
	for i := 1; i < len(result.Candidates); i++ {
		if result.Candidates[i].Score > result.Candidates[i-1].Score {
			t.Errorf("candidates not ranked by score at %d", i)
		}
	}
}

func TestRunSearch_InvalidInput(t *testing.T) {
	in := models.DefaultAssemblyInput()
	in.ScrewHeadDiameter = 1.0

	var buf bytes.Buffer
	if code := runSearch(context.Background(), &buf, in, localOptions()); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "Error:") {
		t.Error("expected error message")
	}
}

func TestRunSearch_Exports(t *testing.T) {
	dir := t.TempDir()
	opts := localOptions()
	opts.xlsx = filepath.Join(dir, "springs.xlsx")
	opts.tsv = filepath.Join(dir, "springs.tsv")

	var buf bytes.Buffer
	if code := runSearch(context.Background(), &buf, models.DefaultAssemblyInput(), opts); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}

	for _, path := range []string{opts.xlsx, opts.tsv} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("expected %s to exist: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("expected %s to be non-empty", path)
		}
	}
}

func TestRunSearch_ExportToMissingDir(t *testing.T) {
	opts := localOptions()
	opts.pdf = "/nonexistent/dir/springs.pdf"

	var buf bytes.Buffer
	if code := runSearch(context.Background(), &buf, models.DefaultAssemblyInput(), opts); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}

func TestRunSearch_Remote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer remote-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Authentication required", Code: 401})
			return
		}
		json.NewEncoder(w).Encode(models.SearchResult{
			Requested: 5,
			Empty:     true,
			Shortfall: true,
			MaxScore:  4,
			Message:   models.NoFeasibleMessage,
		})
	}))
	defer server.Close()

	apiURL = server.URL
	apiToken = "remote-token"
	defer func() { apiURL = ""; apiToken = "" }()

	opts := localOptions()
	opts.remote = true

	var buf bytes.Buffer
	if code := runSearch(context.Background(), &buf, models.DefaultAssemblyInput(), opts); code != 1 {
		t.Errorf("expected exit code 1 for empty remote result, got %d", code)
	}
	if !strings.Contains(buf.String(), models.NoFeasibleMessage) {
		t.Errorf("expected no-feasible message, got %s", buf.String())
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name   string
		result models.SearchResult
		strict bool
		want   int
	}{
		{"full result", models.SearchResult{}, false, 0},
		{"shortfall tolerated", models.SearchResult{Shortfall: true}, false, 0},
		{"shortfall strict", models.SearchResult{Shortfall: true}, true, 1},
		{"empty", models.SearchResult{Empty: true, Shortfall: true}, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.result, tt.strict); got != tt.want {
				t.Errorf("exitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

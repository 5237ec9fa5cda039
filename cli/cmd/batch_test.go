// ABOUTME: Tests for the batch command
// ABOUTME: Verifies ordering, JSON output, table rendering, and error exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
)

func writeAssembly(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunBatch_JSONKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeAssembly(t, dir, "a.yaml", "result_count: 2\n")
	b := writeAssembly(t, dir, "b.yaml", "result_count: 4\n")

	jsonOutput = true
	defer func() { jsonOutput = false }()

	var buf bytes.Buffer
	if code := runBatch(context.Background(), &buf, []string{a, b}, sweepOptions{coilStep: 1, minScore: 2}); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}

	var entries []batchEntry
	if err := json.Unmarshal(buf.Bytes(), &entries); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].File != a || entries[0].Result.Requested != 2 {
		t.Errorf("unexpected first entry %s requested %d", entries[0].File, entries[0].Result.Requested)
	}
	if entries[1].File != b || entries[1].Result.Requested != 4 {
		t.Errorf("unexpected second entry %s requested %d", entries[1].File, entries[1].Result.Requested)
	}
}

func TestRunBatch_Table(t *testing.T) {
	dir := t.TempDir()
	a := writeAssembly(t, dir, "sensor-clip.yaml", "{}\n")

	var buf bytes.Buffer
	if code := runBatch(context.Background(), &buf, []string{a}, sweepOptions{coilStep: 1, minScore: 2}); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "sensor-clip") {
		t.Errorf("expected assembly name in table, got %s", buf.String())
	}
	if !strings.Contains(buf.String(), "5/5") {
		t.Errorf("expected returned count, got %s", buf.String())
	}
}

func TestRunBatch_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	bad := writeAssembly(t, dir, "bad.yaml", "screw_head_diameter_mm: 0.5\n")

	var buf bytes.Buffer
	if code := runBatch(context.Background(), &buf, []string{bad}, sweepOptions{coilStep: 1, minScore: 2}); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "bad.yaml") {
		t.Errorf("expected file name in error, got %s", buf.String())
	}
}

func TestFormatBatchTable_Empty(t *testing.T) {
	out := formatBatchTable([]batchEntry{{
		File:   "tight.yaml",
		Result: models.SearchResult{Requested: 5, Empty: true, Message: models.NoFeasibleMessage},
	}})

	if !strings.Contains(out, "tight") || !strings.Contains(out, "0/5") {
		t.Errorf("unexpected table %s", out)
	}
}

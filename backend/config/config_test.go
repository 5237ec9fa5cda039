package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Cleanup(withCleanEnv(t, nil))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.CacheTTL != 300 {
		t.Errorf("Expected default cache TTL 300, got %d", cfg.CacheTTL)
	}
	if cfg.AuthMode != AuthModeDisabled {
		t.Errorf("Expected auth mode disabled, got %s", cfg.AuthMode)
	}
	if cfg.ShearModulus != models.DefaultShearModulus {
		t.Errorf("Expected shear modulus %v, got %v", models.DefaultShearModulus, cfg.ShearModulus)
	}
	if cfg.ScoringMode != models.ScoringFull {
		t.Errorf("Expected full scoring, got %s", cfg.ScoringMode)
	}
	if cfg.SearchTimeout != 30*time.Second {
		t.Errorf("Expected 30s search timeout, got %s", cfg.SearchTimeout)
	}
	if !cfg.RateLimitEnabled {
		t.Error("Expected rate limiting enabled by default")
	}
}

func TestLoadConfig_Sweep(t *testing.T) {
	t.Cleanup(withCleanEnv(t, map[string]string{
		"COIL_STEP":    "0.5",
		"MIN_SCORE":    "3",
		"SCORING_MODE": "legacy",
	}))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	sweep := cfg.Sweep()
	if sweep.CoilStep != 0.5 {
		t.Errorf("Expected coil step 0.5, got %v", sweep.CoilStep)
	}
	if sweep.MinScore != 3 {
		t.Errorf("Expected min score 3, got %d", sweep.MinScore)
	}
	if sweep.Scoring != models.ScoringLegacy {
		t.Errorf("Expected legacy scoring, got %s", sweep.Scoring)
	}
	if sweep.WireDiameterStep != 0.1 {
		t.Errorf("Expected default wire step, got %v", sweep.WireDiameterStep)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"unknown auth mode", map[string]string{"AUTH_MODE": "optional"}, "AUTH_MODE"},
		{"required without hash", map[string]string{"AUTH_MODE": "required", "TOKEN_KEY": strings.Repeat("k", 32)}, "ACCESS_KEY_HASH"},
		{"required with short key", map[string]string{"AUTH_MODE": "required", "ACCESS_KEY_HASH": "x", "TOKEN_KEY": "short"}, "TOKEN_KEY"},
		{"unknown scoring mode", map[string]string{"SCORING_MODE": "strict"}, "SCORING_MODE"},
		{"coil step", map[string]string{"COIL_STEP": "0.25"}, "COIL_STEP"},
		{"min score above legacy max", map[string]string{"SCORING_MODE": "legacy", "MIN_SCORE": "4"}, "MIN_SCORE"},
		{"negative shear modulus", map[string]string{"SHEAR_MODULUS": "-1"}, "SHEAR_MODULUS"},
		{"rate limit zero", map[string]string{"RATE_LIMIT_DEFAULT": "0"}, "RATE_LIMIT_DEFAULT"},
		{"batch size too large", map[string]string{"MAX_BATCH_SIZE": "501"}, "MAX_BATCH_SIZE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(withCleanEnv(t, tt.env))

			_, err := Load()
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadConfig_RequiredAuth(t *testing.T) {
	t.Cleanup(withCleanEnv(t, requiredAuthEnv()))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.AuthMode != AuthModeRequired {
		t.Errorf("Expected required auth, got %s", cfg.AuthMode)
	}
	if cfg.TokenTTL != 12*time.Hour {
		t.Errorf("Expected 12h token TTL, got %s", cfg.TokenTTL)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Cleanup(withCleanEnv(t, nil))

	os.Setenv("TEST_DURATION", "45s")
	if got := getEnvDuration("TEST_DURATION", time.Second); got != 45*time.Second {
		t.Errorf("Expected 45s, got %s", got)
	}

	os.Setenv("TEST_DURATION", "90")
	if got := getEnvDuration("TEST_DURATION", time.Second); got != 90*time.Second {
		t.Errorf("Expected 90s, got %s", got)
	}

	os.Setenv("TEST_DURATION", "soon")
	if got := getEnvDuration("TEST_DURATION", time.Second); got != time.Second {
		t.Errorf("Expected fallback 1s, got %s", got)
	}
}

func TestGetEnvStringList(t *testing.T) {
	t.Cleanup(withCleanEnv(t, map[string]string{
		"CORS_ALLOWED_ORIGINS": " http://a.test , ,http://b.test",
	}))

	got := getEnvStringList("CORS_ALLOWED_ORIGINS")
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Errorf("Unexpected origins: %v", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Cleanup(withCleanEnv(t, map[string]string{"PORT": "9000"}))

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("PORT=7000\nCOIL_STEP=0.5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	LoadDotEnv(path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("Expected environment to win over env file, got port %s", cfg.Port)
	}
	if cfg.CoilStep != 0.5 {
		t.Errorf("Expected coil step from env file, got %v", cfg.CoilStep)
	}
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	t.Cleanup(withCleanEnv(t, nil))

	LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"))

	if _, err := Load(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

// ABOUTME: Configuration loader for the spring calculator service
// ABOUTME: Loads settings from environment variables (and optional .env) with defaults

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
	"github.com/joho/godotenv"
)

// Auth modes
const (
	AuthModeDisabled = "disabled"
	AuthModeRequired = "required"
)

type Config struct {
	// Server
	Port               string
	CacheTTL           int      // seconds, search result cache
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)
	MaxBatchSize       int      // assemblies per batch request
	SearchTimeout      time.Duration

	// Access gate
	AuthMode      string        // disabled, required (default: disabled)
	AccessKeyHash string        // bcrypt hash of the shared access key
	TokenKey      string        // HMAC key for issued tokens
	TokenTTL      time.Duration // lifetime of issued tokens

	// Rate Limiting
	RateLimitEnabled bool // Enable rate limiting (default: true)
	RateLimitAuth    int  // Requests per minute for the login endpoint (default: 5)
	RateLimitDefault int  // Requests per minute for all other endpoints (default: 100)

	// Sweep
	ShearModulus float64 // kgf/mm^2
	CoilStep     float64 // coil count increment, 1 or 0.5
	MinScore     int
	ScoringMode  models.ScoringMode
}

// Sweep returns the grid configuration derived from the environment.
func (c *Config) Sweep() models.SweepConfig {
	sweep := models.DefaultSweepConfig()
	sweep.CoilStep = c.CoilStep
	sweep.MinScore = c.MinScore
	sweep.Scoring = c.ScoringMode
	return sweep
}

// LoadDotEnv reads a .env file into the environment when one exists.
// Variables already set in the environment win.
func LoadDotEnv(path string) {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("Failed to read env file", "path", path, "error", err)
		}
		return
	}
	slog.Info("Loaded env file", "path", path)
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CacheTTL:           getEnvInt("CACHE_TTL", 300),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),
		MaxBatchSize:       getEnvInt("MAX_BATCH_SIZE", 20),
		SearchTimeout:      getEnvDuration("SEARCH_TIMEOUT", 30*time.Second),

		AuthMode:      strings.ToLower(getEnv("AUTH_MODE", AuthModeDisabled)),
		AccessKeyHash: os.Getenv("ACCESS_KEY_HASH"),
		TokenKey:      os.Getenv("TOKEN_KEY"),
		TokenTTL:      getEnvDuration("TOKEN_TTL", 12*time.Hour),

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitAuth:    getEnvInt("RATE_LIMIT_AUTH", 5),
		RateLimitDefault: getEnvInt("RATE_LIMIT_DEFAULT", 100),

		ShearModulus: getEnvFloat("SHEAR_MODULUS", models.DefaultShearModulus),
		CoilStep:     getEnvFloat("COIL_STEP", 1),
		MinScore:     getEnvInt("MIN_SCORE", 2),
	}

	mode, ok := models.ParseScoringMode(os.Getenv("SCORING_MODE"))
	if !ok {
		return nil, fmt.Errorf("SCORING_MODE must be full or legacy, got %q", os.Getenv("SCORING_MODE"))
	}
	cfg.ScoringMode = mode

	switch cfg.AuthMode {
	case AuthModeDisabled:
	case AuthModeRequired:
		if cfg.AccessKeyHash == "" {
			return nil, fmt.Errorf("ACCESS_KEY_HASH is required when AUTH_MODE=required")
		}
		if len(cfg.TokenKey) < 32 {
			return nil, fmt.Errorf("TOKEN_KEY must be at least 32 characters when AUTH_MODE=required")
		}
	default:
		return nil, fmt.Errorf("AUTH_MODE must be disabled or required, got %q", cfg.AuthMode)
	}

	if cfg.ShearModulus <= 0 {
		return nil, fmt.Errorf("SHEAR_MODULUS must be positive, got %v", cfg.ShearModulus)
	}
	if cfg.CoilStep != 1 && cfg.CoilStep != 0.5 {
		return nil, fmt.Errorf("COIL_STEP must be 1 or 0.5, got %v", cfg.CoilStep)
	}
	if cfg.MinScore < 0 || cfg.MinScore > cfg.ScoringMode.MaxScore() {
		return nil, fmt.Errorf("MIN_SCORE must be between 0 and %d, got %d", cfg.ScoringMode.MaxScore(), cfg.MinScore)
	}
	if cfg.SearchTimeout <= 0 {
		return nil, fmt.Errorf("SEARCH_TIMEOUT must be positive, got %s", cfg.SearchTimeout)
	}

	// Validate bounded integer values
	for _, rl := range []struct {
		name  string
		value int
		max   int
	}{
		{"RATE_LIMIT_AUTH", cfg.RateLimitAuth, 10000},
		{"RATE_LIMIT_DEFAULT", cfg.RateLimitDefault, 10000},
		{"MAX_BATCH_SIZE", cfg.MaxBatchSize, 500},
	} {
		if rl.value < 1 || rl.value > rl.max {
			return nil, fmt.Errorf("%s must be between 1 and %d, got %d", rl.name, rl.max, rl.value)
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("45s") or bare seconds ("45")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

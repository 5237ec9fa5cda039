// ABOUTME: Test helpers for config tests
// ABOUTME: Provides utilities for environment variable management

package config

import (
	"os"
	"testing"
)

// withCleanEnv clears the environment, sets the extra vars, and returns a
// cleanup function that restores the original env. Use with t.Cleanup().
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    t.Cleanup(withCleanEnv(t, map[string]string{
//	        "AUTH_MODE": "required",
//	    }))
//	}
func withCleanEnv(t *testing.T, extra map[string]string) func() {
	t.Helper()

	// Save entire environment
	originalEnv := os.Environ()

	// Clear environment for clean slate
	os.Clearenv()

	for key, value := range extra {
		os.Setenv(key, value)
	}

	// Return cleanup function that restores original environment
	return func() {
		os.Clearenv()
		for _, env := range originalEnv {
			for i := 0; i < len(env); i++ {
				if env[i] == '=' {
					os.Setenv(env[:i], env[i+1:])
					break
				}
			}
		}
	}
}

// requiredAuthEnv returns the minimum variables for AUTH_MODE=required
func requiredAuthEnv() map[string]string {
	return map[string]string{
		"AUTH_MODE":       "required",
		"ACCESS_KEY_HASH": "$2a$10$abcdefghijklmnopqrstuuPq9t1Yd7jzYQ3bW5m3uEJtN0aDk0wxa",
		"TOKEN_KEY":       "0123456789abcdef0123456789abcdef",
	}
}

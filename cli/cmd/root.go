// ABOUTME: Root command for the spring-select CLI
// ABOUTME: Handles global flags and backend configuration

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL     string
	apiToken   string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:8080"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "spring-select",
	Short: "Compression spring selection for screw-retained chips",
	Long: `spring-select searches a grid of wire diameters, inner diameters, coil counts,
and free lengths for compression springs that fit a screw-retained chip
assembly, and ranks them by how many feasibility checks they pass.

Searches run locally by default; --remote sends them to the backend.

Environment Variables:
  SPRING_API_URL       Backend API URL (default: http://localhost:8080)
  SPRING_API_TOKEN     Bearer token from "spring-select login"
  SPRING_PRESETS_PATH  Directory of YAML assembly presets`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides SPRING_API_URL)")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", "", "Bearer token (overrides SPRING_API_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("SPRING_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// GetAPIToken returns the bearer token from flag or env
func GetAPIToken() string {
	if apiToken != "" {
		return apiToken
	}
	return os.Getenv("SPRING_API_TOKEN")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// ABOUTME: Login command for the spring-select CLI
// ABOUTME: Exchanges the shared access key for a bearer token

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Kevin-Gith/spring-design-calculator/cli/internal/client"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var accessKey string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Get a bearer token from the backend",
	Long: `Exchange the shared access key for a bearer token.

The key is read from --access-key or prompted for. Export the printed token as
SPRING_API_TOKEN to use it with --remote searches.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		key := accessKey
		if key == "" {
			err := huh.NewInput().
				Title("Access key").
				EchoMode(huh.EchoModePassword).
				Value(&key).
				Run()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(2)
			}
		}

		if exitCode := runLogin(ctx, os.Stdout, strings.TrimSpace(key)); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&accessKey, "access-key", "", "Shared access key (prompted when omitted)")
}

// runLogin performs the login and returns exit code
func runLogin(ctx context.Context, w io.Writer, key string) int {
	if key == "" {
		fmt.Fprintln(w, "Error: access key is required")
		return 2
	}

	resp, err := client.New(GetAPIURL()).Login(ctx, key)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "export SPRING_API_TOKEN=%s\n", resp.Token)
	fmt.Fprintf(w, "# expires %s\n", resp.ExpiresAt.Local().Format(time.RFC1123))
	return 0
}

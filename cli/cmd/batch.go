// ABOUTME: Batch search command over several assembly files
// ABOUTME: Runs independent searches concurrently and prints a summary table

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
	"github.com/Kevin-Gith/spring-design-calculator/backend/services"
	"github.com/Kevin-Gith/spring-design-calculator/cli/internal/client"
	"github.com/Kevin-Gith/spring-design-calculator/cli/internal/presets"
	"github.com/Kevin-Gith/spring-design-calculator/cli/internal/tui/styles"
)

var batchOpts sweepOptions

var batchCmd = &cobra.Command{
	Use:   "batch FILE...",
	Short: "Search several assemblies at once",
	Long: `Run independent spring searches for several YAML assembly files.

Exit codes: 0 every assembly has results, 1 at least one has no feasible spring, 2 error.

Example:
  spring-select batch presets/*.yaml --json`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runBatch(ctx, os.Stdout, args, batchOpts); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	addSweepFlags(batchCmd, &batchOpts)
}

// batchEntry pairs a file with its search result for output
type batchEntry struct {
	File   string              `json:"file"`
	Result models.SearchResult `json:"result"`
}

func runBatch(ctx context.Context, w io.Writer, files []string, opts sweepOptions) int {
	opts.warnRemoteOverrides(os.Stderr)

	inputs := make([]models.AssemblyInput, len(files))
	for i, file := range files {
		in, err := presets.Load(file)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		in = in.WithDefaults()
		if err := in.Validate(); err != nil {
			fmt.Fprintf(w, "Error: %s: %v\n", file, err)
			return 2
		}
		inputs[i] = in
	}

	res, err := fetchBatch(ctx, inputs, opts)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	entries := make([]batchEntry, len(files))
	exitCode := 0
	for i := range files {
		entries[i] = batchEntry{File: files[i], Result: res[i]}
		if res[i].Empty {
			exitCode = 1
		}
	}

	if IsJSONOutput() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		return exitCode
	}

	fmt.Fprintln(w, formatBatchTable(entries))
	return exitCode
}

func fetchBatch(ctx context.Context, inputs []models.AssemblyInput, opts sweepOptions) ([]models.SearchResult, error) {
	if opts.remote {
		resp, err := client.New(GetAPIURL()).WithToken(GetAPIToken()).Batch(ctx, inputs)
		if err != nil {
			return nil, err
		}
		if len(resp.Results) != len(inputs) {
			return nil, fmt.Errorf("backend returned %d results for %d assemblies", len(resp.Results), len(inputs))
		}
		return resp.Results, nil
	}

	sweep, err := opts.sweep()
	if err != nil {
		return nil, err
	}
	return services.NewSpringSearcher(sweep).SearchBatch(ctx, inputs, runtime.GOMAXPROCS(0))
}

// formatBatchTable summarizes each assembly with its best spring
func formatBatchTable(entries []batchEntry) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Muted)).
		Headers("Assembly", "Returned", "Best", "WD", "ID", "SN", "FL", "PSI", "Note")

	for _, e := range entries {
		r := e.Result
		name := strings.TrimSuffix(filepath.Base(e.File), filepath.Ext(e.File))
		returned := fmt.Sprintf("%d/%d", r.Returned, r.Requested)

		if len(r.Candidates) == 0 {
			t.Row(name, returned, "-", "-", "-", "-", "-", "-", r.Message)
			continue
		}

		best := r.Candidates[0]
		note := ""
		if r.Shortfall {
			note = "shortfall"
		}
		t.Row(name, returned,
			models.Stars(best.Score, r.MaxScore),
			fmt.Sprintf("%.2f", best.WireDiameter),
			fmt.Sprintf("%.2f", best.InnerDiameter),
			fmt.Sprintf("%g", best.CoilCount),
			fmt.Sprintf("%.2f", best.FreeLength),
			fmt.Sprintf("%.2f", best.ChipPressurePSI),
			note,
		)
	}

	return t.Render()
}

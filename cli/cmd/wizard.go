// ABOUTME: Interactive wizard command
// ABOUTME: Prompts for an assembly, shows ranked springs, and offers to search again

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
	"github.com/Kevin-Gith/spring-design-calculator/cli/internal/presets"
	"github.com/Kevin-Gith/spring-design-calculator/cli/internal/tui/results"
	"github.com/Kevin-Gith/spring-design-calculator/cli/internal/tui/wizard"
)

var (
	wizardOpts   sweepOptions
	wizardSave   string
	wizardBrowse bool
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Enter an assembly interactively",
	Long: `Walk through the assembly fields in a form, optionally starting from a preset
found in SPRING_PRESETS_PATH or ./presets, then show the ranked springs.
After each search you can start over with the last values.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runWizard(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(wizardCmd)
	addSweepFlags(wizardCmd, &wizardOpts)
	wizardCmd.Flags().StringVar(&wizardSave, "save", "", "Save each entered assembly as YAML to this path")
	wizardCmd.Flags().BoolVar(&wizardBrowse, "browse", false, "Open the interactive results browser")
}

func runWizard(ctx context.Context, w io.Writer) int {
	wizardOpts.warnRemoteOverrides(os.Stderr)

	found, err := discoverPresets()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: presets unavailable: %v\n", err)
	}

	start := models.DefaultAssemblyInput()
	for {
		in, err := wizard.Run(start, found)
		if errors.Is(err, wizard.ErrCancelled) {
			return 0
		}
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}

		if wizardSave != "" {
			if err := presets.Save(wizardSave, in); err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 2
			}
			fmt.Fprintf(os.Stderr, "Saved %s\n", wizardSave)
		}

		result, err := fetchResult(ctx, in, wizardOpts)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
		} else if wizardBrowse && !result.Empty {
			if err := results.Run(result); err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				return 2
			}
		} else {
			fmt.Fprint(w, results.Render(result))
		}

		again := false
		if err := huh.NewConfirm().
			Title("Search again?").
			Affirmative("Yes").
			Negative("No").
			Value(&again).
			Run(); err != nil || !again {
			return 0
		}

		// Start the next round from what was just entered
		start = in
		found = nil
	}
}

func discoverPresets() ([]presets.Preset, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	dir := presets.FindPresetsDir(wd)
	if dir == "" {
		return nil, nil
	}
	return presets.Discover(dir)
}

// ABOUTME: Non-interactive spring search command
// ABOUTME: Reads an assembly from flags or YAML, searches locally or remotely, and exports reports

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
	"github.com/Kevin-Gith/spring-design-calculator/backend/services"
	"github.com/Kevin-Gith/spring-design-calculator/cli/internal/client"
	"github.com/Kevin-Gith/spring-design-calculator/cli/internal/presets"
	"github.com/Kevin-Gith/spring-design-calculator/cli/internal/tui/results"
	"github.com/spf13/cobra"
)

// sweepOptions tune the local search grid
type sweepOptions struct {
	remote   bool
	legacy   bool
	coilStep float64
	minScore int
}

// searchOptions controls one search invocation
type searchOptions struct {
	sweepOptions
	file   string
	xlsx   string
	pdf    string
	tsv    string
	browse bool
	strict bool
}

// assemblyFlag binds one AssemblyInput field to a command-line flag
type assemblyFlag struct {
	name  string
	usage string
	float func(*models.AssemblyInput) *float64
	count func(*models.AssemblyInput) *int
}

var assemblyFlags = []assemblyFlag{
	{name: "chip-length", usage: "Chip length in mm", float: func(in *models.AssemblyInput) *float64 { return &in.ChipLength }},
	{name: "chip-width", usage: "Chip width in mm", float: func(in *models.AssemblyInput) *float64 { return &in.ChipWidth }},
	{name: "stroke", usage: "Screw stroke in mm", float: func(in *models.AssemblyInput) *float64 { return &in.ScrewStroke }},
	{name: "room", usage: "Spring room with the screw unlocked, in mm", float: func(in *models.AssemblyInput) *float64 { return &in.SpringRoomUnlock }},
	{name: "shaft", usage: "Screw shaft diameter in mm", float: func(in *models.AssemblyInput) *float64 { return &in.ScrewShaftDiameter }},
	{name: "head", usage: "Screw head diameter in mm", float: func(in *models.AssemblyInput) *float64 { return &in.ScrewHeadDiameter }},
	{name: "max-psi", usage: "Chip max pressure in psi", float: func(in *models.AssemblyInput) *float64 { return &in.ChipMaxPSI }},
	{name: "shear-modulus", usage: "Wire shear modulus in kgf/mm^2", float: func(in *models.AssemblyInput) *float64 { return &in.ShearModulus }},
	{name: "screws", usage: "Number of screws", count: func(in *models.AssemblyInput) *int { return &in.ScrewCount }},
	{name: "results", usage: "Number of ranked results", count: func(in *models.AssemblyInput) *int { return &in.ResultCount }},
}

var (
	searchInput = models.DefaultAssemblyInput()
	searchOpts  searchOptions
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for springs that fit an assembly",
	Long: `Run the spring design sweep for one assembly without the interactive wizard.

The assembly comes from flags (defaults match the web form) or from a YAML file;
flags given alongside --file override the file's values.

Exit codes: 0 results found, 1 no feasible spring (or a shortfall with --strict), 2 error.

Example:
  spring-select search --max-psi 55 --screws 2 --xlsx springs.xlsx
  spring-select search --file presets/sensor-clip.yaml --browse`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		in, err := resolveInput(cmd, searchOpts.file, searchInput)
		if err != nil {
			fmt.Fprintf(os.Stdout, "Error: %v\n", err)
			os.Exit(2)
		}

		if exitCode := runSearch(ctx, os.Stdout, in, searchOpts); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	bindAssemblyFlags(searchCmd, &searchInput)
	searchCmd.Flags().StringVarP(&searchOpts.file, "file", "f", "", "Read the assembly from a YAML file")
	searchCmd.Flags().StringVar(&searchOpts.xlsx, "xlsx", "", "Write an Excel workbook to this path")
	searchCmd.Flags().StringVar(&searchOpts.pdf, "pdf", "", "Write a PDF report to this path")
	searchCmd.Flags().StringVar(&searchOpts.tsv, "tsv", "", "Write tab-separated values to this path")
	searchCmd.Flags().BoolVar(&searchOpts.browse, "browse", false, "Open the interactive results browser")
	searchCmd.Flags().BoolVar(&searchOpts.strict, "strict", false, "Exit 1 when fewer results than requested are found")
	addSweepFlags(searchCmd, &searchOpts.sweepOptions)
}

// bindAssemblyFlags registers one flag per assembly field, defaulting to the form values
func bindAssemblyFlags(cmd *cobra.Command, in *models.AssemblyInput) {
	defaults := models.DefaultAssemblyInput()
	for _, f := range assemblyFlags {
		if f.float != nil {
			cmd.Flags().Float64Var(f.float(in), f.name, *f.float(&defaults), f.usage)
		} else {
			cmd.Flags().IntVar(f.count(in), f.name, *f.count(&defaults), f.usage)
		}
	}
}

// addSweepFlags registers the flags shared by search, batch, and wizard
func addSweepFlags(cmd *cobra.Command, opts *sweepOptions) {
	cmd.Flags().BoolVar(&opts.remote, "remote", false, "Search on the backend instead of locally")
	cmd.Flags().BoolVar(&opts.legacy, "legacy", false, "Score with the three web-form conditions only")
	cmd.Flags().Float64Var(&opts.coilStep, "coil-step", 1, "Coil count step (1 or 0.5)")
	cmd.Flags().IntVar(&opts.minScore, "min-score", 2, "Minimum score a spring needs to be listed")
}

// resolveInput returns the flag input, or the file input with any
// explicitly set flags applied on top.
func resolveInput(cmd *cobra.Command, file string, flagInput models.AssemblyInput) (models.AssemblyInput, error) {
	if file == "" {
		return flagInput, nil
	}

	in, err := presets.Load(file)
	if err != nil {
		return models.AssemblyInput{}, err
	}
	for _, f := range assemblyFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		if f.float != nil {
			*f.float(&in) = *f.float(&flagInput)
		} else {
			*f.count(&in) = *f.count(&flagInput)
		}
	}
	return in, nil
}

// sweep builds the local grid from the command options
func (o sweepOptions) sweep() (models.SweepConfig, error) {
	sweep := models.DefaultSweepConfig()
	if o.legacy {
		sweep.Scoring = models.ScoringLegacy
	}
	if o.coilStep != 1 && o.coilStep != 0.5 {
		return sweep, fmt.Errorf("--coil-step must be 1 or 0.5, got %g", o.coilStep)
	}
	sweep.CoilStep = o.coilStep
	if o.minScore < 0 || o.minScore > sweep.Scoring.MaxScore() {
		return sweep, fmt.Errorf("--min-score must be between 0 and %d, got %d", sweep.Scoring.MaxScore(), o.minScore)
	}
	sweep.MinScore = o.minScore
	return sweep, nil
}

func (o sweepOptions) warnRemoteOverrides(w io.Writer) {
	if o.remote && (o.legacy || o.coilStep != 1 || o.minScore != 2) {
		fmt.Fprintln(w, "Note: --legacy, --coil-step, and --min-score apply to local searches; the backend uses its own configuration")
	}
}

// fetchResult validates the input and runs the search locally or remotely
func fetchResult(ctx context.Context, in models.AssemblyInput, opts sweepOptions) (models.SearchResult, error) {
	in = in.WithDefaults()
	if err := in.Validate(); err != nil {
		return models.SearchResult{}, err
	}

	if opts.remote {
		res, err := client.New(GetAPIURL()).WithToken(GetAPIToken()).Search(ctx, in)
		if err != nil {
			return models.SearchResult{}, err
		}
		return *res, nil
	}

	sweep, err := opts.sweep()
	if err != nil {
		return models.SearchResult{}, err
	}
	return services.NewSpringSearcher(sweep).Search(ctx, in)
}

// runSearch executes the search, writes exports and output, and returns the exit code
func runSearch(ctx context.Context, w io.Writer, in models.AssemblyInput, opts searchOptions) int {
	opts.warnRemoteOverrides(os.Stderr)

	result, err := fetchResult(ctx, in, opts.sweepOptions)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := writeExports(result, opts); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	switch {
	case IsJSONOutput():
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	case opts.browse && !result.Empty:
		if err := results.Run(result); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	default:
		fmt.Fprint(w, results.Render(result))
	}

	return exitCodeFor(result, opts.strict)
}

func exitCodeFor(result models.SearchResult, strict bool) int {
	if result.Empty || (strict && result.Shortfall) {
		return 1
	}
	return 0
}

// writeExports renders each requested report file
func writeExports(result models.SearchResult, opts searchOptions) error {
	exports := []struct {
		path  string
		write func(io.Writer, models.SearchResult) error
	}{
		{opts.xlsx, services.WriteXLSX},
		{opts.pdf, services.WritePDF},
		{opts.tsv, services.WriteTSV},
	}

	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := writeFile(e.path, result, e.write); err != nil {
			return fmt.Errorf("export %s: %w", e.path, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", e.path)
	}
	return nil
}

func writeFile(path string, result models.SearchResult, write func(io.Writer, models.SearchResult) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

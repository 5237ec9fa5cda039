// ABOUTME: Assembly input wizard as a bubbletea model
// ABOUTME: Walks huh forms for preset, chip, screw, and result settings with a step indicator

package wizard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
	"github.com/Kevin-Gith/spring-design-calculator/cli/internal/presets"
	"github.com/Kevin-Gith/spring-design-calculator/cli/internal/tui/icons"
	"github.com/Kevin-Gith/spring-design-calculator/cli/internal/tui/styles"
)

// ErrCancelled is returned by Run when the user leaves the wizard
var ErrCancelled = errors.New("wizard cancelled")

// CompleteMsg is sent when the wizard finishes successfully
type CompleteMsg struct {
	Input models.AssemblyInput
}

// CancelledMsg is sent when the wizard is cancelled
type CancelledMsg struct{}

// formDefaultsChoice is the preset option that keeps the starting values
const formDefaultsChoice = ""

const (
	stepPreset = iota
	stepChip
	stepScrews
	stepResults
)

var stepNames = []string{"Preset", "Chip", "Screws", "Results"}

// Wizard collects an AssemblyInput one form group at a time
type Wizard struct {
	input   models.AssemblyInput
	presets []presets.Preset
	form    *huh.Form
	step    int
	width   int
	err     error

	// Form field values (strings for huh)
	preset      string
	chipLength  string
	chipWidth   string
	chipMaxPSI  string
	screwStroke string
	roomUnlock  string
	shaft       string
	head        string
	screwCount  string
	resultCount string
}

func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(styles.Muted).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(styles.Danger).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(styles.Danger)

	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(styles.Primary).
		SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().
		Foreground(styles.Text)
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(styles.Primary)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(styles.Text).
		Background(styles.Info).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(styles.Muted).
		Background(styles.Surface).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Blurred.SelectSelector = lipgloss.NewStyle().
		Foreground(styles.Muted).
		SetString("  ")

	return t
}

// New creates a wizard seeded with start. The preset step is skipped when
// found is empty.
func New(start models.AssemblyInput, found []presets.Preset) *Wizard {
	w := &Wizard{presets: found}
	w.fill(start)

	if len(found) > 0 {
		w.step = stepPreset
		w.form = w.createPresetForm()
	} else {
		w.step = stepChip
		w.form = w.createChipForm()
	}
	return w
}

// fill copies an input into the string fields the forms edit.
func (w *Wizard) fill(in models.AssemblyInput) {
	w.input = in
	w.chipLength = formatFloat(in.ChipLength)
	w.chipWidth = formatFloat(in.ChipWidth)
	w.chipMaxPSI = formatFloat(in.ChipMaxPSI)
	w.screwStroke = formatFloat(in.ScrewStroke)
	w.roomUnlock = formatFloat(in.SpringRoomUnlock)
	w.shaft = formatFloat(in.ScrewShaftDiameter)
	w.head = formatFloat(in.ScrewHeadDiameter)
	w.screwCount = strconv.Itoa(in.ScrewCount)
	w.resultCount = strconv.Itoa(in.ResultCount)
}

func (w *Wizard) createPresetForm() *huh.Form {
	options := []huh.Option[string]{huh.NewOption("Form defaults", formDefaultsChoice)}
	for _, p := range w.presets {
		options = append(options, huh.NewOption(p.Name, p.Path))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Start from").
				Description("Use ↑/↓ to select, Enter to confirm").
				Options(options...).
				Value(&w.preset),
		).Title("Step 1: Preset").
			Description("Load a saved assembly or start from the form defaults"),
	).WithTheme(createTheme())
}

func (w *Wizard) createChipForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			numberInput("Chip length (mm)", &w.chipLength),
			numberInput("Chip width (mm)", &w.chipWidth),
			numberInput("Chip max pressure (psi)", &w.chipMaxPSI),
		).Title(w.stepTitle(stepChip, "Chip")).
			Description("The chip the springs press down on"),
	).WithTheme(createTheme())
}

func (w *Wizard) createScrewForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			numberInput("Screw stroke (mm)", &w.screwStroke),
			numberInput("Spring room, unlocked (mm)", &w.roomUnlock),
			numberInput("Screw shaft diameter (mm)", &w.shaft),
			huh.NewInput().
				Title("Screw head diameter (mm)").
				CharLimit(8).
				Value(&w.head).
				Validate(w.validateHead),
			countInput("Screw count", &w.screwCount),
		).Title(w.stepTitle(stepScrews, "Screws")).
			Description("Each screw carries one spring between its head and the chip"),
	).WithTheme(createTheme())
}

func (w *Wizard) createResultsForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			countInput("Number of results", &w.resultCount),
		).Title(w.stepTitle(stepResults, "Results")).
			Description("How many ranked springs to show"),
	).WithTheme(createTheme())
}

func (w *Wizard) stepTitle(step int, name string) string {
	n := step
	if len(w.presets) > 0 {
		n++
	}
	return fmt.Sprintf("Step %d: %s", n, name)
}

func numberInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		CharLimit(8).
		Value(value).
		Validate(validatePositiveFloat)
}

func countInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		CharLimit(4).
		Value(value).
		Validate(validatePositiveInt)
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width

	case tea.KeyMsg:
		if msg.String() == "esc" || msg.String() == "ctrl+c" {
			return w, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	switch w.form.State {
	case huh.StateCompleted:
		return w.advanceStep()
	case huh.StateAborted:
		return w, func() tea.Msg { return CancelledMsg{} }
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case stepPreset:
		if w.preset != formDefaultsChoice {
			in, err := presets.Load(w.preset)
			if err != nil {
				w.err = err
			} else {
				w.err = nil
				w.fill(in)
			}
		}
		w.step = stepChip
		w.form = w.createChipForm()
		return w, w.form.Init()

	case stepChip:
		w.input.ChipLength = parseFloat(w.chipLength)
		w.input.ChipWidth = parseFloat(w.chipWidth)
		w.input.ChipMaxPSI = parseFloat(w.chipMaxPSI)
		w.step = stepScrews
		w.form = w.createScrewForm()
		return w, w.form.Init()

	case stepScrews:
		w.input.ScrewStroke = parseFloat(w.screwStroke)
		w.input.SpringRoomUnlock = parseFloat(w.roomUnlock)
		w.input.ScrewShaftDiameter = parseFloat(w.shaft)
		w.input.ScrewHeadDiameter = parseFloat(w.head)
		w.input.ScrewCount, _ = strconv.Atoi(strings.TrimSpace(w.screwCount))
		w.step = stepResults
		w.form = w.createResultsForm()
		return w, w.form.Init()

	case stepResults:
		w.input.ResultCount, _ = strconv.Atoi(strings.TrimSpace(w.resultCount))
		in := w.input
		return w, func() tea.Msg { return CompleteMsg{Input: in} }
	}

	return w, nil
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")
	if w.err != nil {
		sb.WriteString(styles.StatusWarning.Render(fmt.Sprintf("%s preset not loaded: %v", icons.Warning, w.err)))
		sb.WriteString("\n\n")
	}
	sb.WriteString(w.form.View())

	return sb.String()
}

// renderProgress renders the step indicator line
func (w *Wizard) renderProgress() string {
	names := stepNames
	current := w.step
	if len(w.presets) == 0 {
		names = stepNames[1:]
		current--
	}

	var steps []string
	for i, name := range names {
		switch {
		case i < current:
			steps = append(steps, styles.StatusOK.Render(icons.CheckOK.String())+" "+styles.Subtitle.Render(name))
		case i == current:
			steps = append(steps, lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("● "+name))
		default:
			steps = append(steps, styles.Subtitle.Render("○ "+name))
		}
	}

	title := styles.Title.UnsetMarginBottom().Render(fmt.Sprintf("%s Spring assembly", icons.Wizard))
	return title + "\n" + strings.Join(steps, "    ")
}

// Input returns the collected assembly input
func (w *Wizard) Input() models.AssemblyInput {
	return w.input
}

// validateHead requires the head to be wider than the shaft entered above
func (w *Wizard) validateHead(s string) error {
	if err := validatePositiveFloat(s); err != nil {
		return err
	}
	if parseFloat(s) <= parseFloat(w.shaft) {
		return fmt.Errorf("must be larger than the shaft diameter (%s)", w.shaft)
	}
	return nil
}

func validatePositiveFloat(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive whole number")
	}
	return nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// runner hosts a wizard as the program root and records how it ended
type runner struct {
	wizard    *Wizard
	result    models.AssemblyInput
	cancelled bool
}

func (r *runner) Init() tea.Cmd { return r.wizard.Init() }

func (r *runner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case CompleteMsg:
		r.result = msg.Input
		return r, tea.Quit
	case CancelledMsg:
		r.cancelled = true
		return r, tea.Quit
	}
	_, cmd := r.wizard.Update(msg)
	return r, cmd
}

func (r *runner) View() string { return r.wizard.View() }

// Run shows the wizard until it completes. It returns ErrCancelled when
// the user backs out.
func Run(start models.AssemblyInput, found []presets.Preset) (models.AssemblyInput, error) {
	r := &runner{wizard: New(start, found)}
	if _, err := tea.NewProgram(r).Run(); err != nil {
		return models.AssemblyInput{}, err
	}
	if r.cancelled {
		return models.AssemblyInput{}, ErrCancelled
	}
	return r.result, nil
}

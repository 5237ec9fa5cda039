// ABOUTME: Ranked spring results as a bubbletea browser and static console blocks
// ABOUTME: Each candidate expands into a panel with geometry, loads, and check outcomes

package results

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
	"github.com/Kevin-Gith/spring-design-calculator/cli/internal/tui/icons"
	"github.com/Kevin-Gith/spring-design-calculator/cli/internal/tui/styles"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	ExpandAll key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Toggle, k.ExpandAll},
		{k.Help, k.Quit},
	}
}

var defaultKeys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "details"),
	),
	ExpandAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "expand all"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more keys"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Browser lets the user walk the ranked candidates and open detail panels
type Browser struct {
	result   models.SearchResult
	cursor   int
	expanded map[int]bool
	keys     keyMap
	help     help.Model
	width    int
}

// New creates a browser over a search result
func New(result models.SearchResult) *Browser {
	return &Browser{
		result:   result,
		expanded: make(map[int]bool),
		keys:     defaultKeys,
		help:     help.New(),
		width:    80,
	}
}

// Run shows the browser in the alternate screen until the user quits
func Run(result models.SearchResult) error {
	_, err := tea.NewProgram(New(result), tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model
func (b *Browser) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keys.Quit):
			return b, tea.Quit
		case key.Matches(msg, b.keys.Up):
			if b.cursor > 0 {
				b.cursor--
			}
		case key.Matches(msg, b.keys.Down):
			if b.cursor < len(b.result.Candidates)-1 {
				b.cursor++
			}
		case key.Matches(msg, b.keys.Toggle):
			b.expanded[b.cursor] = !b.expanded[b.cursor]
		case key.Matches(msg, b.keys.ExpandAll):
			open := !b.allExpanded()
			for i := range b.result.Candidates {
				b.expanded[i] = open
			}
		case key.Matches(msg, b.keys.Help):
			b.help.ShowAll = !b.help.ShowAll
		}
	}
	return b, nil
}

func (b *Browser) allExpanded() bool {
	for i := range b.result.Candidates {
		if !b.expanded[i] {
			return false
		}
	}
	return true
}

// View implements tea.Model
func (b *Browser) View() string {
	var sb strings.Builder

	sb.WriteString(Header(b.result))
	sb.WriteString("\n")

	for i, c := range b.result.Candidates {
		active := i == b.cursor
		sb.WriteString(Row(i+1, c, b.result.MaxScore, active, b.expanded[i]))
		sb.WriteString("\n")
		if b.expanded[i] {
			panel := styles.Panel
			if active {
				panel = styles.ActivePanel
			}
			sb.WriteString(panel.Render(Detail(c)))
			sb.WriteString("\n")
		}
	}

	sb.WriteString(styles.Help.Render(b.help.View(b.keys)))
	return sb.String()
}

// Header renders the title and the requested/returned summary.
func Header(result models.SearchResult) string {
	title := styles.Title.Render(fmt.Sprintf("%s Spring candidates", icons.Spring))

	summary := fmt.Sprintf("requested %d, returned %d of %d retained, scoring %s (max %d)",
		result.Requested, result.Returned, result.TotalRetained, result.Sweep.Scoring, result.MaxScore)
	lines := []string{title, styles.Subtitle.Render(summary)}

	switch {
	case result.Empty:
		lines = append(lines, styles.StatusCritical.Render(fmt.Sprintf("%s %s", icons.Critical, result.Message)))
	case result.Shortfall:
		lines = append(lines, styles.StatusWarning.Render(fmt.Sprintf("%s %s", icons.Warning, result.Message)))
	}
	return strings.Join(lines, "\n") + "\n"
}

// Row renders the one-line summary of a ranked candidate.
func Row(rank int, c models.CandidateSpring, maxScore int, active, expanded bool) string {
	marker := icons.Collapse.String()
	if expanded {
		marker = icons.Expand.String()
	}

	line := fmt.Sprintf("%s #%-2d %s  WD %.2f  ID %.2f  SN %g  FL %.2f  %.2f psi",
		marker, rank,
		styles.Score(models.Stars(c.Score, maxScore), c.Score, maxScore),
		c.WireDiameter, c.InnerDiameter, c.CoilCount, c.FreeLength, c.ChipPressurePSI)

	if active {
		return styles.KeyStyle.Render("> ") + line
	}
	return "  " + line
}

// Detail renders the derived quantities and each feasibility check.
func Detail(c models.CandidateSpring) string {
	field := func(label, value string) string {
		return styles.LabelStyle.Render(label) + styles.ValueStyle.Render(value)
	}

	geometry := []string{
		field("Outer diameter", fmt.Sprintf("%.2f mm", c.OuterDiameter)),
		field("Mean diameter", fmt.Sprintf("%.2f mm", c.MeanDiameter)),
		field("Active coils", fmt.Sprintf("%.2f", c.ActiveCoils)),
		field("Spring rate", fmt.Sprintf("%.2f kgf/mm", c.SpringRate)),
		field("Solid length", fmt.Sprintf("%.2f mm", c.SolidLength)),
		field("Coil-bound length", fmt.Sprintf("%.2f mm", c.CoilBoundLength)),
		field("Pitch", fmt.Sprintf("%.2f mm", c.Pitch)),
	}
	loads := []string{
		field("Preload", fmt.Sprintf("%.2f mm", c.Preload)),
		field("Screw room locked", fmt.Sprintf("%.2f mm", c.ScrewRoomLocked)),
		field("Stroke", fmt.Sprintf("%.2f mm", c.Stroke)),
		field("Stack check", fmt.Sprintf("%.2f mm", c.StackCheck)),
		field("Force per screw", fmt.Sprintf("%.2f kgf", c.PerScrewForce)),
		field("Total force", fmt.Sprintf("%.2f kgf / %.2f lbf", c.TotalForceKgf, c.TotalForceLbf)),
		field("Chip pressure", fmt.Sprintf("%.2f psi", c.ChipPressurePSI)),
	}

	var checks []string
	for _, chk := range c.Checks {
		line := styles.Check(icons.For(chk.Passed).String(), chk.Passed) + " " + chk.Name
		if chk.Reason != "" {
			line += styles.Subtitle.Render("  " + chk.Reason)
		}
		checks = append(checks, line)
	}

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		strings.Join(geometry, "\n"),
		"    ",
		strings.Join(loads, "\n"),
	)
	return columns + "\n\n" + strings.Join(checks, "\n")
}

// Render lays out the whole result as static blocks for non-interactive
// output. Every candidate is expanded.
func Render(result models.SearchResult) string {
	var sb strings.Builder
	sb.WriteString(Header(result))
	for i, c := range result.Candidates {
		sb.WriteString("\n")
		sb.WriteString(Row(i+1, c, result.MaxScore, false, true))
		sb.WriteString("\n")
		sb.WriteString(styles.Panel.Render(Detail(c)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// ABOUTME: Shared lipgloss styles for consistent TUI and console appearance
// ABOUTME: Defines colors, panels, and score-dependent styles used across components

package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light

	// Colors - Extended palette
	Accent  = lipgloss.Color("#8B5CF6") // Lighter purple for highlights
	Surface = lipgloss.Color("#374151") // Elevated surface background
	Info    = lipgloss.Color("#3B82F6") // Blue - informational

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted)

	// Status indicators
	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Panels
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	ActivePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	Help = lipgloss.NewStyle().
		Foreground(Muted).
		MarginTop(1)

	// Label style for field names in detail panels
	LabelStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Width(22)

	// Value style for emphasized data
	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
)

// ScoreColor maps a score to green for a full pass, amber for a partial
// pass, and red otherwise.
func ScoreColor(score, max int) lipgloss.Color {
	switch {
	case max > 0 && score >= max:
		return Secondary
	case score >= 2:
		return Warning
	default:
		return Danger
	}
}

// Score renders stars for a score in its score color.
func Score(stars string, score, max int) string {
	return lipgloss.NewStyle().Foreground(ScoreColor(score, max)).Bold(true).Render(stars)
}

// Check renders a pass/fail glyph in green or red.
func Check(glyph string, passed bool) string {
	if passed {
		return StatusOK.Render(glyph)
	}
	return StatusCritical.Render(glyph)
}

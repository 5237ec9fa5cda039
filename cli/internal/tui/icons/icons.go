// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides check, score, and action glyphs for console and TUI output

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	// Explicit override via environment variable
	if env := os.Getenv("SPRING_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	nerdFontTerminals := []string{
		"iTerm.app",
		"alacritty",
		"WezTerm",
		"kitty",
		"ghostty",
	}

	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	return os.Getenv("NERD_FONTS") == "1"
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

var (
	// Feasibility checks
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	// Spring geometry
	Spring   = Icon{"󰯈", "≋"} // nf-md-spring
	Ruler    = Icon{"󰑭", "↔"} // nf-md-ruler
	Pressure = Icon{"󰓅", "◐"} // nf-md-gauge

	// Actions
	Expand   = Icon{"󰅀", "▾"} // nf-md-chevron_down
	Collapse = Icon{"󰅂", "▸"} // nf-md-chevron_right
	Export   = Icon{"󰈝", "⇩"} // nf-md-file_export
	Wizard   = Icon{"󰂓", "★"} // nf-md-auto_fix
)

// For returns the pass or fail glyph for a check outcome.
func For(passed bool) Icon {
	if passed {
		return CheckOK
	}
	return Critical
}

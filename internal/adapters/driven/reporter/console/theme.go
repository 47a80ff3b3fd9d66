package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette of the console output.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#06B6D4"), // Cyan
		Muted:     lipgloss.Color("#6C7086"), // Medium gray
		Success:   lipgloss.Color("#A6E3A1"), // Green
		Error:     lipgloss.Color("#F38BA8"), // Red
	}
}

// Styles contains the pre-configured styles used by the reporter.
type Styles struct {
	theme *Theme

	// Comment style for informational lines.
	Comment lipgloss.Style

	// Error style for failures.
	Error lipgloss.Style

	// Count style for the done/total counter.
	Count lipgloss.Style

	// Done style for the completion line.
	Done lipgloss.Style
}

// NewStyles creates styles from a theme, rendered for out.
// Colours are dropped when out does not support them.
func NewStyles(out io.Writer, theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	r := lipgloss.NewRenderer(out)

	return &Styles{
		theme: theme,

		Comment: r.NewStyle().
			Foreground(theme.Secondary),

		Error: r.NewStyle().
			Bold(true).
			Foreground(theme.Error),

		Count: r.NewStyle().
			Foreground(theme.Muted),

		Done: r.NewStyle().
			Foreground(theme.Success),
	}
}

// Theme returns the theme the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}

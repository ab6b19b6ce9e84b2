package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette, toned down on light terminals.
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // purple accent
	ColorSuccess = lipgloss.Color("#22C55E")
	ColorError   = lipgloss.Color("#EF4444")
	ColorMuted   = lipgloss.Color("#94A3B8")
)

func init() {
	if !termenv.HasDarkBackground() {
		ColorMuted = lipgloss.Color("#475569")
	}
}

var (
	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

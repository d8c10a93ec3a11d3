// Package style provides a functional API for composing and applying lipgloss-based TUI styles.
package style

import "github.com/charmbracelet/lipgloss"

// Seek bar palette: one color per visually distinct bar region.
var (
	Played   = lipgloss.Color("#cba6f7")
	Scrubbed = lipgloss.Color("#f5c2e7")
	Buffered = lipgloss.Color("#6c7086")
	Unplayed = lipgloss.Color("#313244")
	Handle   = lipgloss.Color("#f5e0dc")

	// Ad markers: unplayed breaks draw hot, played breaks recede.
	AdMarker       = lipgloss.Color("#f9e2af")
	PlayedAdMarker = lipgloss.Color("#585b70")

	Text    = lipgloss.Color("#cdd6f4")
	Subtext = lipgloss.Color("#a6adc8")

	SuccessColor = lipgloss.Color("#a6e3a1")
	WarningColor = lipgloss.Color("#f9e2af")
	ErrorColor   = lipgloss.Color("#f38ba8")
)

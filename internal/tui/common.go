package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
)

// Color palette matching existing fatih/color usage
var (
	// ColorGreen for completed records and success notices
	ColorGreen = lipgloss.AdaptiveColor{Light: "#00AF00", Dark: "#00D700"}

	// ColorCyan for categories and metadata
	ColorCyan = lipgloss.AdaptiveColor{Light: "#00AFAF", Dark: "#00D7D7"}

	// ColorWhite for primary text
	ColorWhite = lipgloss.AdaptiveColor{Light: "#262626", Dark: "#FFFFFF"}

	// ColorGray for secondary text and help
	ColorGray = lipgloss.AdaptiveColor{Light: "#767676", Dark: "#808080"}

	// ColorYellow for in-progress records and highlights
	ColorYellow = lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}

	// ColorRed for errors
	ColorRed = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}
)

// Reusable styles
var (
	// StyleNormal is the base style for regular text
	StyleNormal = lipgloss.NewStyle().Foreground(ColorWhite)

	// StyleHighlight is for selected items
	StyleHighlight = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	// StyleSuccess is for info notices
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorGreen)

	// StyleError is for error notices and form errors
	StyleError = lipgloss.NewStyle().Foreground(ColorRed)

	// StyleTag is for categories
	StyleTag = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleHelp is for help text and hints
	StyleHelp = lipgloss.NewStyle().Foreground(ColorGray)

	// StyleHeader is for section headers
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	// StyleBorder is for borders and separators
	StyleBorder = lipgloss.NewStyle().
			Foreground(ColorGray).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray)
)

// StatusStyle colors a workflow status.
func StatusStyle(s catalog.Status) lipgloss.Style {
	switch s {
	case catalog.StatusCompleted:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case catalog.StatusInProgress:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	default:
		return StyleHelp
	}
}

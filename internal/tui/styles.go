package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
)

var (
	appNameStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPink)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(colorBase).
			Background(colorLavender)

	inactiveTabStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(colorOverlay1)

	tabSepStyle = lipgloss.NewStyle().Foreground(colorSurface1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)

	termNameStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	descStyle     = lipgloss.NewStyle().Foreground(colorText)
	errorStyle    = lipgloss.NewStyle().Foreground(colorRed)
	dimStyle      = lipgloss.NewStyle().Foreground(colorOverlay1)
	statusStyle   = lipgloss.NewStyle().Foreground(colorOverlay1).Background(colorSurface0)
)

package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorGreenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	ColorRedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	ColorBlueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00BFFF")).Bold(true)

	// Merge request badges
	OpenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	ClosedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	MergedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AF87FF")).Bold(true)
)

// Icons
const (
	IconCheckmark = "✓"
	IconCross     = "✗"
	IconMerged    = "⇄"
	IconOpen      = "○"
)

func Green(s string) string {
	return ColorGreenStyle.Render(s)
}

func Red(s string) string {
	return ColorRedStyle.Render(s)
}

func Blue(s string) string {
	return ColorBlueStyle.Render(s)
}

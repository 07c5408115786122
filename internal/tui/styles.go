package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent    = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	subtle    = lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"}
	errColor  = lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"}
	starColor = lipgloss.Color("220")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#5A56E0")).
			Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle).
			Padding(0, 1)
	activePaneStyle = paneStyle.BorderForeground(accent)

	paneTitleStyle = lipgloss.NewStyle().Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	faintStyle     = lipgloss.NewStyle().Foreground(subtle)
	errorStyle     = lipgloss.NewStyle().Foreground(errColor)
	starStyle      = lipgloss.NewStyle().Foreground(starColor)
	chipStyle      = lipgloss.NewStyle().Foreground(starColor).Padding(0, 1)
)

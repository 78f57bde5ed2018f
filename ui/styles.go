package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"})

	activeTabStyle = tabStyle.
			Bold(true).
			Underline(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#FF5FAF", Dark: "#FF87D7"})

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#343433", Dark: "#C1C6B2"}).
			Background(lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#353533"})

	statusErrorStyle = statusBarStyle.
				Foreground(lipgloss.Color("#FF5F87")).
				Bold(true)

	statusSuccessStyle = statusBarStyle.
				Foreground(lipgloss.Color("#5FD787")).
				Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#875FFF", Dark: "#AF87FF"})

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"})

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF87D7")).
				Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"})

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}).
			Padding(0, 1)
)

// hasDarkBackground is resolved once; lipgloss queries the terminal on
// every call otherwise.
var hasDarkBackground = termenv.HasDarkBackground()

func severityStyle(level string) lipgloss.Style {
	switch level {
	case "error":
		return statusErrorStyle
	case "success":
		return statusSuccessStyle
	default:
		return statusBarStyle
	}
}

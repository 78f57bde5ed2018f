package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

const wrapAt = 78

var (
	keywordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#ECFD65"})

	paragraphStyle = lipgloss.NewStyle().
			Margin(1, 0, 0, 0)
)

// keyword renders a highlighted word for help text.
func keyword(s string) string {
	return keywordStyle.Render(s)
}

// paragraph wraps and indents long-form command help.
func paragraph(s string) string {
	s = strings.TrimSpace(s)
	s = wordwrap.String(s, wrapAt-4)
	s = indent.String(s, 2)
	return paragraphStyle.Render(s)
}

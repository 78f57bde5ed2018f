package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxLogEntries bounds the session log; old entries fall off the top.
const maxLogEntries = 500

// logModel is the session log screen: every diagnostic the controller
// and the workers emitted, newest at the bottom.
type logModel struct {
	common  *commonModel
	vp      viewport.Model
	entries []string
	// raw mirrors entries without styling for clipboard export.
	raw []string
}

func newLogModel(common *commonModel) logModel {
	return logModel{
		common: common,
		vp:     viewport.New(0, 0),
	}
}

func (m *logModel) setSize(width, height int) {
	m.vp.Width = width - 6
	h := height - 6
	if h < 3 {
		h = 3
	}
	m.vp.Height = h
	m.vp.SetContent(strings.Join(m.entries, "\n"))
}

func (m *logModel) append(d diagnosticMsg) {
	when := d.when.Format("15:04:05")
	line := fmt.Sprintf("%s  %s",
		dimStyle.Render(when),
		severityStyle(d.severity.String()).Render(d.text))
	m.entries = append(m.entries, line)
	m.raw = append(m.raw, fmt.Sprintf("%s [%s] %s", when, d.severity, d.text))
	if len(m.entries) > maxLogEntries {
		m.entries = m.entries[len(m.entries)-maxLogEntries:]
		m.raw = m.raw[len(m.raw)-maxLogEntries:]
	}
	m.vp.SetContent(strings.Join(m.entries, "\n"))
	m.vp.GotoBottom()
}

func (m logModel) update(msg tea.Msg) (logModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "y" {
		if len(m.raw) > 0 {
			_ = clipboard.WriteAll(strings.Join(m.raw, "\n"))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m logModel) view() string {
	body := m.vp.View()
	if len(m.entries) == 0 {
		body = dimStyle.Render("Nothing logged yet.")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		paneStyle.Render(body),
		" "+dimStyle.Render("↑/↓ scroll • y copy log"),
	)
}

package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ogi-dev/ogitts/internal/localization"
	"github.com/ogi-dev/ogitts/internal/settings"
	"github.com/ogi-dev/ogitts/ocr"
	"github.com/ogi-dev/ogitts/translate"
)

// settingField is one editable row of the settings screen. Cycle
// fields rotate a fixed value list; text fields open an input.
type settingField struct {
	key    string
	label  string
	values []string // nil means free text
	secret bool
}

// settingsModel is the settings screen. Every committed change is
// written through the store at once, keeping the on-disk file the
// single source of truth.
type settingsModel struct {
	common *commonModel

	fields  []settingField
	cursor  int
	editing bool
	input   textinput.Model
}

func newSettingsModel(common *commonModel) settingsModel {
	in := textinput.New()
	in.CharLimit = 256

	return settingsModel{
		common: common,
		fields: buildFields(),
		input:  in,
	}
}

func buildFields() []settingField {
	return []settingField{
		{key: settings.KeyUILanguage, label: "Interface language", values: localization.Names},
		{key: settings.KeyStyle, label: "Color style", values: []string{"Dark", "Light"}},
		{key: settings.KeyTranslatorService, label: "Translator", values: translate.Services},
		{key: settings.KeyTranslatorAPIKey, label: "Translator API key", secret: true},
		{key: settings.KeyOCRService, label: "OCR service", values: ocr.Services},
		{key: settings.KeyOCRAPIKey, label: "OCR API key", secret: true},
		{key: settings.KeyOCRAzureEndpoint, label: "Azure endpoint"},
	}
}

func (m *settingsModel) setSize(width, _ int) {
	m.input.Width = width - 30
}

// refresh is called when the settings file changed on disk.
func (m *settingsModel) refresh() {
	m.editing = false
}

func (m settingsModel) capturesInput() bool {
	return m.editing
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.editing {
		switch key.String() {
		case "esc":
			m.editing = false
			m.input.Blur()
			return m, nil
		case "enter":
			m.common.values[m.fields[m.cursor].key] = m.input.Value()
			m.editing = false
			m.input.Blur()
			m.common.saveSettings()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(key)
		return m, cmd
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
	case "enter", " ", "right":
		f := m.fields[m.cursor]
		if f.values == nil {
			m.editing = true
			m.input.SetValue(settings.GetString(m.common.values, f.key))
			return m, m.input.Focus()
		}
		current := settings.GetString(m.common.values, f.key)
		next := f.values[0]
		for i, v := range f.values {
			if v == current {
				next = f.values[(i+1)%len(f.values)]
				break
			}
		}
		m.common.values[f.key] = next
		if f.key == settings.KeyUILanguage {
			m.common.str = localization.Pick(next)
		}
		m.common.saveSettings()
	}
	return m, nil
}

func (m settingsModel) view() string {
	var rows []string
	for i, f := range m.fields {
		value := settings.GetString(m.common.values, f.key)
		if f.secret && value != "" {
			value = "••••••••"
		}
		if value == "" {
			value = dimStyle.Render("(not set)")
		}

		line := fmt.Sprintf("%-22s %s", f.label, value)
		if i == m.cursor {
			if m.editing {
				line = fmt.Sprintf("%-22s %s", f.label, m.input.View())
			}
			line = selectedRowStyle.Render("> " + line)
		} else {
			line = "  " + valueStyle.Render(line)
		}
		rows = append(rows, line)
	}

	vs := m.common.voiceSettings
	rows = append(rows, "",
		dimStyle.Render(fmt.Sprintf("  Voice: %.1fx speed, %d%% volume, %+dHz pitch (adjust on the %s tab)",
			vs.Speed, vs.Volume, vs.Pitch, m.common.str.TabGeneral)))

	hints := dimStyle.Render("↑/↓ select • enter edit/cycle • changes save immediately")

	return lipgloss.JoinVertical(lipgloss.Left,
		paneStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)),
		" "+hints,
	)
}

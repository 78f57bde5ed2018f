// Package ui provides the tabbed terminal interface: text entry and
// playback, batch processing, image text extraction, settings, the
// session log and help.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/ogi-dev/ogitts/batch"
	"github.com/ogi-dev/ogitts/internal/localization"
	"github.com/ogi-dev/ogitts/internal/settings"
	"github.com/ogi-dev/ogitts/tts"
	"github.com/ogi-dev/ogitts/tts/engines"
	"github.com/ogi-dev/ogitts/tts/engines/edge"
)

var config Config

// NewProgram returns a new Tea program running the full application.
func NewProgram(cfg Config) *tea.Program {
	log.Debug("starting ui", "settings", cfg.SettingsPath, "output", cfg.OutputDir)
	config = cfg
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.EnableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return tea.NewProgram(newModel(cfg), opts...)
}

// tab identifies one top-level screen.
type tab int

const (
	tabGeneral tab = iota
	tabBatch
	tabImage
	tabSettings
	tabLog
	tabHelp
)

const tabCount = 6

func (t tab) title(str localization.Strings) string {
	switch t {
	case tabGeneral:
		return str.TabGeneral
	case tabBatch:
		return str.TabBatch
	case tabImage:
		return str.TabImage
	case tabSettings:
		return str.TabSettings
	case tabLog:
		return str.TabLog
	default:
		return str.TabHelp
	}
}

// commonModel is shared by every sub-model.
type commonModel struct {
	cfg    Config
	width  int
	height int

	str    localization.Strings
	store  *settings.Store
	values map[string]any

	engine     engines.Engine
	controller *batch.Controller
	ev         *events

	voiceSettings tts.VoiceSettings
}

func (c *commonModel) saveSettings() {
	c.values[settings.KeyVoiceSpeed] = c.voiceSettings.Speed
	c.values[settings.KeyVoiceVolume] = float64(c.voiceSettings.Volume)
	c.values[settings.KeyVoicePitch] = float64(c.voiceSettings.Pitch)
	c.store.Save(c.values)
}

func (c *commonModel) reloadSettings() {
	c.values = c.store.Load()
	c.str = localization.Pick(settings.GetString(c.values, settings.KeyUILanguage))
	c.voiceSettings = tts.VoiceSettings{
		Speed:  settings.GetFloat(c.values, settings.KeyVoiceSpeed),
		Volume: settings.GetInt(c.values, settings.KeyVoiceVolume),
		Pitch:  settings.GetInt(c.values, settings.KeyVoicePitch),
	}.Clamp()
	c.controller.SetVoiceSettings(c.voiceSettings)
}

type model struct {
	common *commonModel
	active tab

	general  generalModel
	batch    batchModel
	image    imageModel
	settings settingsModel
	logview  logModel
	help     helpModel

	status      string
	statusLevel string
	fatalErr    error

	cancelWatch context.CancelFunc
}

func newModel(cfg Config) tea.Model {
	store := settings.New(cfg.SettingsPath)
	values := store.Load()

	ev := newEvents()
	engine := edge.New()
	controller := batch.New(batch.Config{
		Engine:    engine,
		Sink:      sink{ev: ev},
		OutputDir: cfg.OutputDir,
	})

	common := &commonModel{
		cfg:        cfg,
		store:      store,
		values:     values,
		engine:     engine,
		controller: controller,
		ev:         ev,
	}

	uiLang := settings.GetString(values, settings.KeyUILanguage)
	if _, ok := values[settings.KeyUILanguage]; !ok {
		// First run: follow the process locale until the user chooses.
		common.str = localization.FromEnvironment()
	} else {
		common.str = localization.Pick(uiLang)
	}

	common.voiceSettings = tts.VoiceSettings{
		Speed:  settings.GetFloat(values, settings.KeyVoiceSpeed),
		Volume: settings.GetInt(values, settings.KeyVoiceVolume),
		Pitch:  settings.GetInt(values, settings.KeyVoicePitch),
	}.Clamp()
	controller.SetVoiceSettings(common.voiceSettings)

	return model{
		common:   common,
		active:   tabGeneral,
		general:  newGeneralModel(common),
		batch:    newBatchModel(common),
		image:    newImageModel(common),
		settings: newSettingsModel(common),
		logview:  newLogModel(common),
		help:     newHelpModel(common),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.common.ev.wait(), m.watchSettingsCmd(), m.general.init())
}

// watchSettingsCmd starts the on-disk settings watcher and bridges it
// into the events funnel.
func (m model) watchSettingsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		changes, err := m.common.store.Watch(ctx)
		if err != nil {
			log.Debug("settings watch unavailable", "err", err)
			return nil
		}
		go func() {
			for range changes {
				m.common.ev.send(settingsChangedOnDiskMsg{})
			}
		}()
		return nil
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.common.width = msg.Width
		m.common.height = msg.Height
		m.general.setSize(msg.Width, msg.Height)
		m.batch.setSize(msg.Width, msg.Height)
		m.image.setSize(msg.Width, msg.Height)
		m.settings.setSize(msg.Width, msg.Height)
		m.logview.setSize(msg.Width, msg.Height)
		m.help.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		// Global keys work everywhere except while a text field has
		// focus, which the sub-models signal through capturesInput.
		if !m.capturesInput() {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "tab":
				m.active = (m.active + 1) % tabCount
				return m, nil
			case "shift+tab":
				m.active = (m.active + tabCount - 1) % tabCount
				return m, nil
			case "1", "2", "3", "4", "5", "6":
				m.active = tab(msg.String()[0] - '1')
				return m, nil
			}
		} else if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case diagnosticMsg:
		m.logview.append(msg)
		m.status = msg.text
		m.statusLevel = msg.severity.String()
		return m, tea.Batch(m.common.ev.wait(), statusTimeoutCmd())

	case recordsChangedMsg:
		m.batch.refreshRows()
		return m, m.common.ev.wait()

	case batchProgressMsg:
		return m, tea.Batch(m.batch.setProgress(msg.fraction), m.common.ev.wait())

	case speechProgressMsg, speechDoneMsg, translationDoneMsg:
		var cmd tea.Cmd
		m.general, cmd = m.general.update(msg)
		return m, tea.Batch(cmd, m.common.ev.wait())

	case ocrDoneMsg:
		var cmd tea.Cmd
		m.image, cmd = m.image.update(msg)
		return m, tea.Batch(cmd, m.common.ev.wait())

	case settingsChangedOnDiskMsg:
		m.common.reloadSettings()
		m.settings.refresh()
		m.status = m.common.str.SettingsReloaded
		m.statusLevel = "info"
		log.Info("settings reloaded after external edit")
		return m, tea.Batch(m.common.ev.wait(), statusTimeoutCmd())

	case statusMessageTimeoutMsg:
		m.status = ""
		return m, nil

	case errMsg:
		m.fatalErr = msg.err
		return m, tea.Quit
	}

	var cmd tea.Cmd
	switch m.active {
	case tabGeneral:
		m.general, cmd = m.general.update(msg)
	case tabBatch:
		m.batch, cmd = m.batch.update(msg)
	case tabImage:
		m.image, cmd = m.image.update(msg)
	case tabSettings:
		m.settings, cmd = m.settings.update(msg)
	case tabLog:
		m.logview, cmd = m.logview.update(msg)
	case tabHelp:
		m.help, cmd = m.help.update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// capturesInput reports whether the active tab currently owns the
// keyboard, e.g. while typing into a text field.
func (m model) capturesInput() bool {
	switch m.active {
	case tabGeneral:
		return m.general.capturesInput()
	case tabImage:
		return m.image.capturesInput()
	case tabSettings:
		return m.settings.capturesInput()
	case tabBatch:
		return m.batch.capturesInput()
	default:
		return false
	}
}

func (m model) View() string {
	if m.fatalErr != nil {
		return fmt.Sprintf("\n  %s\n\n", m.fatalErr)
	}
	if m.common.width == 0 {
		return "\n  Initializing..."
	}

	var body string
	switch m.active {
	case tabGeneral:
		body = m.general.view()
	case tabBatch:
		body = m.batch.view()
	case tabImage:
		body = m.image.view()
	case tabSettings:
		body = m.settings.view()
	case tabLog:
		body = m.logview.view()
	case tabHelp:
		body = m.help.view()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.tabBar(),
		body,
		m.statusBar(),
	)
}

func (m model) tabBar() string {
	var items []string
	for t := tab(0); t < tabCount; t++ {
		title := fmt.Sprintf("%d %s", t+1, t.title(m.common.str))
		if t == m.active {
			items = append(items, activeTabStyle.Render(title))
		} else {
			items = append(items, tabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func (m model) statusBar() string {
	left := m.status
	if left == "" {
		left = m.common.str.StatusReady
	}
	ts := time.Now().Format("15:04:05")
	gap := m.common.width - lipgloss.Width(left) - lipgloss.Width(ts) - 2
	if gap < 1 {
		gap = 1
	}
	line := " " + left + strings.Repeat(" ", gap) + ts + " "
	return severityStyle(m.statusLevel).Width(m.common.width).Render(line)
}

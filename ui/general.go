package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/ogi-dev/ogitts/internal/importer"
	"github.com/ogi-dev/ogitts/internal/settings"
	"github.com/ogi-dev/ogitts/tts"
	"github.com/ogi-dev/ogitts/translate"
)

// generalFocus distinguishes the two keyboard modes of the tab.
type generalFocus int

const (
	focusText generalFocus = iota // textarea owns the keyboard
	focusControls
)

// generalModel is the main text-to-speech screen: a text area plus the
// language, model and voice selection and one worker at a time.
type generalModel struct {
	common *commonModel

	textarea textarea.Model
	progress progress.Model
	focus    generalFocus

	language   tts.Language
	model      string
	voiceIdx   int
	autoDetect bool

	speaking bool
	percent  int
	message  string
}

func newGeneralModel(common *commonModel) generalModel {
	ta := textarea.New()
	ta.Placeholder = "Type or paste text to speak..."
	ta.CharLimit = 0
	ta.Focus()

	return generalModel{
		common:     common,
		textarea:   ta,
		progress:   progress.New(progress.WithDefaultGradient()),
		focus:      focusText,
		language:   tts.English,
		model:      tts.ModelEdge,
		voiceIdx:   voiceIndex(tts.ModelEdge, tts.English, tts.DefaultVoice(tts.ModelEdge, tts.English).ID),
		autoDetect: true,
	}
}

func voiceIndex(model string, lang tts.Language, id string) int {
	for i, v := range tts.VoicesFor(model, lang) {
		if v.ID == id {
			return i
		}
	}
	return 0
}

func (m generalModel) init() tea.Cmd {
	return textarea.Blink
}

func (m *generalModel) setSize(width, height int) {
	m.textarea.SetWidth(width - 4)
	h := height - 10
	if h < 3 {
		h = 3
	}
	m.textarea.SetHeight(h)
	m.progress.Width = width - 8
}

func (m generalModel) capturesInput() bool {
	return m.focus == focusText
}

func (m generalModel) voice() tts.Voice {
	set := tts.VoicesFor(m.model, m.language)
	return set[m.voiceIdx%len(set)]
}

func (m generalModel) update(msg tea.Msg) (generalModel, tea.Cmd) {
	switch msg := msg.(type) {
	case speechProgressMsg:
		m.percent = msg.percent
		m.message = msg.message
		return m, m.progress.SetPercent(float64(msg.percent) / 100)

	case speechDoneMsg:
		m.speaking = false
		if msg.err != nil {
			m.message = "Error: " + msg.err.Error()
		} else {
			m.message = m.common.str.StatusDone
		}
		return m, nil

	case translationDoneMsg:
		if msg.err != nil {
			m.message = "Translation failed: " + msg.err.Error()
			log.Error("translation failed", "err", msg.err)
			return m, nil
		}
		m.textarea.SetValue(msg.text)
		// The buffer is now in another language; re-derive.
		m.detectLanguage()
		m.message = m.common.str.StatusDone
		return m, nil

	case progress.FrameMsg:
		p, cmd := m.progress.Update(msg)
		m.progress = p.(progress.Model)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m generalModel) handleKey(msg tea.KeyMsg) (generalModel, tea.Cmd) {
	// Keys that work in both modes.
	switch msg.String() {
	case "esc":
		if m.focus == focusText {
			m.focus = focusControls
			m.textarea.Blur()
		} else {
			m.focus = focusText
			return m, m.textarea.Focus()
		}
		return m, nil
	case "ctrl+p":
		return m.speak(true)
	case "ctrl+s":
		return m.speak(false)
	case "ctrl+t":
		return m.startTranslation()
	case "ctrl+y":
		if err := clipboard.WriteAll(m.textarea.Value()); err != nil {
			m.message = "Clipboard unavailable: " + err.Error()
		} else {
			m.message = m.common.str.CopiedToClipbrd
		}
		return m, nil
	case "ctrl+b":
		if text, err := clipboard.ReadAll(); err == nil {
			m.textarea.SetValue(text)
			m.detectLanguage()
		}
		return m, nil
	}

	if m.focus == focusText {
		var cmd tea.Cmd
		before := m.textarea.Value()
		m.textarea, cmd = m.textarea.Update(msg)
		if m.autoDetect && m.textarea.Value() != before {
			m.detectLanguage()
		}
		return m, cmd
	}

	// Control mode keys.
	switch msg.String() {
	case "l":
		m.language = tts.Languages[(int(m.language)+1)%len(tts.Languages)]
		m.voiceIdx = 0
		m.autoDetect = false
	case "v":
		set := tts.VoicesFor(m.model, m.language)
		m.voiceIdx = (m.voiceIdx + 1) % len(set)
	case "a":
		m.autoDetect = !m.autoDetect
		if m.autoDetect {
			m.detectLanguage()
		}
	case "+", "=":
		m.common.voiceSettings.Speed += 0.1
		m.clampAndPersist()
	case "-":
		m.common.voiceSettings.Speed -= 0.1
		m.clampAndPersist()
	case "up":
		m.common.voiceSettings.Volume += 10
		m.clampAndPersist()
	case "down":
		m.common.voiceSettings.Volume -= 10
		m.clampAndPersist()
	case "right":
		m.common.voiceSettings.Pitch += 5
		m.clampAndPersist()
	case "left":
		m.common.voiceSettings.Pitch -= 5
		m.clampAndPersist()
	case "r":
		m.common.voiceSettings = tts.DefaultVoiceSettings()
		m.clampAndPersist()
	}
	return m, nil
}

func (m *generalModel) clampAndPersist() {
	m.common.voiceSettings = m.common.voiceSettings.Clamp()
	m.common.controller.SetVoiceSettings(m.common.voiceSettings)
	m.common.saveSettings()
}

// detectLanguage re-runs detection on the current text. Selecting a
// language by hand turns auto-detection off until toggled back.
func (m *generalModel) detectLanguage() {
	text := m.textarea.Value()
	if strings.TrimSpace(text) == "" {
		return
	}
	lang := importer.Detect(text)
	if lang != m.language {
		m.language = lang
		m.voiceIdx = voiceIndex(m.model, lang, tts.DefaultVoice(m.model, lang).ID)
	}
}

// minPlayChars keeps accidental one-keystroke playback requests from
// opening a synthesis connection.
const minPlayChars = 10

// speak starts one worker for the current text, either playing the
// audio or saving it next to the configured output directory.
func (m generalModel) speak(playOnly bool) (generalModel, tea.Cmd) {
	if m.speaking {
		return m, nil
	}
	text := m.textarea.Value()
	if strings.TrimSpace(text) == "" {
		m.message = m.common.str.NothingToSpeak
		return m, nil
	}
	if playOnly && len([]rune(strings.TrimSpace(text))) < minPlayChars {
		m.message = m.common.str.NothingToSpeak
		return m, nil
	}

	voice := m.voice()
	cfg := tts.WorkerConfig{
		Text:       text,
		Voice:      voice,
		Model:      m.model,
		PlayOnly:   playOnly,
		Settings:   m.common.voiceSettings,
		Engine:     m.common.engine,
		ScratchDir: m.common.cfg.ScratchDir,
	}
	if !playOnly {
		cfg.OutputPath = filepath.Join(m.common.cfg.OutputDir,
			tts.OutputFilename(m.model, m.language, voice))
	}

	w := tts.NewWorker(cfg)
	relayWorker(m.common.ev, w)
	w.Start()

	m.speaking = true
	m.percent = 0
	m.message = m.common.str.StatusWorking
	return m, m.progress.SetPercent(0)
}

// startTranslation translates the buffer into the selected language on
// a background goroutine.
func (m generalModel) startTranslation() (generalModel, tea.Cmd) {
	text := m.textarea.Value()
	if strings.TrimSpace(text) == "" {
		m.message = m.common.str.NothingToSpeak
		return m, nil
	}

	service := settings.GetString(m.common.values, settings.KeyTranslatorService)
	apiKey := settings.GetString(m.common.values, settings.KeyTranslatorAPIKey)
	tr := translate.New(service, apiKey)
	target := m.language.Code()

	ev := m.common.ev
	go func() {
		out, err := tr.Translate(context.Background(), text, target)
		ev.send(translationDoneMsg{text: out, err: err})
	}()

	m.message = m.common.str.StatusWorking
	return m, nil
}

func (m generalModel) view() string {
	voice := m.voice()
	detect := "manual"
	if m.autoDetect {
		detect = "auto"
	}

	controls := lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render(m.common.str.TextLanguage+": "),
		valueStyle.Render(fmt.Sprintf("%s (%s)", m.language, detect)),
		dimStyle.Render("  •  "),
		labelStyle.Render(m.common.str.Voice+": "),
		valueStyle.Render(voice.Label()),
		dimStyle.Render("  •  "),
		labelStyle.Render(m.common.str.Model+": "),
		valueStyle.Render(m.model),
	)

	vs := m.common.voiceSettings
	prosody := dimStyle.Render(fmt.Sprintf("%s %.1fx  %s %d%%  %s %+dHz",
		m.common.str.Speed, vs.Speed, m.common.str.Volume, vs.Volume, m.common.str.Pitch, vs.Pitch))

	var status string
	if m.speaking {
		status = m.progress.View() + "  " + m.message
	} else if m.message != "" {
		status = m.message
	}

	hints := dimStyle.Render("esc fields/text • ctrl+p play • ctrl+s save • ctrl+t translate • ctrl+y copy • ctrl+b paste • l/v/a select • r reset")

	return lipgloss.JoinVertical(lipgloss.Left,
		paneStyle.Render(m.textarea.View()),
		" "+controls,
		" "+prosody,
		" "+status,
		" "+hints,
	)
}

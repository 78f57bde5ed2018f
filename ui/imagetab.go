package ui

import (
	"context"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/ogi-dev/ogitts/internal/settings"
	"github.com/ogi-dev/ogitts/ocr"
	"github.com/ogi-dev/ogitts/utils"
)

// imageModel is the image-to-text screen: an image path prompt and the
// extracted text.
type imageModel struct {
	common *commonModel

	input    textinput.Model
	result   viewport.Model
	text     string
	busy     bool
	errText  string
	focusing bool
}

func newImageModel(common *commonModel) imageModel {
	in := textinput.New()
	in.Placeholder = "path to a PNG or JPEG image"
	in.CharLimit = 512

	return imageModel{
		common:   common,
		input:    in,
		result:   viewport.New(0, 0),
		focusing: true,
	}
}

func (m *imageModel) setSize(width, height int) {
	m.input.Width = width - 10
	m.result.Width = width - 6
	h := height - 9
	if h < 3 {
		h = 3
	}
	m.result.Height = h
}

func (m imageModel) capturesInput() bool {
	return m.focusing
}

func (m imageModel) update(msg tea.Msg) (imageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ocrDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			log.Error("text extraction failed", "err", msg.err)
			return m, nil
		}
		m.errText = ""
		m.text = msg.text
		m.result.SetContent(msg.text)
		return m, nil

	case tea.KeyMsg:
		if m.focusing {
			switch msg.String() {
			case "enter":
				return m.extract()
			case "esc":
				m.focusing = false
				m.input.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "esc", "e":
			m.focusing = true
			return m, m.input.Focus()
		case "y":
			if m.text != "" {
				if err := clipboard.WriteAll(m.text); err == nil {
					m.errText = ""
				}
			}
			return m, nil
		case "s":
			if m.text != "" {
				path := filepath.Join(m.common.cfg.OutputDir, "extracted_text.txt")
				if err := os.WriteFile(path, []byte(m.text), 0o644); err != nil { //nolint:gosec
					m.errText = err.Error()
				} else {
					m.errText = ""
					log.Info("extracted text saved", "path", path)
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.result, cmd = m.result.Update(msg)
	return m, cmd
}

// extract reads the image and runs the configured OCR backend on a
// background goroutine.
func (m imageModel) extract() (imageModel, tea.Cmd) {
	path := utils.ExpandPath(m.input.Value())
	if path == "" || m.busy {
		return m, nil
	}

	image, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		m.errText = err.Error()
		return m, nil
	}

	client := ocr.New(ocr.Config{
		Service:       settings.GetString(m.common.values, settings.KeyOCRService),
		APIKey:        settings.GetString(m.common.values, settings.KeyOCRAPIKey),
		AzureEndpoint: settings.GetString(m.common.values, settings.KeyOCRAzureEndpoint),
	})

	ev := m.common.ev
	go func() {
		text, err := client.Recognize(context.Background(), image)
		ev.send(ocrDoneMsg{text: text, err: err})
	}()

	m.busy = true
	m.errText = ""
	return m, nil
}

func (m imageModel) view() string {
	status := ""
	switch {
	case m.busy:
		status = m.common.str.StatusWorking
	case m.errText != "":
		status = statusErrorStyle.Render(m.errText)
	case m.text != "":
		status = m.common.str.StatusDone
	}

	hints := dimStyle.Render("enter extract • esc scroll/edit • y copy result • s save as text")

	return lipgloss.JoinVertical(lipgloss.Left,
		" "+labelStyle.Render(m.common.str.ExtractText+": ")+m.input.View(),
		paneStyle.Render(m.result.View()),
		" "+status,
		" "+hints,
	)
}

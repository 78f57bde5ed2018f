package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/log"
)

const helpMarkdown = `# OGI TTS

Turn text into speech with Microsoft Edge neural voices.

## Tabs

| Key | Tab |
|-----|-----|
| 1 | General — type text, play or save it |
| 2 | Batch — import documents and synthesize them in order |
| 3 | Image to Text — extract text from an image via OCR |
| 4 | Settings |
| 5 | Log |
| 6 | Help |

Switch tabs with *tab* / *shift+tab* or the number keys. Quit with *q*
or *ctrl+c*.

## General

Type or paste (*ctrl+b*) text. The text language is detected as you
type; press *esc* to leave the text field, then *l* to pick a language
by hand, *v* to cycle voices and *a* to re-enable detection.

- *ctrl+p* — synthesize and play
- *ctrl+s* — synthesize and save an MP3 to the output directory
- *ctrl+t* — translate the text into the selected language
- *ctrl+y* — copy the text to the clipboard
- *+ / -*, *↑ / ↓*, *← / →* — speed, volume and pitch; *r* resets them

## Batch

Press *i* and enter a path or glob to import .txt and .docx files.
Each file gets its detected language and a default voice; adjust per
file with *g* and *v*. Press *s* to start: files are processed top to
bottom, one at a time, and a failed file never stops the rest. Output
lands in the output directory as
` + "`batch_<n>_<lang>_<model>_<name>.mp3`" + `.

## Settings

Settings persist to a JSON file next to the executable. The file is
plain JSON; external edits are picked up while the app runs.
Translation and OCR need API keys from the respective services.
`

// helpModel renders the built-in manual.
type helpModel struct {
	common *commonModel
	vp     viewport.Model
}

func newHelpModel(common *commonModel) helpModel {
	return helpModel{
		common: common,
		vp:     viewport.New(0, 0),
	}
}

func (m *helpModel) setSize(width, height int) {
	m.vp.Width = width - 4
	h := height - 4
	if h < 3 {
		h = 3
	}
	m.vp.Height = h
	m.render(width - 6)
}

// render re-renders the manual at the current width. Falls back to the
// raw markdown when glamour is unavailable or disabled.
func (m *helpModel) render(width int) {
	if !m.common.cfg.GlamourEnabled {
		m.vp.SetContent(helpMarkdown)
		return
	}

	style := styles.DarkStyle
	if !hasDarkBackground {
		style = styles.LightStyle
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Debug("unable to create help renderer", "err", err)
		m.vp.SetContent(helpMarkdown)
		return
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		m.vp.SetContent(helpMarkdown)
		return
	}
	m.vp.SetContent(out)
}

func (m helpModel) update(msg tea.Msg) (helpModel, tea.Cmd) {
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m helpModel) view() string {
	return m.vp.View()
}

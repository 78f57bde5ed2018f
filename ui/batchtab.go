package ui

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/sahilm/fuzzy"

	"github.com/ogi-dev/ogitts/tts"
	"github.com/ogi-dev/ogitts/utils"
)

// batchMode distinguishes the keyboard owner within the tab.
type batchMode int

const (
	batchBrowsing batchMode = iota
	batchImporting            // typing a path or glob
	batchFiltering            // typing a fuzzy filter
)

// batchModel is the batch processing screen: the record table, the
// aggregate progress bar and the import and filter prompts.
type batchModel struct {
	common *commonModel

	table    table.Model
	progress progress.Model
	input    textinput.Model
	mode     batchMode

	// filtered maps visible table rows back to record indices when a
	// fuzzy filter is active; nil means no filter.
	filtered []int
	filter   string
}

func newBatchModel(common *commonModel) batchModel {
	t := table.New(
		table.WithColumns(batchColumns(80)),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Selected = selectedRowStyle
	t.SetStyles(styles)

	in := textinput.New()
	in.CharLimit = 512

	return batchModel{
		common:   common,
		table:    t,
		progress: progress.New(progress.WithDefaultGradient()),
		input:    in,
	}
}

func batchColumns(width int) []table.Column {
	name := width - 58
	if name < 16 {
		name = 16
	}
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "File", Width: name},
		{Title: "Size", Width: 9},
		{Title: "Detected", Width: 10},
		{Title: "Language", Width: 10},
		{Title: "Voice", Width: 16},
	}
}

func (m *batchModel) setSize(width, height int) {
	m.table.SetColumns(batchColumns(width - 6))
	h := height - 9
	if h < 3 {
		h = 3
	}
	m.table.SetHeight(h)
	m.progress.Width = width - 8
}

func (m batchModel) capturesInput() bool {
	return m.mode != batchBrowsing
}

// refreshRows rebuilds the table from the controller's records,
// applying the fuzzy filter when one is set.
func (m *batchModel) refreshRows() {
	records := m.common.controller.Records()

	m.filtered = nil
	indices := make([]int, 0, len(records))
	if m.filter != "" {
		names := make([]string, len(records))
		for i, r := range records {
			names[i] = r.DisplayName
		}
		for _, match := range fuzzy.Find(m.filter, names) {
			indices = append(indices, match.Index)
		}
		m.filtered = indices
	} else {
		for i := range records {
			indices = append(indices, i)
		}
	}

	rows := make([]table.Row, 0, len(indices))
	for _, i := range indices {
		r := records[i]
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			r.DisplayName,
			humanize.Bytes(uint64(len(r.Content))),
			r.DetectedLanguage.String(),
			r.SelectedLanguage.String(),
			r.SelectedVoice.Label(),
		})
	}
	m.table.SetRows(rows)
}

// selectedRecord returns the record index behind the table cursor.
func (m batchModel) selectedRecord() (int, bool) {
	cursor := m.table.Cursor()
	if m.filtered != nil {
		if cursor < 0 || cursor >= len(m.filtered) {
			return 0, false
		}
		return m.filtered[cursor], true
	}
	if cursor < 0 || cursor >= m.common.controller.Len() {
		return 0, false
	}
	return cursor, true
}

func (m *batchModel) setProgress(fraction float64) tea.Cmd {
	return m.progress.SetPercent(fraction)
}

func (m batchModel) update(msg tea.Msg) (batchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case progress.FrameMsg:
		p, cmd := m.progress.Update(msg)
		m.progress = p.(progress.Model)
		return m, cmd

	case tea.KeyMsg:
		switch m.mode {
		case batchImporting:
			return m.updateImporting(msg)
		case batchFiltering:
			return m.updateFiltering(msg)
		}
		return m.updateBrowsing(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m batchModel) updateBrowsing(msg tea.KeyMsg) (batchModel, tea.Cmd) {
	switch msg.String() {
	case "i":
		m.mode = batchImporting
		m.input.Placeholder = "path or glob, e.g. ~/docs/*.txt"
		m.input.SetValue("")
		return m, m.input.Focus()

	case "/":
		m.mode = batchFiltering
		m.input.Placeholder = "filter by filename"
		m.input.SetValue(m.filter)
		return m, m.input.Focus()

	case "s":
		controller := m.common.controller
		go controller.Start()
		return m, nil

	case "c":
		_ = m.common.controller.Clear() // refusal arrives as a diagnostic
		m.filter = ""
		m.refreshRows()
		return m, nil

	case "g":
		if i, ok := m.selectedRecord(); ok {
			rec := m.common.controller.Records()[i]
			next := tts.Languages[(int(rec.SelectedLanguage)+1)%len(tts.Languages)]
			_ = m.common.controller.UpdateLanguage(i, next)
		}
		return m, nil

	case "v":
		if i, ok := m.selectedRecord(); ok {
			rec := m.common.controller.Records()[i]
			set := tts.VoicesFor(rec.SelectedModel, rec.SelectedLanguage)
			cur := 0
			for j, v := range set {
				if v.ID == rec.SelectedVoice.ID {
					cur = j
					break
				}
			}
			_ = m.common.controller.UpdateVoice(i, set[(cur+1)%len(set)].ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m batchModel) updateImporting(msg tea.KeyMsg) (batchModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = batchBrowsing
		m.input.Blur()
		return m, nil
	case "enter":
		pattern := m.input.Value()
		m.mode = batchBrowsing
		m.input.Blur()
		if pattern == "" {
			return m, nil
		}
		// Glob does no tilde expansion, so ~/docs/*.txt must be
		// expanded first.
		pattern = utils.ExpandPath(pattern)
		paths, err := filepath.Glob(pattern)
		if err != nil || len(paths) == 0 {
			paths = []string{pattern}
		}
		controller := m.common.controller
		go controller.ImportFiles(paths)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m batchModel) updateFiltering(msg tea.KeyMsg) (batchModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = batchBrowsing
		m.input.Blur()
		m.filter = ""
		m.refreshRows()
		return m, nil
	case "enter":
		m.mode = batchBrowsing
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filter = m.input.Value()
	m.refreshRows()
	return m, cmd
}

func (m batchModel) view() string {
	var prompt string
	switch m.mode {
	case batchImporting:
		prompt = " " + labelStyle.Render(m.common.str.ImportFiles+": ") + m.input.View()
	case batchFiltering:
		prompt = " " + labelStyle.Render("/") + m.input.View()
	default:
		count := m.common.controller.Len()
		state := m.common.str.StatusReady
		if m.common.controller.IsProcessing() {
			state = m.common.str.StatusWorking
		}
		prompt = " " + dimStyle.Render(fmt.Sprintf("%d file(s) • %s • → %s",
			count, state, m.common.cfg.OutputDir))
	}

	hints := dimStyle.Render("i import • s start • c clear • / filter • g language • v voice")

	return lipgloss.JoinVertical(lipgloss.Left,
		paneStyle.Render(m.table.View()),
		prompt,
		" "+m.progress.View(),
		" "+hints,
	)
}

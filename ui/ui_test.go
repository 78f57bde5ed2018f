package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mitchellh/go-homedir"

	"github.com/ogi-dev/ogitts/batch"
)

func testModel(t *testing.T) model {
	t.Helper()
	dir := t.TempDir()
	m := newModel(Config{
		SettingsPath: filepath.Join(dir, "settings.json"),
		OutputDir:    dir,
		ScratchDir:   dir,
	})
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 32})
	return sized.(model)
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabNavigation(t *testing.T) {
	m := testModel(t)

	if m.active != tabGeneral {
		t.Fatalf("initial tab = %v", m.active)
	}

	// The general textarea owns the keyboard at first; esc releases it.
	next, _ := m.Update(key("esc"))
	m = next.(model)
	if m.capturesInput() {
		t.Fatal("esc should release the text field")
	}

	next, _ = m.Update(key("tab"))
	m = next.(model)
	if m.active != tabBatch {
		t.Errorf("after tab, active = %v, want batch", m.active)
	}

	next, _ = m.Update(key("shift+tab"))
	m = next.(model)
	if m.active != tabGeneral {
		t.Errorf("after shift+tab, active = %v, want general", m.active)
	}

	next, _ = m.Update(key("5"))
	m = next.(model)
	if m.active != tabLog {
		t.Errorf("after '5', active = %v, want log", m.active)
	}
}

func TestTypingDoesNotSwitchTabs(t *testing.T) {
	m := testModel(t)

	// With the textarea focused, a plain "2" is text, not navigation.
	next, _ := m.Update(key("2"))
	m = next.(model)
	if m.active != tabGeneral {
		t.Errorf("typing '2' switched tabs to %v", m.active)
	}
	if got := m.general.textarea.Value(); got != "2" {
		t.Errorf("textarea value = %q, want the typed rune", got)
	}
}

func TestDiagnosticReachesLogAndStatus(t *testing.T) {
	m := testModel(t)

	next, _ := m.Update(diagnosticMsg{severity: batch.Warning, text: "Skipped bad.txt"})
	m = next.(model)

	if m.status != "Skipped bad.txt" {
		t.Errorf("status = %q", m.status)
	}
	if len(m.logview.entries) != 1 {
		t.Errorf("log entries = %d, want 1", len(m.logview.entries))
	}

	next, _ = m.Update(statusMessageTimeoutMsg{})
	m = next.(model)
	if m.status != "" {
		t.Errorf("status after timeout = %q, want empty", m.status)
	}
}

func TestImportPromptExpandsTilde(t *testing.T) {
	homedir.DisableCache = true
	defer func() { homedir.DisableCache = false }()
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := os.MkdirAll(filepath.Join(home, "docs"), 0o755); err != nil {
		t.Fatal(err)
	}
	content := "a perfectly ordinary text document for the import prompt"
	if err := os.WriteFile(filepath.Join(home, "docs", "one.txt"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m := testModel(t)
	for _, k := range []string{"esc", "tab", "i"} {
		next, _ := m.Update(key(k))
		m = next.(model)
	}
	if m.batch.mode != batchImporting {
		t.Fatal("import prompt did not open")
	}

	next, _ := m.Update(key("~/docs/*.txt"))
	m = next.(model)
	next, _ = m.Update(key("enter"))
	m = next.(model)

	// The import runs on a goroutine; wait for the record to land.
	deadline := time.Now().Add(3 * time.Second)
	for m.common.controller.Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("tilde glob imported nothing")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if got := m.common.controller.Records()[0].DisplayName; got != "one.txt" {
		t.Errorf("imported %q, want one.txt", got)
	}
}

func TestEventsSendNeverBlocks(t *testing.T) {
	ev := newEvents()
	// Overfill the buffer; send must drop, not deadlock.
	for i := 0; i < 200; i++ {
		ev.send(recordsChangedMsg{})
	}
}

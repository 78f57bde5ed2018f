package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ogi-dev/ogitts/batch"
	"github.com/ogi-dev/ogitts/tts"
)

const statusMessageTimeout = time.Second * 3

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// Messages produced by the batch controller sink and by running
// speech workers. Everything asynchronous enters the update loop
// through the shared events channel.
type (
	recordsChangedMsg struct{}

	batchProgressMsg struct{ fraction float64 }

	diagnosticMsg struct {
		severity batch.Severity
		text     string
		when     time.Time
	}

	speechProgressMsg struct {
		percent int
		message string
	}

	speechDoneMsg struct{ err error }

	translationDoneMsg struct {
		text string
		err  error
	}

	ocrDoneMsg struct {
		text string
		err  error
	}

	settingsChangedOnDiskMsg struct{}

	statusMessageTimeoutMsg struct{}
)

// events is the funnel between background goroutines and the Bubble
// Tea update loop. Buffered generously so controller callbacks never
// block on a busy render.
type events struct {
	ch chan tea.Msg
}

func newEvents() *events {
	return &events{ch: make(chan tea.Msg, 64)}
}

// send never blocks; when the UI cannot keep up, dropping a
// notification beats stalling the batch.
func (e *events) send(msg tea.Msg) {
	select {
	case e.ch <- msg:
	default:
	}
}

// wait is the self-rearming command that feeds the update loop.
func (e *events) wait() tea.Cmd {
	return func() tea.Msg {
		return <-e.ch
	}
}

// sink adapts the events funnel to the batch controller's notification
// interface.
type sink struct{ ev *events }

func (s sink) RecordsChanged() {
	s.ev.send(recordsChangedMsg{})
}

func (s sink) Progress(fraction float64) {
	s.ev.send(batchProgressMsg{fraction: fraction})
}

func (s sink) Diagnostic(sev batch.Severity, msg string) {
	s.ev.send(diagnosticMsg{severity: sev, text: msg, when: time.Now()})
}

// relayWorker forwards a speech worker's notifications into the events
// funnel. The goroutine ends when the worker closes its channel.
func relayWorker(ev *events, w *tts.Worker) {
	go func() {
		for n := range w.Notifications() {
			switch n.Kind {
			case tts.KindProgress:
				ev.send(speechProgressMsg{percent: n.Progress, message: n.Message})
			case tts.KindLog:
				ev.send(diagnosticMsg{severity: batch.Info, text: n.Message, when: time.Now()})
			case tts.KindTerminal:
				ev.send(speechDoneMsg{err: n.Err})
			}
		}
	}()
}

func statusTimeoutCmd() tea.Cmd {
	return tea.Tick(statusMessageTimeout, func(time.Time) tea.Msg {
		return statusMessageTimeoutMsg{}
	})
}

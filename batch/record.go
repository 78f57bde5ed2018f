// Package batch owns the ordered list of imported documents and drives
// them through the speech synthesis worker one at a time.
package batch

import (
	"github.com/ogi-dev/ogitts/tts"
)

// Record is one imported document plus its per-document synthesis
// configuration. Records live only for the session; they are never
// persisted.
type Record struct {
	SourcePath  string // absolute path of the original file
	DisplayName string // filename shown in the UI
	Content     string // full decoded text

	DetectedLanguage tts.Language

	SelectedModel    string
	SelectedLanguage tts.Language
	// SelectedVoice always belongs to the voice set of SelectedModel
	// and SelectedLanguage; changing either resets it to the set's
	// first entry.
	SelectedVoice tts.Voice

	// outputPath is computed once when the record's worker is started
	// and reused when its completion is checked.
	outputPath string
}

// Severity classifies a diagnostic message.
type Severity int

const (
	Info Severity = iota
	Success
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Sink receives controller notifications. It is the only channel
// through which the controller talks to a presentation layer; no
// widget state ever crosses this boundary.
type Sink interface {
	// RecordsChanged signals that the record list or a record's
	// fields changed.
	RecordsChanged()

	// Progress reports the aggregate batch fraction in [0, 1].
	Progress(fraction float64)

	// Diagnostic reports a human-readable message.
	Diagnostic(sev Severity, msg string)
}

// NopSink discards all notifications. It stands in when a caller has
// no UI affordances to drive.
type NopSink struct{}

func (NopSink) RecordsChanged()             {}
func (NopSink) Progress(float64)            {}
func (NopSink) Diagnostic(Severity, string) {}

package tts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/ogi-dev/ogitts/tts/audio"
	"github.com/ogi-dev/ogitts/tts/engines"
)

// WorkerState tracks a worker through its lifecycle. There is no
// cancelled state: once started, a worker runs to completion or
// failure, and callers may only abandon interest in the result.
type WorkerState int32

const (
	StateCreated WorkerState = iota
	StateRunning
	StateSucceeded
	StateFailed
)

func (s WorkerState) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// NotificationKind distinguishes the three message types a worker
// emits.
type NotificationKind int

const (
	// KindProgress carries a coarse completion percentage.
	KindProgress NotificationKind = iota
	// KindLog carries an informational message with no state change.
	KindLog
	// KindTerminal ends the stream: exactly one per run, carrying
	// either a success message or an error, never both.
	KindTerminal
)

// Notification is one asynchronous message from a running worker.
// Progress percentages are monotonically increasing; the terminal
// notification is always last and the channel is closed after it.
type Notification struct {
	Kind     NotificationKind
	Progress int
	Message  string
	Err      error
}

// maxNotifications bounds the channel buffer so emitting never blocks,
// which keeps abandoned workers from leaking goroutines.
const maxNotifications = 16

// cleanupDelay is how long a play-only temp file is kept around after
// successful playback, so external players have time to open it.
const cleanupDelay = 10 * time.Second

// WorkerConfig describes one synthesis run.
type WorkerConfig struct {
	Text       string
	Voice      Voice
	Model      string
	OutputPath string // destination artifact; ignored when PlayOnly
	PlayOnly   bool
	Settings   VoiceSettings

	Engine engines.Engine

	// ScratchDir receives play-only temp files. Defaults to the
	// system temp directory.
	ScratchDir string

	// Chain overrides the playback strategies; nil selects the
	// platform default for the chosen format.
	Chain []audio.Strategy

	// CleanupDelay overrides the post-playback temp file retention.
	// Zero means the default.
	CleanupDelay time.Duration
}

// Worker converts one text payload into one audio artifact (or an
// ephemeral playback file) on a background goroutine, reporting
// progress and completion through its notification channel.
type Worker struct {
	cfg     WorkerConfig
	state   atomic.Int32
	started atomic.Bool
	ch      chan Notification
}

// NewWorker creates a worker in the created state. Nothing happens
// until Start is called.
func NewWorker(cfg WorkerConfig) *Worker {
	return &Worker{
		cfg: cfg,
		ch:  make(chan Notification, maxNotifications),
	}
}

// Notifications returns the channel carrying progress, log and
// terminal messages, in that order. The channel closes after the
// terminal notification.
func (w *Worker) Notifications() <-chan Notification {
	return w.ch
}

// State returns the worker's current lifecycle state.
func (w *Worker) State() WorkerState {
	return WorkerState(w.state.Load())
}

// Start launches the run on its own goroutine and returns immediately.
// Calling Start more than once is a no-op.
func (w *Worker) Start() {
	if !w.started.CompareAndSwap(false, true) {
		return
	}
	w.state.Store(int32(StateRunning))
	go w.run()
}

func (w *Worker) run() {
	defer close(w.ch)
	defer func() {
		if r := recover(); r != nil {
			w.terminal(fmt.Errorf("synthesis panicked: %v", r))
		}
	}()

	w.progress(10, "Starting TTS")
	w.progress(20, "Initializing "+w.cfg.Model)

	settings := w.cfg.Settings.Clamp()
	format := engines.FormatMP3
	if w.cfg.PlayOnly {
		format = engines.FormatPCM
	}

	w.progress(30, "Preparing voice "+w.cfg.Voice.ID)
	req := engines.Request{
		Text:   w.cfg.Text,
		Voice:  w.cfg.Voice.ID,
		Rate:   settings.Rate(),
		Volume: settings.VolumeParam(),
		Pitch:  settings.PitchParam(),
		Format: format,
	}

	w.progress(50, "Generating speech")
	data, err := w.cfg.Engine.Synthesize(context.Background(), req)
	if err != nil {
		w.terminal(fmt.Errorf("synthesis failed: %w", err))
		return
	}

	if w.cfg.PlayOnly {
		w.playEphemeral(data, format)
		return
	}

	w.progress(90, "Saving audio")
	if err := os.MkdirAll(filepath.Dir(w.cfg.OutputPath), 0o755); err != nil {
		w.terminal(fmt.Errorf("unable to create output directory: %w", err))
		return
	}
	if err := os.WriteFile(w.cfg.OutputPath, data, 0o644); err != nil { //nolint:gosec
		w.terminal(fmt.Errorf("unable to write %s: %w", w.cfg.OutputPath, err))
		return
	}

	w.progress(100, "TTS completed")
	w.terminal(nil)
}

// playEphemeral writes the audio to a uniquely named temp file, walks
// the playback chain, and schedules deferred deletion on success. A
// playback failure is not fatal: the file is preserved for inspection
// and the run still completes.
func (w *Worker) playEphemeral(data []byte, format string) {
	dir := w.cfg.ScratchDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		w.terminal(fmt.Errorf("unable to create scratch directory: %w", err))
		return
	}

	ext := ".mp3"
	if format == engines.FormatPCM {
		ext = ".pcm"
	}
	suffix := strings.Split(uuid.NewString(), "-")[0]
	path := filepath.Join(dir, "play_temp_"+suffix+ext)

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		w.terminal(fmt.Errorf("unable to write temp audio: %w", err))
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		w.terminal(fmt.Errorf("temp audio file %s is empty", path))
		return
	}
	w.emit(Notification{Kind: KindLog, Message: fmt.Sprintf("Audio file created: %s", humanize.Bytes(uint64(info.Size())))})

	w.progress(90, "Playing audio")
	chain := w.cfg.Chain
	if chain == nil {
		chain = audio.Chain(format)
	}

	strategy, err := audio.PlayFile(context.Background(), path, chain)
	if err != nil {
		// Keep the file so the failure can be diagnosed.
		w.emit(Notification{Kind: KindLog, Message: "Could not play audio - all methods failed, file preserved: " + path})
		log.Warn("playback failed, temp file preserved", "path", path)
	} else {
		w.emit(Notification{Kind: KindLog, Message: "Audio played successfully using " + strategy})
		delay := w.cfg.CleanupDelay
		if delay == 0 {
			delay = cleanupDelay
		}
		time.AfterFunc(delay, func() {
			if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
				log.Debug("temp audio cleanup failed", "path", path, "err", rmErr)
			}
		})
	}

	w.progress(100, "TTS completed")
	w.terminal(nil)
}

func (w *Worker) progress(pct int, msg string) {
	w.emit(Notification{Kind: KindProgress, Progress: pct, Message: fmt.Sprintf("%s... %d%%", msg, pct)})
}

func (w *Worker) terminal(err error) {
	if err != nil {
		w.state.Store(int32(StateFailed))
		log.Error("worker failed", "err", err)
		w.emit(Notification{Kind: KindTerminal, Err: err, Message: "Error: " + err.Error()})
		return
	}
	w.state.Store(int32(StateSucceeded))
	w.emit(Notification{Kind: KindTerminal, Message: "TTS completed"})
}

func (w *Worker) emit(n Notification) {
	select {
	case w.ch <- n:
	default:
		// Buffer full means the consumer abandoned the worker; drop
		// rather than block.
	}
}

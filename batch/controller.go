package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/ogi-dev/ogitts/internal/importer"
	"github.com/ogi-dev/ogitts/tts"
	"github.com/ogi-dev/ogitts/tts/engines"
)

var (
	// ErrBatchInFlight is returned by mutations that are refused while
	// records are being processed.
	ErrBatchInFlight = errors.New("batch processing is in progress")

	// ErrBadIndex is returned when a record index is out of range.
	ErrBadIndex = errors.New("record index out of range")

	// ErrUnknownVoice is returned when a voice id does not belong to
	// the record's current model and language voice set.
	ErrUnknownVoice = errors.New("voice does not belong to the selected voice set")
)

// processingCharsPerSecond is the rough synthesis throughput used for
// the import-time estimate shown to the user. It is deliberately
// conservative; the real rate depends on the backend and the network.
const processingCharsPerSecond = 10

// WorkerFactory builds the worker for one record. The default wraps
// tts.NewWorker; tests substitute a factory around a scripted engine.
type WorkerFactory func(cfg tts.WorkerConfig) *tts.Worker

// ImportFunc reads one document. The default is importer.Import.
type ImportFunc func(path string) (string, tts.Language, error)

// Config assembles a Controller. Engine is required; everything else
// has a usable zero value.
type Config struct {
	Engine    engines.Engine
	Sink      Sink
	OutputDir string // artifact destination; empty means the working directory
	Settings  tts.VoiceSettings
	Factory   WorkerFactory
	Import    ImportFunc
}

// Controller owns the batch record list and drives it through synthesis
// strictly in order, with at most one worker in flight. All methods are
// safe for concurrent use; notifications reach the presentation layer
// only through the configured Sink.
type Controller struct {
	mu sync.Mutex

	records  []Record
	cursor   int  // index of the record currently in flight
	active   bool // true between Start and the last record's terminal
	progress int  // current worker's last reported percentage

	// reported is the high-water mark of the published fraction.
	// Records appended mid-flight grow the denominator; the published
	// value holds instead of moving backwards.
	reported float64

	settings  tts.VoiceSettings
	outputDir string

	engine   engines.Engine
	sink     Sink
	factory  WorkerFactory
	importFn ImportFunc

	// done closes when the in-flight batch finishes. Recreated on every
	// Start; Wait blocks on it.
	done chan struct{}
}

// New returns an idle controller with an empty record list.
func New(cfg Config) *Controller {
	c := &Controller{
		settings:  cfg.Settings,
		outputDir: cfg.OutputDir,
		engine:    cfg.Engine,
		sink:      cfg.Sink,
		factory:   cfg.Factory,
		importFn:  cfg.Import,
	}
	if c.sink == nil {
		c.sink = NopSink{}
	}
	if c.factory == nil {
		c.factory = tts.NewWorker
	}
	if c.importFn == nil {
		c.importFn = importer.Import
	}
	if c.outputDir == "" {
		c.outputDir = "."
	}
	return c
}

// Records returns a snapshot of the record list.
func (c *Controller) Records() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of imported records.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// IsProcessing reports whether a batch run is in flight.
func (c *Controller) IsProcessing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// ImportFiles reads each path and appends a record per readable
// document. Unreadable or empty files are skipped with a diagnostic;
// one bad file never aborts the rest. Appending during processing is
// allowed: the new records simply extend the in-flight batch.
func (c *Controller) ImportFiles(paths []string) {
	var added, totalChars int
	for _, path := range paths {
		content, lang, err := c.importFn(path)
		if err != nil {
			c.sink.Diagnostic(Warning, fmt.Sprintf("Skipped %s: %v", filepath.Base(path), err))
			log.Warn("import skipped", "path", path, "err", err)
			continue
		}

		rec := Record{
			SourcePath:       path,
			DisplayName:      filepath.Base(path),
			Content:          content,
			DetectedLanguage: lang,
			SelectedModel:    tts.ModelEdge,
			SelectedLanguage: lang,
			SelectedVoice:    tts.DefaultVoice(tts.ModelEdge, lang),
		}

		c.mu.Lock()
		c.records = append(c.records, rec)
		c.mu.Unlock()

		added++
		totalChars += len(content)
	}

	if added == 0 {
		if len(paths) > 0 {
			c.sink.Diagnostic(Error, "No readable files were imported")
		}
		return
	}

	c.sink.RecordsChanged()
	est := time.Duration(totalChars/processingCharsPerSecond+1) * time.Second
	c.sink.Diagnostic(Info, fmt.Sprintf("Imported %d file(s), %s characters, estimated processing time %s",
		added, humanize.Comma(int64(totalChars)), est.Round(time.Second)))
}

// UpdateModel sets a record's synthesis backend and resets its voice to
// the first entry of the new voice set.
func (c *Controller) UpdateModel(i int, model string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.records) {
		return ErrBadIndex
	}
	rec := &c.records[i]
	rec.SelectedModel = model
	rec.SelectedVoice = tts.FirstVoice(model, rec.SelectedLanguage)
	c.notifyRecords()
	return nil
}

// UpdateLanguage sets a record's synthesis language and resets its
// voice to the first entry of the new voice set. The detected language
// is untouched; it records what the importer saw, not what the user
// chose.
func (c *Controller) UpdateLanguage(i int, lang tts.Language) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.records) {
		return ErrBadIndex
	}
	rec := &c.records[i]
	rec.SelectedLanguage = lang
	rec.SelectedVoice = tts.FirstVoice(rec.SelectedModel, lang)
	c.notifyRecords()
	return nil
}

// UpdateVoice sets a record's voice. The id must belong to the voice
// set of the record's current model and language.
func (c *Controller) UpdateVoice(i int, voiceID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.records) {
		return ErrBadIndex
	}
	rec := &c.records[i]
	if !tts.VoiceInSet(rec.SelectedModel, rec.SelectedLanguage, voiceID) {
		return fmt.Errorf("%w: %s", ErrUnknownVoice, voiceID)
	}
	for _, v := range tts.VoicesFor(rec.SelectedModel, rec.SelectedLanguage) {
		if v.ID == voiceID {
			rec.SelectedVoice = v
			break
		}
	}
	c.notifyRecords()
	return nil
}

// SetVoiceSettings updates the prosody configuration applied to
// subsequently started workers. Records already in flight keep the
// settings they were started with.
func (c *Controller) SetVoiceSettings(s tts.VoiceSettings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = s
}

// Clear empties the record list. It is refused while a batch is in
// flight: workers cannot be cancelled, so dropping their records would
// orphan them.
func (c *Controller) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active {
		c.sink.Diagnostic(Warning, "Cannot clear while batch processing is in progress")
		return ErrBatchInFlight
	}
	c.records = nil
	c.cursor = 0
	c.progress = 0
	c.reported = 0
	c.notifyRecords()
	c.sink.Progress(0)
	c.sink.Diagnostic(Info, "Batch list cleared")
	return nil
}

// Start begins processing the record list from the top. It is a no-op
// with a diagnostic when the list is empty or a run is already in
// flight.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		c.sink.Diagnostic(Warning, "Batch processing is already in progress")
		return
	}
	if len(c.records) == 0 {
		c.mu.Unlock()
		c.sink.Diagnostic(Warning, "No files to process")
		return
	}
	c.active = true
	c.cursor = 0
	c.progress = 0
	c.reported = 0
	c.done = make(chan struct{})
	n := len(c.records)
	c.mu.Unlock()

	c.sink.Diagnostic(Info, fmt.Sprintf("Batch processing started: %d file(s)", n))
	c.sink.Progress(0)
	c.startCurrent()
}

// Wait blocks until the in-flight batch (if any) finishes.
func (c *Controller) Wait() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

// ProgressFraction returns the aggregate completion in [0, 1]:
// finished records plus the in-flight worker's share. The value never
// decreases during a run, even when an import extends the batch.
func (c *Controller) ProgressFraction() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fractionLocked()
}

func (c *Controller) fractionLocked() float64 {
	f := c.rawFractionLocked()
	if f < c.reported {
		return c.reported
	}
	c.reported = f
	return f
}

func (c *Controller) rawFractionLocked() float64 {
	if len(c.records) == 0 {
		return 0
	}
	if !c.active {
		if c.cursor >= len(c.records) && c.cursor > 0 {
			return 1
		}
		return 0
	}
	done := float64(c.cursor) + float64(c.progress)/100
	return done / float64(len(c.records))
}

// startCurrent launches a worker for the record at the cursor and
// consumes its notifications until the terminal one arrives.
func (c *Controller) startCurrent() {
	c.mu.Lock()
	if c.cursor >= len(c.records) {
		c.finishLocked()
		c.mu.Unlock()
		return
	}
	rec := &c.records[c.cursor]

	// The artifact name is fixed at start time so the completion check
	// below cannot diverge from what the worker wrote, even if the
	// record's fields change mid-flight.
	rec.outputPath = filepath.Join(c.outputDir,
		tts.BatchFilename(c.cursor+1, rec.SelectedModel, rec.SelectedLanguage, rec.DisplayName))

	cfg := tts.WorkerConfig{
		Text:       rec.Content,
		Voice:      rec.SelectedVoice,
		Model:      rec.SelectedModel,
		OutputPath: rec.outputPath,
		Settings:   c.settings,
		Engine:     c.engine,
	}
	pos := c.cursor + 1
	total := len(c.records)
	name := rec.DisplayName
	c.progress = 0
	c.mu.Unlock()

	c.sink.Diagnostic(Info, fmt.Sprintf("Processing file %d/%d: %s", pos, total, name))

	w := c.factory(cfg)
	go c.consume(w, name)
	w.Start()
}

// consume relays one worker's notification stream to the sink and
// advances the batch on the terminal message. The worker emits exactly
// one terminal and closes the channel after it, so the loop always
// ends.
func (c *Controller) consume(w *tts.Worker, name string) {
	for n := range w.Notifications() {
		switch n.Kind {
		case tts.KindProgress:
			c.mu.Lock()
			c.progress = n.Progress
			frac := c.fractionLocked()
			c.mu.Unlock()
			c.sink.Progress(frac)
		case tts.KindLog:
			c.sink.Diagnostic(Info, fmt.Sprintf("[%s] %s", name, n.Message))
		case tts.KindTerminal:
			c.onTerminal(name, n.Err)
		}
	}
}

// onTerminal records one record's outcome and moves the cursor. A
// failed record never stalls the batch: the next one starts
// regardless.
func (c *Controller) onTerminal(name string, err error) {
	c.mu.Lock()
	outputPath := ""
	if c.cursor < len(c.records) {
		outputPath = c.records[c.cursor].outputPath
	}
	c.mu.Unlock()

	if err != nil {
		c.sink.Diagnostic(Error, fmt.Sprintf("Failed %s: %v", name, err))
		log.Error("batch record failed", "file", name, "err", err)
	} else if outputPath != "" {
		if _, statErr := os.Stat(outputPath); statErr != nil {
			c.sink.Diagnostic(Warning, fmt.Sprintf("Completed %s but output file was not found: %s", name, outputPath))
		} else {
			c.sink.Diagnostic(Success, fmt.Sprintf("Completed %s -> %s", name, filepath.Base(outputPath)))
		}
	}

	c.mu.Lock()
	c.cursor++
	c.progress = 0
	finished := c.cursor >= len(c.records)
	frac := c.fractionLocked()
	c.mu.Unlock()

	c.sink.Progress(frac)
	if finished {
		c.mu.Lock()
		c.finishLocked()
		c.mu.Unlock()
		return
	}
	c.startCurrent()
}

func (c *Controller) finishLocked() {
	if !c.active {
		return
	}
	c.active = false
	c.sink.Progress(1)
	c.sink.Diagnostic(Success, "Batch processing completed")
	if c.done != nil {
		close(c.done)
	}
}

func (c *Controller) notifyRecords() {
	// Sink call made under the lock: sinks must not call back into the
	// controller from RecordsChanged.
	c.sink.RecordsChanged()
}

package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	docx "github.com/fumiama/go-docx"

	"github.com/ogi-dev/ogitts/tts"
	"github.com/ogi-dev/ogitts/tts/engines"
	"github.com/ogi-dev/ogitts/tts/engines/mock"
)

// recordingSink captures every controller notification for assertions.
type recordingSink struct {
	mu          sync.Mutex
	changed     int
	fractions   []float64
	diagnostics []string
}

func (s *recordingSink) RecordsChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changed++
}

func (s *recordingSink) Progress(f float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fractions = append(s.fractions, f)
}

func (s *recordingSink) Diagnostic(sev Severity, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diagnostics = append(s.diagnostics, sev.String()+": "+msg)
}

func (s *recordingSink) contains(substr string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.diagnostics {
		if strings.Contains(d, substr) {
			return true
		}
	}
	return false
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeDocxFixture(t *testing.T, dir, name string, paragraphs ...string) string {
	t.Helper()
	w := docx.New().WithDefaultTheme()
	for _, p := range paragraphs {
		w.AddParagraph().AddText(p)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path) //nolint:gosec
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.WriteTo(f); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func newTestController(t *testing.T, eng *mock.Engine, sink Sink) (*Controller, string) {
	t.Helper()
	outDir := t.TempDir()
	c := New(Config{
		Engine:    eng,
		Sink:      sink,
		OutputDir: outDir,
		Settings:  tts.DefaultVoiceSettings(),
	})
	return c, outDir
}

func TestImportFilesSkipsBadEntries(t *testing.T) {
	dir := t.TempDir()
	good := writeFixture(t, dir, "good.txt", "hello world, this is a perfectly fine document")
	empty := writeFixture(t, dir, "empty.txt", "   \n\t ")
	missing := filepath.Join(dir, "missing.txt")
	unsupported := writeFixture(t, dir, "notes.pdf", "binary junk")

	sink := &recordingSink{}
	c, _ := newTestController(t, mock.New(), sink)

	c.ImportFiles([]string{good, empty, missing, unsupported})

	if got := c.Len(); got != 1 {
		t.Fatalf("expected 1 record, got %d", got)
	}
	for _, name := range []string{"empty.txt", "missing.txt", "notes.pdf"} {
		if !sink.contains(name) {
			t.Errorf("expected a skip diagnostic naming %s", name)
		}
	}
	if !sink.contains("Imported 1 file(s)") {
		t.Error("expected an aggregate import diagnostic")
	}

	rec := c.Records()[0]
	if rec.DisplayName != "good.txt" {
		t.Errorf("DisplayName = %q", rec.DisplayName)
	}
	if rec.SelectedModel != tts.ModelEdge {
		t.Errorf("SelectedModel = %q", rec.SelectedModel)
	}
	if rec.SelectedVoice.Gender != "Female" {
		t.Errorf("default voice should be female, got %+v", rec.SelectedVoice)
	}
}

func TestImportFilesAllBad(t *testing.T) {
	sink := &recordingSink{}
	c, _ := newTestController(t, mock.New(), sink)

	c.ImportFiles([]string{filepath.Join(t.TempDir(), "nope.txt")})

	if c.Len() != 0 {
		t.Fatalf("expected no records, got %d", c.Len())
	}
	if !sink.contains("No readable files") {
		t.Error("expected the no-readable-files diagnostic")
	}
	sink.mu.Lock()
	changed := sink.changed
	sink.mu.Unlock()
	if changed != 0 {
		t.Errorf("RecordsChanged fired %d times for an empty import", changed)
	}
}

func TestVoiceResetOnModelAndLanguageChange(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "doc.txt", "some english text for the record")

	c, _ := newTestController(t, mock.New(), &recordingSink{})
	c.ImportFiles([]string{path})

	// Pick the non-default voice first so the reset is observable.
	aria := c.Records()[0].SelectedVoice
	set := tts.VoicesFor(tts.ModelEdge, tts.English)
	if aria.ID != set[1].ID {
		t.Fatalf("expected default English voice %s, got %s", set[1].ID, aria.ID)
	}

	if err := c.UpdateLanguage(0, tts.Russian); err != nil {
		t.Fatal(err)
	}
	rec := c.Records()[0]
	if rec.SelectedLanguage != tts.Russian {
		t.Errorf("SelectedLanguage = %v", rec.SelectedLanguage)
	}
	if want := tts.FirstVoice(tts.ModelEdge, tts.Russian); rec.SelectedVoice.ID != want.ID {
		t.Errorf("voice after language change = %s, want %s", rec.SelectedVoice.ID, want.ID)
	}
	if rec.DetectedLanguage != tts.English {
		t.Errorf("detected language must not change, got %v", rec.DetectedLanguage)
	}

	if err := c.UpdateModel(0, tts.ModelEdge); err != nil {
		t.Fatal(err)
	}
	rec = c.Records()[0]
	if want := tts.FirstVoice(tts.ModelEdge, tts.Russian); rec.SelectedVoice.ID != want.ID {
		t.Errorf("voice after model change = %s, want %s", rec.SelectedVoice.ID, want.ID)
	}
}

func TestUpdateVoiceRejectsForeignVoice(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "doc.txt", "plain text")

	c, _ := newTestController(t, mock.New(), &recordingSink{})
	c.ImportFiles([]string{path})

	if err := c.UpdateVoice(0, "ru-RU-DmitryNeural"); !errors.Is(err, ErrUnknownVoice) {
		t.Fatalf("expected ErrUnknownVoice, got %v", err)
	}
	if err := c.UpdateVoice(0, "en-US-ZiraNeural"); err != nil {
		t.Fatal(err)
	}
	if got := c.Records()[0].SelectedVoice.Name; got != "Zira" {
		t.Errorf("SelectedVoice.Name = %q", got)
	}

	if err := c.UpdateVoice(5, "en-US-ZiraNeural"); !errors.Is(err, ErrBadIndex) {
		t.Errorf("expected ErrBadIndex, got %v", err)
	}
}

func TestBatchProcessesInOrder(t *testing.T) {
	dir := t.TempDir()
	russian := "Это достаточно длинный русский текст, чтобы определение языка сработало надёжно."
	paths := []string{
		writeFixture(t, dir, "first.txt", "first document"),
		writeDocxFixture(t, dir, "report.docx", russian),
		writeFixture(t, dir, "third.txt", "third document"),
	}

	eng := mock.New()
	sink := &recordingSink{}
	c, outDir := newTestController(t, eng, sink)
	c.ImportFiles(paths)

	recs := c.Records()
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	if recs[1].DetectedLanguage != tts.Russian {
		t.Errorf("report.docx detected as %v, want Russian", recs[1].DetectedLanguage)
	}

	c.Start()
	c.Wait()

	calls := eng.Calls()
	if len(calls) != 3 {
		t.Fatalf("expected 3 synthesis calls, got %d", len(calls))
	}
	for i, want := range []string{"first document", russian, "third document"} {
		if calls[i].Text != want {
			t.Errorf("call %d text = %q, want %q", i, calls[i].Text, want)
		}
	}
	if calls[1].Voice != "ru-RU-SvetlanaNeural" {
		t.Errorf("docx record voice = %q, want the Russian default", calls[1].Voice)
	}

	for _, name := range []string{
		"batch_1_eng_edge_first.mp3",
		"batch_2_ru_edge_report.mp3",
		"batch_3_eng_edge_third.mp3",
	} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}

	if got := c.ProgressFraction(); got != 1 {
		t.Errorf("ProgressFraction = %v, want 1", got)
	}
	if !sink.contains("Batch processing completed") {
		t.Error("expected the completion diagnostic")
	}
	if c.IsProcessing() {
		t.Error("controller still reports processing after completion")
	}
}

func TestProgressFractionHoldsDuringMidFlightImport(t *testing.T) {
	dir := t.TempDir()
	first := writeFixture(t, dir, "a.txt", "alpha content")
	second := writeFixture(t, dir, "b.txt", "bravo content")

	release := make(chan struct{})
	eng := &gateEngine{inner: mock.New(), gate: release, entered: make(chan struct{})}
	c := New(Config{Engine: eng, Sink: &recordingSink{}, OutputDir: t.TempDir()})
	c.ImportFiles([]string{first})

	c.Start()
	<-eng.entered
	waitFor(t, func() bool { return c.ProgressFraction() > 0 })
	before := c.ProgressFraction()

	// Appending a record grows the denominator; the published fraction
	// must hold rather than move backwards.
	c.ImportFiles([]string{second})
	if got := c.ProgressFraction(); got < before {
		t.Errorf("fraction moved backwards after import: %v -> %v", before, got)
	}

	close(release)
	c.Wait()

	if got := eng.inner.CallCount(); got != 2 {
		t.Errorf("expected both records synthesized, got %d calls", got)
	}
	if got := c.ProgressFraction(); got != 1 {
		t.Errorf("ProgressFraction after completion = %v, want 1", got)
	}
}

func TestBatchFailureDoesNotStall(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFixture(t, dir, "a.txt", "alpha"),
		writeFixture(t, dir, "b.txt", "bravo"),
		writeFixture(t, dir, "c.txt", "charlie"),
	}

	eng := mock.New()
	eng.Script = map[int]error{1: errors.New("backend unavailable")}
	sink := &recordingSink{}
	c, outDir := newTestController(t, eng, sink)
	c.ImportFiles(paths)

	c.Start()
	c.Wait()

	if got := eng.CallCount(); got != 3 {
		t.Fatalf("expected all 3 records attempted, got %d calls", got)
	}
	if !sink.contains("Failed b.txt") {
		t.Error("expected a failure diagnostic for b.txt")
	}
	if !sink.contains("Batch processing completed") {
		t.Error("batch must complete despite the failure")
	}

	if _, err := os.Stat(filepath.Join(outDir, "batch_2_eng_edge_b.mp3")); !os.IsNotExist(err) {
		t.Errorf("failed record must not leave an artifact, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "batch_3_eng_edge_c.mp3")); err != nil {
		t.Errorf("record after the failure must still produce output: %v", err)
	}
}

func TestClearRefusedWhileProcessing(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "doc.txt", "some content")

	// Block synthesis until the test has observed the in-flight state.
	release := make(chan struct{})
	eng := &gateEngine{inner: mock.New(), gate: release, entered: make(chan struct{})}
	sink := &recordingSink{}

	outDir := t.TempDir()
	c := New(Config{Engine: eng, Sink: sink, OutputDir: outDir})
	c.ImportFiles([]string{path})

	c.Start()
	<-eng.entered

	if err := c.Clear(); !errors.Is(err, ErrBatchInFlight) {
		t.Errorf("Clear during processing: got %v, want ErrBatchInFlight", err)
	}
	if c.Len() != 1 {
		t.Error("record list must survive a refused Clear")
	}

	// A second Start while in flight is refused with a diagnostic.
	c.Start()
	if !sink.contains("already in progress") {
		t.Error("expected the already-in-progress diagnostic")
	}

	close(release)
	c.Wait()

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear after completion: %v", err)
	}
	if c.Len() != 0 {
		t.Error("Clear must empty the record list")
	}
}

func TestStartWithNoRecords(t *testing.T) {
	sink := &recordingSink{}
	c, _ := newTestController(t, mock.New(), sink)

	c.Start()

	if !sink.contains("No files to process") {
		t.Error("expected the empty-list diagnostic")
	}
	if c.IsProcessing() {
		t.Error("empty Start must not enter the processing state")
	}
}

// gateEngine blocks Synthesize until its gate channel is closed, so
// tests can observe a batch mid-flight deterministically. entered is
// closed once the first call arrives.
type gateEngine struct {
	inner   *mock.Engine
	gate    <-chan struct{}
	entered chan struct{}
	once    sync.Once
}

func (g *gateEngine) Name() string { return "gate" }

func (g *gateEngine) Synthesize(ctx context.Context, req engines.Request) ([]byte, error) {
	g.once.Do(func() { close(g.entered) })
	<-g.gate
	return g.inner.Synthesize(ctx, req)
}

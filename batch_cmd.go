package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ogi-dev/ogitts/batch"
	"github.com/ogi-dev/ogitts/internal/settings"
	"github.com/ogi-dev/ogitts/tts"
	"github.com/ogi-dev/ogitts/tts/engines/edge"
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE...",
	Short: "Synthesize documents from the command line",
	Long: paragraph(
		fmt.Sprintf("\nProcess .txt and .docx documents %s, one after another: each file becomes an MP3 in the output directory, named after its position and detected language. A file that fails never stops the rest.", keyword("in order")),
	),
	Example: paragraph("ogitts batch chapter1.txt chapter2.docx\nogitts batch -o ~/audio *.txt"),
	Args:    cobra.MinimumNArgs(1),
	RunE:    runBatch,
}

// logSink routes controller diagnostics to the structured logger so
// headless runs are observable.
type logSink struct{}

func (logSink) RecordsChanged() {}

func (logSink) Progress(fraction float64) {
	log.Debug("batch progress", "fraction", fmt.Sprintf("%.2f", fraction))
}

func (logSink) Diagnostic(sev batch.Severity, msg string) {
	switch sev {
	case batch.Error:
		log.Error(msg)
	case batch.Warning:
		log.Warn(msg)
	default:
		log.Info(msg)
	}
}

func runBatch(_ *cobra.Command, args []string) error {
	setupCLILog()
	values := settings.New(settingsPath).Load()

	controller := batch.New(batch.Config{
		Engine:    edge.New(),
		Sink:      logSink{},
		OutputDir: outputDir,
		Settings: tts.VoiceSettings{
			Speed:  settings.GetFloat(values, settings.KeyVoiceSpeed),
			Volume: settings.GetInt(values, settings.KeyVoiceVolume),
			Pitch:  settings.GetInt(values, settings.KeyVoicePitch),
		}.Clamp(),
	})

	controller.ImportFiles(args)
	if controller.Len() == 0 {
		return fmt.Errorf("none of the given files could be imported")
	}

	controller.Start()
	controller.Wait()
	return nil
}

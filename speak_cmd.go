package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ogi-dev/ogitts/internal/importer"
	"github.com/ogi-dev/ogitts/internal/settings"
	"github.com/ogi-dev/ogitts/tts"
	"github.com/ogi-dev/ogitts/tts/engines/edge"
)

var (
	speakLang  string
	speakVoice string
	speakSave  bool
	speakRate  float64

	speakCmd = &cobra.Command{
		Use:   "speak [TEXT]",
		Short: "Synthesize text from the command line",
		Long: paragraph(
			fmt.Sprintf("\n%s a piece of text without the interface: play it through the speakers, or save an MP3 with --save. Reads stdin when the text is - or piped.", keyword("Speak")),
		),
		Example: paragraph("ogitts speak \"hello there\"\ncat notes.txt | ogitts speak --save"),
		Args:    cobra.MaximumNArgs(1),
		RunE:    runSpeak,
	}
)

func runSpeak(_ *cobra.Command, args []string) error {
	setupCLILog()
	text, err := readTextArg(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("there is no text to speak")
	}

	lang := importer.Detect(text)
	if speakLang != "" {
		lang = tts.LanguageFromCode(speakLang)
	}

	voice := tts.DefaultVoice(tts.ModelEdge, lang)
	if speakVoice != "" {
		if !tts.VoiceInSet(tts.ModelEdge, lang, speakVoice) {
			return fmt.Errorf("voice %s does not exist for %s", speakVoice, lang)
		}
		for _, v := range tts.VoicesFor(tts.ModelEdge, lang) {
			if v.ID == speakVoice {
				voice = v
			}
		}
	}

	store := settings.New(settingsPath)
	values := store.Load()
	vs := tts.VoiceSettings{
		Speed:  settings.GetFloat(values, settings.KeyVoiceSpeed),
		Volume: settings.GetInt(values, settings.KeyVoiceVolume),
		Pitch:  settings.GetInt(values, settings.KeyVoicePitch),
	}
	if speakRate != 0 {
		vs.Speed = speakRate
	}

	cfg := tts.WorkerConfig{
		Text:     text,
		Voice:    voice,
		Model:    tts.ModelEdge,
		PlayOnly: !speakSave,
		Settings: vs,
		Engine:   edge.New(),
	}
	if speakSave {
		cfg.OutputPath = filepath.Join(outputDir, tts.OutputFilename(tts.ModelEdge, lang, voice))
	}

	w := tts.NewWorker(cfg)
	w.Start()
	for n := range w.Notifications() {
		switch n.Kind {
		case tts.KindProgress:
			log.Debug(n.Message)
		case tts.KindLog:
			log.Info(n.Message)
		case tts.KindTerminal:
			if n.Err != nil {
				return n.Err
			}
		}
	}

	if speakSave {
		fmt.Println("Wrote", cfg.OutputPath)
	}
	return nil
}

func init() {
	speakCmd.Flags().StringVarP(&speakLang, "lang", "l", "", "text language code (en/ru/uk/ja, default detected)")
	speakCmd.Flags().StringVarP(&speakVoice, "voice", "v", "", "voice identifier, e.g. en-US-AriaNeural")
	speakCmd.Flags().BoolVarP(&speakSave, "save", "s", false, "save an MP3 instead of playing")
	speakCmd.Flags().Float64Var(&speakRate, "speed", 0, "speech speed multiplier (0.5 to 2.0)")
}

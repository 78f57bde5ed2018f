// Package main provides the entry point for the OGI TTS application.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/ogi-dev/ogitts/internal/settings"
	"github.com/ogi-dev/ogitts/ui"
	"github.com/ogi-dev/ogitts/utils"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile   string
	outputDir    string
	settingsPath string
	mouse        bool

	rootCmd = &cobra.Command{
		Use:   "ogitts",
		Short: "Turn text into speech with neural voices",
		Long: paragraph(
			fmt.Sprintf("\nTurn text into %s with Microsoft Edge neural voices: type it, batch whole documents, or pull it out of images first.", keyword("speech")),
		),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return validateOptions()
		},
		RunE: func(*cobra.Command, []string) error {
			return runTUI()
		},
	}
)

func validateOptions() error {
	// grab config values from Viper
	mouse = viper.GetBool("mouse")
	if outputDir == "" {
		outputDir = viper.GetString("output")
	}
	if outputDir == "" {
		outputDir = "."
	}
	outputDir = utils.ExpandPath(outputDir)

	if settingsPath == "" {
		settingsPath = viper.GetString("settings")
	}
	if settingsPath == "" {
		settingsPath = settings.Default().Path()
	}
	settingsPath = utils.ExpandPath(settingsPath)
	return nil
}

func runTUI() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the interface needs a terminal; use %q or %q for scripted runs", "ogitts speak", "ogitts batch")
	}

	// Read environment to get debugging stuff
	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %v", err)
	}

	cfg.SettingsPath = settingsPath
	cfg.OutputDir = outputDir
	cfg.EnableMouse = mouse

	if _, err := ui.NewProgram(cfg).Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

// readTextArg resolves the positional text argument for headless
// commands: "-" (or a pipe with no argument) reads stdin.
func readTextArg(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}

	stat, err := os.Stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("unable to stat stdin: %w", err)
	}
	piped := stat.Mode()&os.ModeCharDevice == 0 || stat.Size() > 0
	if len(args) == 0 && !piped {
		return "", fmt.Errorf("no text given: pass it as an argument or pipe it in")
	}

	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("unable to read stdin: %w", err)
	}
	return string(b), nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "directory for generated audio files")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "settings file (default settings.json next to the executable)")
	rootCmd.Flags().BoolVarP(&mouse, "mouse", "m", false, "enable mouse wheel")
	_ = rootCmd.Flags().MarkHidden("mouse")

	// Config bindings
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("settings", rootCmd.PersistentFlags().Lookup("settings"))
	_ = viper.BindPFlag("mouse", rootCmd.Flags().Lookup("mouse"))

	viper.SetDefault("output", "")
	viper.SetDefault("settings", "")
	viper.SetDefault("mouse", false)

	rootCmd.AddCommand(speakCmd, batchCmd, configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "ogitts")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "ogitts")}, dirs...)
	}

	if c := os.Getenv("OGITTS_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("ogitts")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("ogitts")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "ogitts.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}

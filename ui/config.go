package ui

// Config contains TUI-specific configuration.
type Config struct {
	SettingsPath string
	OutputDir    string
	ScratchDir   string
	EnableMouse  bool

	GlamourStyle    string `env:"GLAMOUR_STYLE"`
	GlamourMaxWidth uint

	// For debugging the UI
	GlamourEnabled bool `env:"OGITTS_ENABLE_GLAMOUR" envDefault:"true"`
}

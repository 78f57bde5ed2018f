// Package settings persists user preferences as a flat JSON mapping in
// a human-editable file next to the application. Loading never fails:
// a missing or corrupt file is treated as empty settings. Saving
// failures are logged, never raised.
package settings

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Keys used in the persisted mapping.
const (
	KeyStyle              = "selected_style"
	KeyUILanguage         = "selected_language"
	KeyVoiceSpeed         = "voice_speed"
	KeyVoiceVolume        = "voice_volume"
	KeyVoicePitch         = "voice_pitch"
	KeyTranslatorService  = "translator_service"
	KeyTranslatorAPIKey   = "translator_api_key"
	KeyOCRService         = "ocr_service"
	KeyOCRAPIKey          = "ocr_api_key"
	KeyOCRAzureEndpoint   = "ocr_azure_endpoint"
)

// defaults is the single source of truth for missing-key values.
// Callers go through the typed getters instead of repeating literals.
var defaults = map[string]any{
	KeyStyle:             "Dark",
	KeyUILanguage:        "English",
	KeyVoiceSpeed:        1.0,
	KeyVoiceVolume:       100.0,
	KeyVoicePitch:        0.0,
	KeyTranslatorService: "Microsoft Translator",
	KeyTranslatorAPIKey:  "",
	KeyOCRService:        "Azure Computer Vision",
	KeyOCRAPIKey:         "",
	KeyOCRAzureEndpoint:  "",
}

// Store reads and writes the settings file. The zero value is not
// usable; construct with New or Default.
type Store struct {
	path string
}

// Default returns a store backed by settings.json next to the running
// executable, falling back to the working directory when the
// executable path cannot be resolved.
func Default() *Store {
	dir := "."
	if exe, err := os.Executable(); err == nil {
		dir = filepath.Dir(exe)
	}
	return New(filepath.Join(dir, "settings.json"))
}

// New returns a store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Load returns the persisted mapping, or an empty mapping when the
// file is missing or does not parse. It never returns an error.
func (s *Store) Load() map[string]any {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("unable to read settings, starting empty", "path", s.path, "err", err)
		}
		return map[string]any{}
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		log.Warn("settings file corrupt, starting empty", "path", s.path, "err", err)
		return map[string]any{}
	}
	if m == nil {
		m = map[string]any{}
	}
	return m
}

// Save serializes the full mapping, indented and with non-ASCII text
// preserved. Failure is logged; callers must not assume the write
// succeeded.
func (s *Store) Save(m map[string]any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		log.Error("unable to serialize settings", "err", err)
		return
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil { //nolint:gosec
		log.Error("unable to save settings", "path", s.path, "err", err)
	}
}

// GetString returns a string value, falling back to the schema default
// for missing keys or mismatched types.
func GetString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	if d, ok := defaults[key].(string); ok {
		return d
	}
	return ""
}

// GetFloat returns a numeric value, falling back to the schema
// default. JSON numbers always decode as float64.
func GetFloat(m map[string]any, key string) float64 {
	if v, ok := m[key].(float64); ok {
		return v
	}
	if d, ok := defaults[key].(float64); ok {
		return d
	}
	return 0
}

// GetInt returns a numeric value truncated to int, falling back to the
// schema default.
func GetInt(m map[string]any, key string) int {
	return int(GetFloat(m, key))
}

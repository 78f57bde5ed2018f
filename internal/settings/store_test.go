package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "settings.json"))
	m := s.Load()
	if m == nil || len(m) != 0 {
		t.Errorf("Load on missing file = %v, want empty map", m)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := New(path).Load()
	if len(m) != 0 {
		t.Errorf("Load on corrupt file = %v, want empty map", m)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "settings.json"))

	in := map[string]any{
		KeyStyle:      "Light",
		KeyUILanguage: "Русский",
		KeyVoiceSpeed: 1.5,
		KeyVoicePitch: -10.0,
	}
	s.Save(in)

	out := s.Load()
	if GetString(out, KeyStyle) != "Light" {
		t.Errorf("style = %q", GetString(out, KeyStyle))
	}
	if GetString(out, KeyUILanguage) != "Русский" {
		t.Errorf("ui language = %q", GetString(out, KeyUILanguage))
	}
	if GetFloat(out, KeyVoiceSpeed) != 1.5 {
		t.Errorf("speed = %v", GetFloat(out, KeyVoiceSpeed))
	}
	if GetInt(out, KeyVoicePitch) != -10 {
		t.Errorf("pitch = %v", GetInt(out, KeyVoicePitch))
	}
}

func TestSavePreservesNonASCII(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s := New(path)
	s.Save(map[string]any{KeyUILanguage: "Українська"})

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "Українська") {
		t.Errorf("non-ASCII text was escaped: %s", raw)
	}
	if !strings.Contains(string(raw), "  ") {
		t.Error("file is not indented")
	}
}

func TestGettersFallBackToDefaults(t *testing.T) {
	empty := map[string]any{}

	if got := GetString(empty, KeyStyle); got != "Dark" {
		t.Errorf("default style = %q", got)
	}
	if got := GetFloat(empty, KeyVoiceSpeed); got != 1.0 {
		t.Errorf("default speed = %v", got)
	}
	if got := GetInt(empty, KeyVoiceVolume); got != 100 {
		t.Errorf("default volume = %v", got)
	}

	// Mismatched types fall back too.
	bad := map[string]any{KeyVoiceSpeed: "fast"}
	if got := GetFloat(bad, KeyVoiceSpeed); got != 1.0 {
		t.Errorf("mismatched type speed = %v", got)
	}
}

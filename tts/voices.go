package tts

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ModelEdge is the only synthesis backend currently wired in. The field
// is modeled as a selectable value so additional backends can be added
// without touching record handling.
const ModelEdge = "Edge TTS"

// Models lists the selectable synthesis backends.
var Models = []string{ModelEdge}

// ModelTag returns the short backend tag embedded in output filenames.
func ModelTag(model string) string {
	if model == ModelEdge {
		return "edge"
	}
	return "unk"
}

// Voice is one synthesis voice: a backend voice identifier plus the
// metadata shown in the UI.
type Voice struct {
	ID       string // backend identifier, e.g. "en-US-AriaNeural"
	Name     string // short display name, e.g. "Aria"
	Language Language
	Gender   string // "Male" or "Female"
}

// Label returns the display label used in voice selectors,
// e.g. "Female (Aria)".
func (v Voice) Label() string {
	return fmt.Sprintf("%s (%s)", v.Gender, v.Name)
}

// Tag returns the lowercase short tag embedded in output filenames.
func (v Voice) Tag() string {
	return strings.ToLower(v.Name)
}

var edgeVoices = map[Language][]Voice{
	English: {
		{ID: "en-US-ZiraNeural", Name: "Zira", Language: English, Gender: "Male"},
		{ID: "en-US-AriaNeural", Name: "Aria", Language: English, Gender: "Female"},
	},
	Russian: {
		{ID: "ru-RU-DmitryNeural", Name: "Dmitry", Language: Russian, Gender: "Male"},
		{ID: "ru-RU-SvetlanaNeural", Name: "Svetlana", Language: Russian, Gender: "Female"},
	},
	Ukrainian: {
		{ID: "uk-UA-OstapNeural", Name: "Ostap", Language: Ukrainian, Gender: "Male"},
		{ID: "uk-UA-PolinaNeural", Name: "Polina", Language: Ukrainian, Gender: "Female"},
	},
	Japanese: {
		{ID: "ja-JP-KeitaNeural", Name: "Keita", Language: Japanese, Gender: "Male"},
		{ID: "ja-JP-NanamiNeural", Name: "Nanami", Language: Japanese, Gender: "Female"},
	},
}

// englishFallback is the set returned for unknown model and language
// combinations: the English voices, female first.
var englishFallback = []Voice{edgeVoices[English][1], edgeVoices[English][0]}

// VoicesFor returns the ordered voice set for a model and language.
// The set is never empty: unknown combinations fall back to the English
// Edge voices.
func VoicesFor(model string, lang Language) []Voice {
	if model == ModelEdge {
		if set, ok := edgeVoices[lang]; ok {
			return set
		}
	}
	return englishFallback
}

// DefaultVoice returns the import-time default for a language: the
// first female voice in its set, or the first voice if the set has no
// female entry.
func DefaultVoice(model string, lang Language) Voice {
	set := VoicesFor(model, lang)
	for _, v := range set {
		if v.Gender == "Female" {
			return v
		}
	}
	return set[0]
}

// FirstVoice returns the first entry of a voice set. Used when a model
// or language change forces the selected voice to be re-derived.
func FirstVoice(model string, lang Language) Voice {
	return VoicesFor(model, lang)[0]
}

// VoiceInSet reports whether id belongs to the voice set of the given
// model and language.
func VoiceInSet(model string, lang Language, id string) bool {
	for _, v := range VoicesFor(model, lang) {
		if v.ID == id {
			return true
		}
	}
	return false
}

// OutputFilename returns the artifact name for a single-file synthesis:
// "<langcode>_output_<modeltag><voicetag>.mp3".
func OutputFilename(model string, lang Language, voice Voice) string {
	return fmt.Sprintf("%s_output_%s%s.mp3", lang.FileCode(), ModelTag(model), voice.Tag())
}

// BatchFilename returns the artifact name for batch position pos
// (1-based): "batch_<pos>_<langcode>_<modeltag>_<stem>.mp3". The
// embedded position guarantees uniqueness across a batch.
func BatchFilename(pos int, model string, lang Language, sourceName string) string {
	stem := strings.TrimSuffix(sourceName, filepath.Ext(sourceName))
	return fmt.Sprintf("batch_%d_%s_%s_%s.mp3", pos, lang.FileCode(), ModelTag(model), stem)
}

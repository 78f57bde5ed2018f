// Package tts provides the speech-synthesis core for OGI TTS: the
// language and voice tables, voice settings, and the background worker
// that turns one text payload into one audio artifact.
package tts

// Language identifies one of the synthesis languages the application
// supports. The zero value is English, which is also the fallback for
// anything the detector cannot classify.
type Language int

const (
	English Language = iota
	Russian
	Ukrainian
	Japanese
)

// Languages lists all supported languages in display order.
var Languages = []Language{English, Russian, Ukrainian, Japanese}

// LanguageFromCode maps an ISO 639-1 detector code to a Language.
// Unrecognized codes map to English.
func LanguageFromCode(code string) Language {
	switch code {
	case "ru":
		return Russian
	case "en":
		return English
	case "uk":
		return Ukrainian
	case "ja":
		return Japanese
	default:
		return English
	}
}

// LanguageFromName maps a display name back to a Language. Unknown
// names map to English.
func LanguageFromName(name string) Language {
	switch name {
	case "Russian":
		return Russian
	case "Ukrainian":
		return Ukrainian
	case "Japanese":
		return Japanese
	default:
		return English
	}
}

// String returns the display name used in the UI and in diagnostics.
func (l Language) String() string {
	switch l {
	case Russian:
		return "Russian"
	case Ukrainian:
		return "Ukrainian"
	case Japanese:
		return "Japanese"
	default:
		return "English"
	}
}

// Code returns the ISO 639-1 code, used as the translation target.
func (l Language) Code() string {
	switch l {
	case Russian:
		return "ru"
	case Ukrainian:
		return "uk"
	case Japanese:
		return "ja"
	default:
		return "en"
	}
}

// FileCode returns the short tag embedded in output filenames.
func (l Language) FileCode() string {
	switch l {
	case Russian:
		return "ru"
	case English:
		return "eng"
	case Ukrainian:
		return "ua"
	case Japanese:
		return "jp"
	default:
		return "unk"
	}
}

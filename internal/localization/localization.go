// Package localization holds the UI string tables. Three display
// languages are supported; anything else resolves to English.
package localization

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Display names as stored in settings and shown in the selector.
const (
	NameEnglish   = "English"
	NameRussian   = "Русский"
	NameUkrainian = "Українська"
)

// Names lists the selectable UI languages in display order.
var Names = []string{NameEnglish, NameRussian, NameUkrainian}

// Strings is one UI language's string table.
type Strings struct {
	Name string // display name, also the settings value

	TabGeneral  string
	TabBatch    string
	TabImage    string
	TabSettings string
	TabLog      string
	TabHelp     string

	PlayAudio    string
	SaveAudio    string
	Translate    string
	CopyText     string
	PasteText    string
	ImportFiles  string
	StartBatch   string
	ClearBatch   string
	ExtractText  string
	Voice        string
	Model        string
	TextLanguage string
	Speed        string
	Volume       string
	Pitch        string

	StatusReady      string
	StatusWorking    string
	StatusDone       string
	NothingToSpeak   string
	CopiedToClipbrd  string
	SettingsSaved    string
	SettingsReloaded string
}

var english = Strings{
	Name: NameEnglish,

	TabGeneral:  "General",
	TabBatch:    "Batch",
	TabImage:    "Image to Text",
	TabSettings: "Settings",
	TabLog:      "Log",
	TabHelp:     "Help",

	PlayAudio:    "Play audio",
	SaveAudio:    "Save audio",
	Translate:    "Translate",
	CopyText:     "Copy text",
	PasteText:    "Paste text",
	ImportFiles:  "Import files",
	StartBatch:   "Start processing",
	ClearBatch:   "Clear list",
	ExtractText:  "Extract text",
	Voice:        "Voice",
	Model:        "Model",
	TextLanguage: "Text language",
	Speed:        "Speed",
	Volume:       "Volume",
	Pitch:        "Pitch",

	StatusReady:      "Ready",
	StatusWorking:    "Working",
	StatusDone:       "Done",
	NothingToSpeak:   "There is no text to speak",
	CopiedToClipbrd:  "Copied to clipboard",
	SettingsSaved:    "Settings saved",
	SettingsReloaded: "Settings reloaded from disk",
}

var russian = Strings{
	Name: NameRussian,

	TabGeneral:  "Главная",
	TabBatch:    "Пакетная обработка",
	TabImage:    "Изображение в текст",
	TabSettings: "Настройки",
	TabLog:      "Журнал",
	TabHelp:     "Справка",

	PlayAudio:    "Воспроизвести",
	SaveAudio:    "Сохранить аудио",
	Translate:    "Перевести",
	CopyText:     "Копировать текст",
	PasteText:    "Вставить текст",
	ImportFiles:  "Импорт файлов",
	StartBatch:   "Начать обработку",
	ClearBatch:   "Очистить список",
	ExtractText:  "Распознать текст",
	Voice:        "Голос",
	Model:        "Модель",
	TextLanguage: "Язык текста",
	Speed:        "Скорость",
	Volume:       "Громкость",
	Pitch:        "Высота тона",

	StatusReady:      "Готово",
	StatusWorking:    "Обработка",
	StatusDone:       "Завершено",
	NothingToSpeak:   "Нет текста для озвучивания",
	CopiedToClipbrd:  "Скопировано в буфер обмена",
	SettingsSaved:    "Настройки сохранены",
	SettingsReloaded: "Настройки перечитаны с диска",
}

var ukrainian = Strings{
	Name: NameUkrainian,

	TabGeneral:  "Головна",
	TabBatch:    "Пакетна обробка",
	TabImage:    "Зображення в текст",
	TabSettings: "Налаштування",
	TabLog:      "Журнал",
	TabHelp:     "Довідка",

	PlayAudio:    "Відтворити",
	SaveAudio:    "Зберегти аудіо",
	Translate:    "Перекласти",
	CopyText:     "Копіювати текст",
	PasteText:    "Вставити текст",
	ImportFiles:  "Імпорт файлів",
	StartBatch:   "Почати обробку",
	ClearBatch:   "Очистити список",
	ExtractText:  "Розпізнати текст",
	Voice:        "Голос",
	Model:        "Модель",
	TextLanguage: "Мова тексту",
	Speed:        "Швидкість",
	Volume:       "Гучність",
	Pitch:        "Висота тону",

	StatusReady:      "Готово",
	StatusWorking:    "Обробка",
	StatusDone:       "Завершено",
	NothingToSpeak:   "Немає тексту для озвучення",
	CopiedToClipbrd:  "Скопійовано в буфер обміну",
	SettingsSaved:    "Налаштування збережено",
	SettingsReloaded: "Налаштування перечитано з диска",
}

var tables = map[string]Strings{
	NameEnglish:   english,
	NameRussian:   russian,
	NameUkrainian: ukrainian,
}

// Pick returns the string table for a display name, defaulting to
// English.
func Pick(name string) Strings {
	if s, ok := tables[name]; ok {
		return s
	}
	return english
}

// matcher resolves environment locales against the supported set. Order
// matters: the first tag is the fallback.
var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Russian,
	language.Ukrainian,
})

// FromEnvironment picks the display language matching the process
// locale (LANGUAGE, LC_ALL, LANG). Used on first run, before the user
// has persisted a preference.
func FromEnvironment() Strings {
	for _, key := range []string{"LANGUAGE", "LC_ALL", "LANG"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		// "uk_UA.UTF-8" -> "uk_UA"
		if i := strings.IndexByte(v, '.'); i >= 0 {
			v = v[:i]
		}
		tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
		if err != nil {
			continue
		}
		_, idx, conf := matcher.Match(tag)
		if conf == language.No {
			continue
		}
		switch idx {
		case 1:
			return russian
		case 2:
			return ukrainian
		default:
			return english
		}
	}
	return english
}

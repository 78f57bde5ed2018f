// Package importer reads text and word-processor documents into plain
// UTF-8 strings and detects their natural language.
package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/charmbracelet/log"
	docx "github.com/fumiama/go-docx"

	"github.com/ogi-dev/ogitts/tts"
)

var (
	// ErrUnsupportedFormat is returned for extensions other than .txt
	// and .docx.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmptyDocument is returned when a file decodes to nothing but
	// whitespace.
	ErrEmptyDocument = errors.New("document is empty")
)

// Import reads path into a string and detects its language. Detection
// failure is not an error: the language falls back to English.
func Import(path string) (string, tts.Language, error) {
	var content string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		content, err = readText(path)
	case ".docx":
		content, err = readDocx(path)
	default:
		return "", tts.English, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return "", tts.English, err
	}

	if strings.TrimSpace(content) == "" {
		return "", tts.English, fmt.Errorf("%w: %s", ErrEmptyDocument, filepath.Base(path))
	}

	return content, Detect(content), nil
}

// Detect returns the detected language of text, defaulting to English
// when the detector is unreliable or reports a language outside the
// supported set.
func Detect(text string) tts.Language {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		log.Debug("language detection unreliable, defaulting to English")
		return tts.English
	}
	code := info.Lang.Iso6391()
	lang := tts.LanguageFromCode(code)
	log.Debug("language detected", "code", code, "language", lang)
	return lang
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return "", fmt.Errorf("unable to read %s: %w", filepath.Base(path), err)
	}
	return string(data), nil
}

// readDocx extracts the document body as one paragraph per line.
func readDocx(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return "", fmt.Errorf("unable to open %s: %w", filepath.Base(path), err)
	}
	defer f.Close() //nolint:errcheck

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("unable to stat %s: %w", filepath.Base(path), err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("unable to parse %s: %w", filepath.Base(path), err)
	}

	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		if p, ok := item.(*docx.Paragraph); ok {
			paragraphs = append(paragraphs, p.String())
		}
	}
	return strings.Join(paragraphs, "\n"), nil
}

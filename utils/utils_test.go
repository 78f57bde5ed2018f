package utils

import (
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func TestExpandPath(t *testing.T) {
	homedir.DisableCache = true
	defer func() { homedir.DisableCache = false }()
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Run("tilde", func(t *testing.T) {
		got := ExpandPath("~/docs/notes.txt")
		want := filepath.Join(home, "docs", "notes.txt")
		if got != want {
			t.Errorf("ExpandPath(~/docs/notes.txt) = %q, want %q", got, want)
		}
	})

	t.Run("tilde glob", func(t *testing.T) {
		got := ExpandPath("~/docs/*.txt")
		want := filepath.Join(home, "docs", "*.txt")
		if got != want {
			t.Errorf("ExpandPath(~/docs/*.txt) = %q, want %q", got, want)
		}
	})

	t.Run("relative becomes absolute", func(t *testing.T) {
		got := ExpandPath("docs/notes.txt")
		if !filepath.IsAbs(got) {
			t.Errorf("ExpandPath(docs/notes.txt) = %q, want an absolute path", got)
		}
	})

	t.Run("empty stays empty", func(t *testing.T) {
		if got := ExpandPath(""); got != "" {
			t.Errorf("ExpandPath(\"\") = %q", got)
		}
	})
}

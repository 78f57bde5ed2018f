// Package utils implements helpers shared by the commands and the UI.
package utils

import (
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// ExpandPath expands ~ and environment-style relative paths into an
// absolute path. Input that cannot be resolved is returned unchanged.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~") {
		expanded, err := homedir.Expand(path)
		if err == nil {
			path = expanded
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

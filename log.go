package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// setupLog discards logs by default, since they would tear up the
// interface. Set OGITTS_LOGFILE to capture them, and OGITTS_DEBUG for
// debug level.
func setupLog() (func() error, error) {
	log.SetOutput(io.Discard)
	log.SetReportTimestamp(true)

	if os.Getenv("OGITTS_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}

	logFile := os.Getenv("OGITTS_LOGFILE")
	if logFile == "" {
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("error setting up logging: %w", err)
	}
	log.SetOutput(f)
	return f.Close, nil
}

// setupCLILog redirects logs to stderr for the headless subcommands,
// where there is no interface to protect.
func setupCLILog() {
	if os.Getenv("OGITTS_LOGFILE") == "" {
		log.SetOutput(os.Stderr)
	}
}

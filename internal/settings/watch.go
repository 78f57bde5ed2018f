package settings

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watch reports external edits to the settings file. The file is
// documented as human-editable, so the UI reloads when it changes on
// disk. Events are delivered on the returned channel until ctx is
// cancelled; the channel is closed on shutdown.
func (s *Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("unable to create settings watcher: %w", err)
	}

	// Watch the directory rather than the file: editors replace the
	// file on save, which would drop a file-level watch.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close() //nolint:errcheck
		return nil, fmt.Errorf("unable to watch settings directory: %w", err)
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		defer watcher.Close() //nolint:errcheck
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(s.path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Debug("settings watcher error", "err", err)
			}
		}
	}()
	return changes, nil
}

package store

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes made to the store's records by other processes.
type Watcher struct {
	w     *fsnotify.Watcher
	store *Store
}

// Watch starts watching the store directory, creating it if needed.
func (s *Store) Watch() (*Watcher, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(s.dir); err != nil {
		_ = w.Close()
		return nil, err
	}
	s.log.Debug("Watching store", "dir", s.dir)
	return &Watcher{w: w, store: s}, nil
}

// Next blocks until a record changes and returns its key. It returns the
// context error when ctx ends and os.ErrClosed once the watcher is closed.
func (w *Watcher) Next(ctx context.Context) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case event, ok := <-w.w.Events:
			if !ok {
				return "", os.ErrClosed
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
				continue
			}
			key := strings.TrimSuffix(filepath.Base(event.Name), ".json")
			if !slices.Contains(Keys(), key) {
				continue
			}
			w.store.log.Debug("Store record changed", "key", key, "op", event.Op)
			return key, nil
		case err, ok := <-w.w.Errors:
			if !ok {
				return "", os.ErrClosed
			}
			w.store.log.Debug("Store watch error", "dir", w.store.dir, "err", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.w.Close()
}

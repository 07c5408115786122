// Package store persists custom styles and favorites as JSON records in a
// per-user data directory, one file per key.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"voxtone/internal/catalog"
)

// Record keys.
const (
	KeyCustomStyles   = "customTtsStyles"
	KeyFavoriteVoices = "ttsFavoriteVoices"
	KeyFavoriteStyles = "ttsFavoriteStyles"
)

// Keys lists every record the store manages.
func Keys() []string {
	return []string{KeyCustomStyles, KeyFavoriteVoices, KeyFavoriteStyles}
}

// State is everything loaded at startup.
type State struct {
	CustomStyles   []catalog.Style
	FavoriteVoices []string
	FavoriteStyles []string
}

// Store is a small file-backed key/value store. Safe for concurrent use.
type Store struct {
	mu  sync.Mutex
	dir string
	log *log.Logger
}

// New returns a store rooted at dir. The directory is created on first write.
func New(dir string, logger *log.Logger) *Store {
	return &Store{dir: dir, log: logger}
}

// Dir returns the directory holding the records.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file backing key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load reads every record. Missing or malformed records yield empty values and
// are only logged.
func (s *Store) Load() State {
	var st State
	s.loadInto(KeyCustomStyles, &st.CustomStyles)
	s.loadInto(KeyFavoriteVoices, &st.FavoriteVoices)
	s.loadInto(KeyFavoriteStyles, &st.FavoriteStyles)
	if st.CustomStyles == nil {
		st.CustomStyles = []catalog.Style{}
	}
	if st.FavoriteVoices == nil {
		st.FavoriteVoices = []string{}
	}
	if st.FavoriteStyles == nil {
		st.FavoriteStyles = []string{}
	}
	return st
}

func (s *Store) loadInto(key string, dst any) {
	if err := s.Get(key, dst); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("Failed to load stored record", "key", key, "err", err)
		}
	}
}

// Get decodes the record stored under key into dst. dst is left untouched on
// error.
func (s *Store) Get(key string, dst any) error {
	s.mu.Lock()
	data, err := os.ReadFile(s.Path(key))
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(data)) == "" {
		return fmt.Errorf("record %s is empty", key)
	}

	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("decode %s: destination must be a non-nil pointer", key)
	}
	scratch := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(data, scratch.Interface()); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	rv.Elem().Set(scratch.Elem())
	return nil
}

// Put encodes value and atomically replaces the record stored under key.
func (s *Store) Put(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.Path(key)); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

// Save is Put without an error result: failures are logged and dropped.
func (s *Store) Save(key string, value any) {
	if err := s.Put(key, value); err != nil {
		s.log.Error("Failed to save record", "key", key, "err", err)
		return
	}
	s.log.Debug("Saved record", "key", key, "path", s.Path(key))
}

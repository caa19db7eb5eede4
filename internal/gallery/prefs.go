package gallery

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Local preference keys, shared with the original web client so an
// existing prefs export stays readable.
const (
	FavoritesKey = "english-playlist-favorites"
	DarkModeKey  = "english-playlist-dark-mode"
)

// KV is the small persistence port behind locally stored preferences.
// Implementations are best-effort: callers log failures and carry on.
type KV interface {
	// Get returns the stored value for key, or (nil, nil) when absent.
	Get(key string) ([]byte, error)
	// Set stores value under key.
	Set(key string, value []byte) error
	// Clear removes every stored key.
	Clear() error
}

// FileKV persists keys as one JSON object in a single file, written
// atomically via a temp file and rename.
type FileKV struct {
	path string
}

// NewFileKV creates a file-backed KV store at path.
func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

// Get returns the stored value for key. A missing file or key is
// reported as (nil, nil).
func (f *FileKV) Get(key string) ([]byte, error) {
	values, err := f.load()
	if err != nil {
		return nil, err
	}
	value, ok := values[key]
	if !ok {
		return nil, nil
	}
	return value, nil
}

// Set stores value under key.
func (f *FileKV) Set(key string, value []byte) error {
	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = json.RawMessage(value)
	return f.save(values)
}

// Clear removes the backing file entirely.
func (f *FileKV) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove prefs: %w", err)
	}
	return nil
}

func (f *FileKV) load() (map[string]json.RawMessage, error) {
	values := map[string]json.RawMessage{}
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("failed to read prefs: %w", err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to decode prefs: %w", err)
	}
	return values, nil
}

func (f *FileKV) save(values map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o750); err != nil {
		return fmt.Errorf("failed to create prefs directory: %w", err)
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode prefs: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write prefs: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace prefs: %w", err)
	}
	return nil
}

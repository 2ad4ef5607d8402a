package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Store persists a theme preference between runs.
type Store interface {
	// Load returns the saved mode. The boolean is false when nothing valid is saved.
	Load() (Mode, bool, error)
	Save(mode Mode) error
}

type preferences struct {
	Theme string `yaml:"theme"`
}

// FileStore keeps the preference in a small YAML file.
type FileStore struct {
	Path string
}

// NewFileStore returns a store at the default location under the user's
// config directory.
func NewFileStore() (*FileStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("locate config dir: %w", err)
	}
	return &FileStore{Path: filepath.Join(dir, "saynope", "preferences.yaml")}, nil
}

// Load reads the saved mode. A missing file is not an error.
func (s *FileStore) Load() (Mode, bool, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read preferences: %w", err)
	}

	var prefs preferences
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return "", false, fmt.Errorf("decode preferences: %w", err)
	}

	mode, ok := ParseMode(prefs.Theme)
	return mode, ok, nil
}

// Save writes the mode, creating the parent directory when needed.
func (s *FileStore) Save(mode Mode) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}

	data, err := yaml.Marshal(preferences{Theme: mode.String()})
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

// Current loads the saved mode from store and falls back to the host preference.
func Current(store Store, prefersDark bool) (Mode, error) {
	mode, ok, err := store.Load()
	if err != nil || !ok {
		return Resolve("", prefersDark), err
	}
	return mode, nil
}

// ToggleAndSave flips the current mode and persists the result.
func ToggleAndSave(store Store, current Mode) (Mode, error) {
	next := current.Toggle()
	if err := store.Save(next); err != nil {
		return current, err
	}
	return next, nil
}

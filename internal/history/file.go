package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	// AppName is the application name used for data directories
	AppName = "gitterm"

	// DatabaseFile is the default SQLite database name
	DatabaseFile = "history.db"
)

// DefaultDir returns the data directory, honouring XDG_DATA_HOME
func DefaultDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine data directory: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, AppName), nil
}

// FileStore keeps each key in its own JSON file under a directory
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates a store rooted at dir. The directory is created on
// the first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the directory the store writes to
func (s *FileStore) Dir() string {
	return s.dir
}

// path maps a key to its file, rejecting keys that would escape the directory
func (s *FileStore) path(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid history key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Load reads the JSON file for key into dst
func (s *FileStore) Load(key string, dst any) (bool, error) {
	path, err := s.path(key)
	if err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return true, nil
}

// Save replaces the JSON file for key
func (s *FileStore) Save(key string, value any) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure directory exists
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	// Replace via rename so readers never see a partial value
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Close is a no-op for file stores
func (s *FileStore) Close() error {
	return nil
}

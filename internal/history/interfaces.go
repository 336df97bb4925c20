// Package history provides persistence for terminal sessions: the transcript
// and the command history are stored as whole JSON values under fixed keys and
// replaced on every save.
package history

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Keys under which a terminal session stores its state
const (
	KeyTranscript = "terminal-history"
	KeyCommands   = "command-history"
)

// Backend names accepted by Open
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Errors
var (
	ErrUnknownBackend = errors.New("unknown history backend")
	ErrEmptyKey       = errors.New("history key is empty")
	ErrClosed         = errors.New("history store is closed")
)

// Store defines the interface for a keyed, whole-value state store.
// This interface enables dependency injection and easier testing.
type Store interface {
	// Load decodes the value stored under key into dst.
	// It reports false when nothing is stored under key.
	Load(key string, dst any) (bool, error)

	// Save replaces the value stored under key
	Save(key string, value any) error

	// Close releases any underlying resources
	Close() error
}

// Ensure concrete types implement the interface
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*FileStore)(nil)
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*RetryStore)(nil)
)

// Open returns the store for backend. path is a directory for the file
// backend and a database file for sqlite; empty means the default location.
// SQLite stores retry while another process holds the database lock.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case "", BackendFile:
		if path == "" {
			dir, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			path = dir
		}
		return NewFileStore(path), nil
	case BackendSQLite:
		if path == "" {
			dir, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, DatabaseFile)
		}
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return NewRetryStore(s), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

package history

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore keeps JSON-encoded values in memory. Values go through the
// same encoding as the persistent stores, so callers never share slices
// with the store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	saves  int
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// Load decodes the value under key into dst
func (s *MemoryStore) Load(key string, dst any) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}

	s.mu.RLock()
	data, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// Save replaces the value under key
func (s *MemoryStore) Save(key string, value any) error {
	if key == "" {
		return ErrEmptyKey
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = data
	s.saves++
	return nil
}

// Saves returns how many times Save succeeded
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Close is a no-op for memory stores
func (s *MemoryStore) Close() error {
	return nil
}

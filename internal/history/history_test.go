package history

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// storeFactories builds each backend rooted in a fresh temp dir
func storeFactories() map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		BackendMemory: func(t *testing.T) Store { return NewMemoryStore() },
		BackendFile:   func(t *testing.T) Store { return NewFileStore(t.TempDir()) },
		BackendSQLite: func(t *testing.T) Store {
			s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", DatabaseFile))
			require.NoError(t, err)
			return s
		},
	}
}

// =============================================================================
// Shared Store Contract Tests
// =============================================================================

func TestStore_LoadMissing(t *testing.T) {
	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			defer s.Close()

			var got []string
			found, err := s.Load(KeyCommands, &got)
			require.NoError(t, err)
			assert.False(t, found)
			assert.Nil(t, got)
		})
	}
}

func TestStore_SaveReplacesWholeValue(t *testing.T) {
	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			defer s.Close()

			require.NoError(t, s.Save(KeyCommands, []string{"git init", "git add ."}))
			require.NoError(t, s.Save(KeyCommands, []string{"git status"}))

			var got []string
			found, err := s.Load(KeyCommands, &got)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, []string{"git status"}, got)
		})
	}
}

func TestStore_KeysAreIndependent(t *testing.T) {
	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			defer s.Close()

			require.NoError(t, s.Save(KeyTranscript, []record{{ID: "1", Content: "$ git log"}}))
			require.NoError(t, s.Save(KeyCommands, []string{"git log"}))

			var entries []record
			found, err := s.Load(KeyTranscript, &entries)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, []record{{ID: "1", Content: "$ git log"}}, entries)
		})
	}
}

func TestStore_EmptyKey(t *testing.T) {
	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			defer s.Close()

			assert.ErrorIs(t, s.Save("", "x"), ErrEmptyKey)
			_, err := s.Load("", new(string))
			assert.ErrorIs(t, err, ErrEmptyKey)
		})
	}
}

// =============================================================================
// FileStore Tests
// =============================================================================

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	require.NoError(t, NewFileStore(dir).Save(KeyCommands, []string{"git push"}))

	path := filepath.Join(dir, KeyCommands+".json")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	var got []string
	found, err := NewFileStore(dir).Load(KeyCommands, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"git push"}, got)
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	s := NewFileStore(t.TempDir())

	assert.Error(t, s.Save("../escape", "x"))
	assert.Error(t, s.Save(`a\b`, "x"))
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyCommands+".json"), []byte("{not json"), 0600))

	var got []string
	_, err := NewFileStore(dir).Load(KeyCommands, &got)
	assert.Error(t, err)
}

// =============================================================================
// SQLiteStore Tests
// =============================================================================

func TestSQLiteStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), DatabaseFile)

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(KeyCommands, []string{"git fetch"}))
	require.NoError(t, s.Close())

	s2, err := OpenSQLite(path)
	require.NoError(t, err)
	defer s2.Close()

	var got []string
	found, err := s2.Load(KeyCommands, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"git fetch"}, got)
}

func TestSQLiteStore_Closed(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), DatabaseFile))
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Save(KeyCommands, []string{}), ErrClosed)
	_, err = s.Load(KeyCommands, new([]string))
	assert.ErrorIs(t, err, ErrClosed)
}

// =============================================================================
// Open Tests
// =============================================================================

func TestOpen(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)

	s, err := Open(BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(BackendFile, "")
	require.NoError(t, err)
	require.IsType(t, &FileStore{}, s)
	assert.Equal(t, filepath.Join(tmpDir, AppName), s.(*FileStore).Dir())

	s, err = Open(BackendSQLite, "")
	require.NoError(t, err)
	require.IsType(t, &RetryStore{}, s)
	inner := s.(*RetryStore).Unwrap()
	require.IsType(t, &SQLiteStore{}, inner)
	assert.Equal(t, filepath.Join(tmpDir, AppName, DatabaseFile), inner.(*SQLiteStore).Path())
	require.NoError(t, s.Close())

	_, err = Open("redis", "")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestMemoryStore_Saves(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Save(KeyCommands, []string{"a"}))
	require.NoError(t, s.Save(KeyTranscript, []string{"b"}))
	assert.Equal(t, 2, s.Saves())
}

// =============================================================================
// Retry Tests
// =============================================================================

var errTransient = errors.New("transient")

// flakyStore fails the first failures calls with err
type flakyStore struct {
	*MemoryStore
	failures int
	err      error
	calls    int
}

func (f *flakyStore) Save(key string, value any) error {
	f.calls++
	if f.calls <= f.failures {
		return f.err
	}
	return f.MemoryStore.Save(key, value)
}

func (f *flakyStore) Load(key string, dst any) (bool, error) {
	f.calls++
	if f.calls <= f.failures {
		return false, f.err
	}
	return f.MemoryStore.Load(key, dst)
}

func newRetryTest(failures int, err error) (*flakyStore, *RetryStore, *[]time.Duration) {
	inner := &flakyStore{MemoryStore: NewMemoryStore(), failures: failures, err: err}
	var waits []time.Duration
	r := NewRetryStore(inner,
		WithRetryable(func(e error) bool { return errors.Is(e, errTransient) }),
		WithSleep(func(d time.Duration) { waits = append(waits, d) }))
	return inner, r, &waits
}

func TestRetryStore_RecoversFromTransientErrors(t *testing.T) {
	inner, r, waits := newRetryTest(2, errTransient)

	require.NoError(t, r.Save(KeyCommands, []string{"git log"}))
	assert.Equal(t, 3, inner.calls)
	assert.Equal(t, []time.Duration{InitialBackoff, 2 * InitialBackoff}, *waits)

	var got []string
	ok, err := r.Load(KeyCommands, &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"git log"}, got)
}

func TestRetryStore_GivesUp(t *testing.T) {
	inner, r, waits := newRetryTest(100, errTransient)

	err := r.Save(KeyCommands, []string{"git log"})
	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, MaxRetryAttempts, inner.calls)
	assert.Len(t, *waits, MaxRetryAttempts-1)
}

func TestRetryStore_PermanentErrorNotRetried(t *testing.T) {
	permanent := errors.New("disk full")
	inner, r, waits := newRetryTest(100, permanent)

	_, err := r.Load(KeyCommands, new([]string))
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, inner.calls)
	assert.Empty(t, *waits)
}

func TestCalculateBackoff(t *testing.T) {
	assert.Equal(t, InitialBackoff, CalculateBackoff(0))
	assert.Equal(t, 2*InitialBackoff, CalculateBackoff(1))
	assert.Equal(t, MaxBackoff, CalculateBackoff(20))
}

func TestIsBusy(t *testing.T) {
	assert.False(t, IsBusy(nil))
	assert.False(t, IsBusy(errors.New("database is locked")))
}

package history

import (
	"errors"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Retry configuration constants
const (
	MaxRetryAttempts  = 5
	InitialBackoff    = 20 * time.Millisecond
	MaxBackoff        = 500 * time.Millisecond
	BackoffMultiplier = 2.0
)

// CalculateBackoff returns the backoff duration for a given attempt number
func CalculateBackoff(attempt int) time.Duration {
	backoff := InitialBackoff
	for i := 0; i < attempt; i++ {
		backoff = time.Duration(float64(backoff) * BackoffMultiplier)
		if backoff > MaxBackoff {
			backoff = MaxBackoff
			break
		}
	}
	return backoff
}

// IsBusy reports whether err is SQLite refusing access because another
// connection holds the lock. Two terminals sharing a database hit this.
func IsBusy(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}

// RetryStore retries the operations of a wrapped store while they fail
// with a transient error, backing off between attempts.
type RetryStore struct {
	store     Store
	retryable func(error) bool
	sleep     func(time.Duration)
	attempts  int
}

// RetryOption configures a RetryStore
type RetryOption func(*RetryStore)

// WithRetryable replaces the check deciding which errors are transient
func WithRetryable(fn func(error) bool) RetryOption {
	return func(r *RetryStore) { r.retryable = fn }
}

// WithSleep replaces the function waiting between attempts
func WithSleep(fn func(time.Duration)) RetryOption {
	return func(r *RetryStore) { r.sleep = fn }
}

// NewRetryStore wraps store, retrying busy SQLite errors by default
func NewRetryStore(store Store, opts ...RetryOption) *RetryStore {
	r := &RetryStore{
		store:     store,
		retryable: IsBusy,
		sleep:     time.Sleep,
		attempts:  MaxRetryAttempts,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Unwrap returns the wrapped store
func (r *RetryStore) Unwrap() Store {
	return r.store
}

// Load decodes the value under key, retrying transient failures
func (r *RetryStore) Load(key string, dst any) (bool, error) {
	return withRetry(r, func() (bool, error) {
		return r.store.Load(key, dst)
	})
}

// Save replaces the value under key, retrying transient failures
func (r *RetryStore) Save(key string, value any) error {
	_, err := withRetry(r, func() (struct{}, error) {
		return struct{}{}, r.store.Save(key, value)
	})
	return err
}

// Close closes the wrapped store
func (r *RetryStore) Close() error {
	return r.store.Close()
}

func withRetry[T any](r *RetryStore, fn func() (T, error)) (T, error) {
	var result T
	var err error
	for attempt := 0; attempt < r.attempts; attempt++ {
		if attempt > 0 {
			r.sleep(CalculateBackoff(attempt - 1))
		}
		result, err = fn()
		if err == nil || !r.retryable(err) {
			return result, err
		}
	}
	return result, err
}

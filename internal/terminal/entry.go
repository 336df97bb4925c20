package terminal

import (
	"time"

	"github.com/google/uuid"
)

// Kind classifies a transcript entry for display
type Kind string

const (
	KindCommand Kind = "command"
	KindOutput  Kind = "output"
	KindError   Kind = "error"
)

// Entry is one line of the terminal transcript. Entries are never modified
// after they are appended.
type Entry struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"timestamp"`
}

// newEntryID returns a time-ordered UUID. Version 7 UUIDs from google/uuid
// are monotonic within a process, so IDs never collide inside a session.
func newEntryID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

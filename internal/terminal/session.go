// Package terminal implements the interactive terminal session: the
// transcript, the recall history and cursor, the live input buffer and its
// suggestions, and the command that was resolved last.
//
// A Session is driven by one front end at a time and is not safe for
// concurrent use. No operation fails: unknown commands and bad input become
// error entries in the transcript.
package terminal

import (
	"strings"
	"time"

	"github.com/quocvuong92/gitterm/internal/catalog"
	"github.com/quocvuong92/gitterm/internal/history"
	"github.com/quocvuong92/gitterm/internal/logging"
	"github.com/quocvuong92/gitterm/internal/resolver"
)

// NotNavigating is the cursor value outside of history recall
const NotNavigating = -1

// Direction moves the recall cursor
type Direction int

const (
	// Previous moves toward older entries
	Previous Direction = iota
	// Next moves toward newer entries and finally back to an empty line
	Next
)

// Persistence receives the whole transcript and history after every change
// and supplies them when a session starts.
type Persistence interface {
	Load(key string, dst any) (bool, error)
	Save(key string, value any) error
}

// Option configures a Session
type Option func(*Session)

// WithStore sets the persistence collaborator
func WithStore(store Persistence) Option {
	return func(s *Session) { s.store = store }
}

// WithLogger sets the logger used for persistence failures and tracing
func WithLogger(logger *logging.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithClock overrides the entry timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithPrompt sets the marker echoed before submitted commands
func WithPrompt(prompt string) Option {
	return func(s *Session) { s.prompt = prompt }
}

// WithSuggestionLimit caps the suggestion list
func WithSuggestionLimit(limit int) Option {
	return func(s *Session) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// Session holds the state for one interactive terminal
type Session struct {
	resolver *resolver.Resolver
	store    Persistence
	logger   *logging.Logger
	now      func() time.Time
	prompt   string
	limit    int

	entries     []Entry
	history     []string
	cursor      int
	current     *catalog.CommandSpec
	input       string
	suggestions []string
}

// NewSession creates a session, restoring transcript and history from the
// store when one is configured.
func NewSession(r *resolver.Resolver, opts ...Option) *Session {
	s := &Session{
		resolver: r,
		logger:   logging.DefaultLogger,
		now:      time.Now,
		prompt:   DefaultPrompt,
		limit:    resolver.DefaultSuggestionLimit,
		cursor:   NotNavigating,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.restore()
	s.RefreshSuggestions(s.input)
	return s
}

func (s *Session) restore() {
	if s.store == nil {
		return
	}

	var entries []Entry
	if found, err := s.store.Load(history.KeyTranscript, &entries); err != nil {
		s.logger.Warn("Could not load terminal transcript", logging.Fields{"error": err.Error()})
	} else if found {
		s.entries = entries
	}

	var commands []string
	if found, err := s.store.Load(history.KeyCommands, &commands); err != nil {
		s.logger.Warn("Could not load command history", logging.Fields{"error": err.Error()})
	} else if found {
		s.history = commands
	}

	s.logger.Debug("Session restored", logging.Fields{
		"entries": len(s.entries),
		"history": len(s.history),
	})
}

// Submit processes one line of input.
// Blank input is ignored. "clear" in any case resets the transcript and is
// neither echoed nor recorded. Anything else is echoed, recorded in history
// and resolved against the catalog.
func (s *Session) Submit(raw string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return
	}

	if IsReserved(trimmed) {
		s.Reset()
		s.setInput("")
		return
	}

	s.execute(raw)
	s.setInput("")
}

// IsReserved reports whether raw is the reset word Submit intercepts
func IsReserved(raw string) bool {
	return strings.ToLower(strings.TrimSpace(raw)) == ReservedClear
}

// SelectSuggestion runs a suggested command directly, as a click on a
// suggestion does. The reserved word is not intercepted here.
func (s *Session) SelectSuggestion(command string) {
	if strings.TrimSpace(command) == "" {
		return
	}
	s.execute(command)
	s.setInput("")
}

// execute echoes, records and resolves one command line
func (s *Session) execute(raw string) {
	s.appendEntry(KindCommand, s.prompt+" "+raw)
	s.history = append(s.history, raw)
	s.cursor = NotNavigating
	s.save(history.KeyCommands, s.history)

	if spec, ok := s.resolver.Resolve(raw); ok {
		s.current = &spec
		s.logger.Debug("Command resolved", logging.Fields{"input": raw, "command": spec.Command})

		s.appendEntry(KindOutput, LabelCommand+": "+spec.Command)
		s.appendEntry(KindOutput, LabelDescription+": "+spec.Description)
		s.appendEntry(KindOutput, LabelUsage+": "+spec.Usage)
		if len(spec.Examples) > 0 {
			s.appendEntry(KindOutput, LabelExamples)
			for _, example := range spec.Examples {
				s.appendEntry(KindOutput, indent+example)
			}
		}
	} else {
		s.current = nil
		s.logger.Debug("Command not resolved", logging.Fields{"input": raw})

		s.appendEntry(KindError, MsgCommandNotFound+": "+raw)
		s.appendEntry(KindError, MsgTryTheseCommands)
		s.appendEntry(KindError, indent+MsgCommonCommands)
		if suggestions := s.resolver.SuggestN(raw, s.limit); len(suggestions) > 0 {
			s.appendEntry(KindError, MsgDidYouMean)
			for _, suggestion := range suggestions {
				s.appendEntry(KindError, indent+suggestion)
			}
		}
	}

	s.save(history.KeyTranscript, s.entries)
}

// NavigateHistory moves the recall cursor and loads the recalled line into
// the input buffer. It never leaves the bounds of the history.
func (s *Session) NavigateHistory(dir Direction) {
	switch dir {
	case Previous:
		if len(s.history) == 0 {
			return
		}
		if s.cursor == NotNavigating {
			s.cursor = len(s.history) - 1
		} else {
			s.cursor = max(0, s.cursor-1)
		}
		s.setInput(s.history[s.cursor])

	case Next:
		if s.cursor == NotNavigating {
			return
		}
		next := s.cursor + 1
		if next >= len(s.history) {
			s.cursor = NotNavigating
			s.setInput("")
			return
		}
		s.cursor = next
		s.setInput(s.history[s.cursor])
	}
}

// AutocompleteFirst replaces the input buffer with the first suggestion for
// currentInput, if there is one.
func (s *Session) AutocompleteFirst(currentInput string) {
	suggestions := s.resolver.SuggestN(currentInput, s.limit)
	if len(suggestions) == 0 {
		return
	}
	s.setInput(suggestions[0])
}

// SetInput records an edit of the input buffer
func (s *Session) SetInput(text string) {
	s.setInput(text)
}

func (s *Session) setInput(text string) {
	s.input = text
	s.RefreshSuggestions(text)
}

// RefreshSuggestions recomputes the live suggestion list for currentInput.
// With blank input after a successful resolution, the related commands of
// that command come first, followed by the regular list.
func (s *Session) RefreshSuggestions(currentInput string) {
	suggestions := s.resolver.SuggestN(currentInput, s.limit)

	if strings.TrimSpace(currentInput) == "" && s.current != nil && len(s.current.RelatedCommands) > 0 {
		related := make([]string, 0, len(s.current.RelatedCommands)+len(suggestions))
		related = append(related, s.current.RelatedCommands...)
		suggestions = append(related, suggestions...)
	}

	s.suggestions = suggestions
}

// Reset clears the transcript and the current command. History and the
// recall cursor survive.
func (s *Session) Reset() {
	s.entries = nil
	s.current = nil
	s.save(history.KeyTranscript, []Entry{})
	s.RefreshSuggestions(s.input)
}

func (s *Session) appendEntry(kind Kind, content string) {
	s.entries = append(s.entries, Entry{
		ID:        newEntryID(),
		Kind:      kind,
		Content:   content,
		CreatedAt: s.now(),
	})
}

// save hands the whole value to the store; failures are logged only
func (s *Session) save(key string, value any) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(key, value); err != nil {
		s.logger.Warn("Could not save terminal state", logging.Fields{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// Entries returns a copy of the transcript
func (s *Session) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// History returns a copy of the submitted lines, oldest first
func (s *Session) History() []string {
	return append([]string(nil), s.history...)
}

// Cursor returns the recall index or NotNavigating
func (s *Session) Cursor() int {
	return s.cursor
}

// Input returns the live input buffer
func (s *Session) Input() string {
	return s.input
}

// Suggestions returns a copy of the live suggestion list
func (s *Session) Suggestions() []string {
	return append([]string(nil), s.suggestions...)
}

// Current returns the most recently resolved command
func (s *Session) Current() (catalog.CommandSpec, bool) {
	if s.current == nil {
		return catalog.CommandSpec{}, false
	}
	return *s.current, true
}

// Prompt returns the marker echoed before commands
func (s *Session) Prompt() string {
	return s.prompt
}

// Resolver returns the resolver the session interprets input with
func (s *Session) Resolver() *resolver.Resolver {
	return s.resolver
}

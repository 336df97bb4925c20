// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

import "time"

// AppName names the config and data directories
const AppName = "gitterm"

// Application defaults
const (
	DefaultTheme           = "matrix"
	DefaultStore           = "file"
	DefaultLogLevel        = "warn"
	DefaultLogFormat       = "text"
	DefaultPrompt          = "$"
	DefaultSuggestionLimit = 8
)

// Timing used by the interactive front ends
const (
	// SpinnerDelay is the frame interval of the loading spinner
	SpinnerDelay = 100 * time.Millisecond
	// StoreOpenTimeout bounds how long a front end waits for the history store
	StoreOpenTimeout = 5 * time.Second
)

// InputPlaceholder is shown in an empty input line
const InputPlaceholder = "Type a git command..."

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/quocvuong92/gitterm/internal/constants"
	"github.com/quocvuong92/gitterm/internal/history"
	"github.com/quocvuong92/gitterm/internal/logging"
)

// Environment variable names
const (
	EnvTheme           = "GITTERM_THEME"
	EnvStore           = "GITTERM_STORE"
	EnvStorePath       = "GITTERM_STORE_PATH"
	EnvCatalog         = "GITTERM_CATALOG"
	EnvLogLevel        = "GITTERM_LOG_LEVEL"
	EnvLogFormat       = "GITTERM_LOG_FORMAT"
	EnvPrompt          = "GITTERM_PROMPT"
	EnvSuggestionLimit = "GITTERM_SUGGESTION_LIMIT"
)

// Defaults - re-exported from constants for convenience
const (
	DefaultTheme           = constants.DefaultTheme
	DefaultStore           = constants.DefaultStore
	DefaultLogLevel        = constants.DefaultLogLevel
	DefaultLogFormat       = constants.DefaultLogFormat
	DefaultPrompt          = constants.DefaultPrompt
	DefaultSuggestionLimit = constants.DefaultSuggestionLimit
)

// Errors
var (
	ErrInvalidStore           = errors.New("invalid store backend. Use 'file', 'sqlite', or 'memory'")
	ErrInvalidLogFormat       = errors.New("invalid log format. Use 'text', 'json', or 'logfmt'")
	ErrInvalidSuggestionLimit = errors.New("suggestion limit must be a positive integer")
)

// Config holds the application configuration
type Config struct {
	// ConfigPath is an explicit config file; when empty the search paths are used
	ConfigPath string

	Theme       string
	Store       string // "file", "sqlite", or "memory"
	StorePath   string // directory for file, database for sqlite
	CatalogPath string // YAML catalog replacing the embedded one

	LogLevel  string
	LogFormat string

	Prompt          string
	SuggestionLimit int

	// Flags
	Render      bool // Render command details as markdown
	Verbose     bool // Debug logging
	Interactive bool // Line REPL
	TUI         bool // Full-screen terminal
}

// NewConfig creates a new Config with defaults
func NewConfig() *Config {
	return &Config{}
}

// Validate fills unset fields from the environment, then the config file, then
// the defaults, and checks the result. Fields already set by flags win.
func (c *Config) Validate() error {
	if err := c.applyEnv(); err != nil {
		return err
	}

	if c.ConfigPath != "" {
		fileConfig, err := LoadConfigFileFrom(c.ConfigPath)
		if err != nil {
			return err
		}
		c.ApplyFileConfig(fileConfig)
	} else if fileConfig, err := LoadConfigFile(); err == nil {
		c.ApplyFileConfig(fileConfig)
	}
	// Errors loading a searched config file are ignored - env vars and flags take precedence

	c.applyDefaults()

	if c.Verbose {
		c.LogLevel = logging.LevelDebug.String()
	}

	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	switch c.Store {
	case history.BackendFile, history.BackendSQLite, history.BackendMemory:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStore, c.Store)
	}

	if _, ok := logging.ParseFormat(c.LogFormat); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}

	if c.SuggestionLimit <= 0 {
		return ErrInvalidSuggestionLimit
	}

	return nil
}

func (c *Config) applyEnv() error {
	setFromEnv(&c.Theme, EnvTheme)
	setFromEnv(&c.Store, EnvStore)
	setFromEnv(&c.StorePath, EnvStorePath)
	setFromEnv(&c.CatalogPath, EnvCatalog)
	setFromEnv(&c.LogLevel, EnvLogLevel)
	setFromEnv(&c.LogFormat, EnvLogFormat)
	setFromEnv(&c.Prompt, EnvPrompt)

	if c.SuggestionLimit == 0 {
		if v := strings.TrimSpace(os.Getenv(EnvSuggestionLimit)); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %s=%q", ErrInvalidSuggestionLimit, EnvSuggestionLimit, v)
			}
			c.SuggestionLimit = n
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.Store == "" {
		c.Store = DefaultStore
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
	if c.SuggestionLimit == 0 {
		c.SuggestionLimit = DefaultSuggestionLimit
	}
}

// setFromEnv fills an unset field from an environment variable
func setFromEnv(field *string, envVar string) {
	if *field != "" {
		return
	}
	*field = strings.TrimSpace(os.Getenv(envVar))
}

// Logging returns logger options for the configured level and format
func (c *Config) Logging() logging.Options {
	format, _ := logging.ParseFormat(c.LogFormat)
	return logging.Options{
		Level:  logging.ParseLevel(c.LogLevel),
		Format: format,
		Output: os.Stderr,
		Prefix: constants.AppName,
	}
}

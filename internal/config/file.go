package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quocvuong92/gitterm/internal/constants"
)

// ConfigFileName is the name of the config file
const ConfigFileName = "config.yaml"

// ErrConfigExists is returned when init would overwrite a config file
var ErrConfigExists = errors.New("config file already exists")

// FileConfig represents the configuration file structure
type FileConfig struct {
	Theme           string `yaml:"theme,omitempty"`
	Prompt          string `yaml:"prompt,omitempty"`
	SuggestionLimit int    `yaml:"suggestion_limit,omitempty"`
	Catalog         string `yaml:"catalog,omitempty"` // Path to a YAML command catalog

	// Transcript and history persistence
	Store *StoreConfig `yaml:"store,omitempty"`

	// Diagnostics
	Log *LogConfig `yaml:"log,omitempty"`

	// Default flags
	Defaults *DefaultsConfig `yaml:"defaults,omitempty"`
}

// StoreConfig selects the history backend
type StoreConfig struct {
	Backend string `yaml:"backend,omitempty"` // "file", "sqlite", "memory"
	Path    string `yaml:"path,omitempty"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"` // "text", "json", "logfmt"
}

// DefaultsConfig holds default flag values
type DefaultsConfig struct {
	Render bool `yaml:"render,omitempty"`
	TUI    bool `yaml:"tui,omitempty"`
}

// GetConfigPaths returns the paths to check for config files (in order of priority)
func GetConfigPaths() []string {
	var paths []string

	// 1. Current directory
	paths = append(paths, filepath.Join(".", "."+constants.AppName, ConfigFileName))

	// 2. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, constants.AppName, ConfigFileName))
	}

	// 3. Home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", constants.AppName, ConfigFileName))
	}

	return paths
}

// LoadConfigFile loads the first config file found on the search paths
func LoadConfigFile() (*FileConfig, error) {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return LoadConfigFileFrom(path)
		}
	}

	// No config file found, return empty config
	return &FileConfig{}, nil
}

// LoadConfigFileFrom loads config from a specific path
func LoadConfigFileFrom(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyFileConfig applies file configuration to the main Config
// File config has lower priority than environment variables and CLI flags
func (c *Config) ApplyFileConfig(fc *FileConfig) {
	if fc == nil {
		return
	}

	if c.Theme == "" {
		c.Theme = fc.Theme
	}
	if c.Prompt == "" {
		c.Prompt = fc.Prompt
	}
	if c.SuggestionLimit == 0 {
		c.SuggestionLimit = fc.SuggestionLimit
	}
	if c.CatalogPath == "" {
		c.CatalogPath = fc.Catalog
	}

	if fc.Store != nil {
		if c.Store == "" {
			c.Store = fc.Store.Backend
		}
		if c.StorePath == "" {
			c.StorePath = fc.Store.Path
		}
	}

	if fc.Log != nil {
		if c.LogLevel == "" {
			c.LogLevel = fc.Log.Level
		}
		if c.LogFormat == "" {
			c.LogFormat = fc.Log.Format
		}
	}

	// A false flag cannot be told apart from an unset one, so only true
	// defaults are applied
	if fc.Defaults != nil {
		if fc.Defaults.Render {
			c.Render = true
		}
		if fc.Defaults.TUI && !c.Interactive {
			c.TUI = true
		}
	}
}

// DefaultConfigDir returns the directory config init writes to
func DefaultConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine config directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, constants.AppName), nil
}

// CreateDefaultConfigFile creates a default config file at the user config directory
func CreateDefaultConfigFile() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("%w at %s", ErrConfigExists, path)
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}

const defaultConfig = `# gitterm configuration
# Location: ~/.config/gitterm/config.yaml

# Colour theme: matrix, oceanic, sunset, midnight, light, or neon
# theme: matrix

# Marker echoed before every submitted command
# prompt: "$"

# Maximum number of suggestions shown while typing
# suggestion_limit: 8

# Replace the built-in command catalog with your own YAML file
# catalog: /path/to/commands.yaml

# Where the transcript and command history are kept
# store:
#   backend: file  # file, sqlite, or memory
#   path: /home/you/.local/share/gitterm

# Diagnostics (written to stderr)
# log:
#   level: warn   # debug, info, warn, error, or none
#   format: text  # text, json, or logfmt

# Default flags
# defaults:
#   render: true  # render command details as markdown
#   tui: false    # start the full-screen terminal
`

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quocvuong92/gitterm/internal/logging"
)

// clearAllEnvVars clears all config-related environment variables for clean tests
func clearAllEnvVars(t *testing.T) {
	t.Helper()
	for _, env := range []string{
		EnvTheme, EnvStore, EnvStorePath, EnvCatalog,
		EnvLogLevel, EnvLogFormat, EnvPrompt, EnvSuggestionLimit,
	} {
		t.Setenv(env, "")
	}
}

// runInTempDir runs the test in a temporary directory to isolate from config files
func runInTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() {
		os.Chdir(oldWd)
	})

	// Override HOME and XDG_CONFIG_HOME to prevent loading user config files
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	return tmpDir
}

// =============================================================================
// Validate Tests
// =============================================================================

func TestConfig_Validate_Defaults(t *testing.T) {
	clearAllEnvVars(t)
	runInTempDir(t)

	cfg := NewConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultTheme, cfg.Theme)
	assert.Equal(t, DefaultStore, cfg.Store)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	assert.Equal(t, DefaultPrompt, cfg.Prompt)
	assert.Equal(t, DefaultSuggestionLimit, cfg.SuggestionLimit)
	assert.Empty(t, cfg.StorePath)
	assert.Empty(t, cfg.CatalogPath)
}

func TestConfig_Validate_EnvVarLoading(t *testing.T) {
	clearAllEnvVars(t)
	runInTempDir(t)

	t.Setenv(EnvTheme, "neon")
	t.Setenv(EnvStore, "SQLite")
	t.Setenv(EnvStorePath, "/tmp/gitterm.db")
	t.Setenv(EnvCatalog, "/tmp/commands.yaml")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvPrompt, ">")
	t.Setenv(EnvSuggestionLimit, " 12 ")

	cfg := NewConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "neon", cfg.Theme)
	assert.Equal(t, "sqlite", cfg.Store, "backend names are normalized")
	assert.Equal(t, "/tmp/gitterm.db", cfg.StorePath)
	assert.Equal(t, "/tmp/commands.yaml", cfg.CatalogPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, ">", cfg.Prompt)
	assert.Equal(t, 12, cfg.SuggestionLimit)
}

func TestConfig_Validate_FlagsOverrideEnv(t *testing.T) {
	clearAllEnvVars(t)
	runInTempDir(t)
	t.Setenv(EnvTheme, "neon")
	t.Setenv(EnvStore, "sqlite")

	cfg := &Config{Theme: "sunset", Store: "memory"}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "sunset", cfg.Theme)
	assert.Equal(t, "memory", cfg.Store)
}

func TestConfig_Validate_EnvOverridesFile(t *testing.T) {
	clearAllEnvVars(t)
	dir := runInTempDir(t)
	createTempConfigFile(t, dir, "theme: oceanic\nprompt: \"%\"\n")
	t.Setenv(EnvTheme, "light")

	cfg := NewConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, "%", cfg.Prompt, "file fills what env leaves unset")
}

func TestConfig_Validate_ExplicitConfigPath(t *testing.T) {
	clearAllEnvVars(t)
	dir := runInTempDir(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  backend: memory\n"), 0644))

	cfg := &Config{ConfigPath: path}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "memory", cfg.Store)

	missing := &Config{ConfigPath: filepath.Join(dir, "missing.yaml")}
	assert.Error(t, missing.Validate(), "an explicit config file must exist")
}

func TestConfig_Validate_BrokenSearchedFileIgnored(t *testing.T) {
	clearAllEnvVars(t)
	dir := runInTempDir(t)
	createTempConfigFile(t, dir, "theme: [unclosed")

	cfg := NewConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultTheme, cfg.Theme)
}

func TestConfig_Validate_Verbose(t *testing.T) {
	clearAllEnvVars(t)
	runInTempDir(t)

	cfg := &Config{Verbose: true, LogLevel: "error"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, logging.LevelDebug, logging.ParseLevel(cfg.LogLevel))
}

func TestConfig_Validate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		env     map[string]string
		wantErr error
	}{
		{
			name:    "unknown store",
			cfg:     &Config{Store: "redis"},
			wantErr: ErrInvalidStore,
		},
		{
			name:    "unknown log format",
			cfg:     &Config{LogFormat: "xml"},
			wantErr: ErrInvalidLogFormat,
		},
		{
			name:    "negative suggestion limit",
			cfg:     &Config{SuggestionLimit: -1},
			wantErr: ErrInvalidSuggestionLimit,
		},
		{
			name:    "non-numeric suggestion limit",
			cfg:     NewConfig(),
			env:     map[string]string{EnvSuggestionLimit: "many"},
			wantErr: ErrInvalidSuggestionLimit,
		},
		{
			name:    "zero suggestion limit from env",
			cfg:     NewConfig(),
			env:     map[string]string{EnvSuggestionLimit: "0"},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearAllEnvVars(t)
			runInTempDir(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// =============================================================================
// Logging Options Tests
// =============================================================================

func TestConfig_Logging(t *testing.T) {
	cfg := &Config{LogLevel: "info", LogFormat: "logfmt"}

	opts := cfg.Logging()
	assert.Equal(t, logging.LevelInfo, opts.Level)
	assert.Equal(t, logging.FormatLogfmt, opts.Format)
	assert.Equal(t, os.Stderr, opts.Output)
	assert.Equal(t, "gitterm", opts.Prefix)
}

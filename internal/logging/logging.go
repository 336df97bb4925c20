// Package logging provides structured logging with multiple levels and output formats.
//
// # Features
//
//   - Multiple log levels: Debug, Info, Warn, Error
//   - Text, JSON and logfmt output, rendered by charmbracelet/log
//   - Child loggers with preset fields
//   - File and stderr output support
//   - Thread-safe operations
//
// # Usage
//
//	logger := logging.New(logging.Options{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	    Output: os.Stderr,
//	})
//
//	logger.Info("Session started", logging.Fields{
//	    "store":   "file",
//	    "entries": 12,
//	})
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Level represents a logging level
type Level int

const (
	// LevelDebug is for detailed debugging information
	LevelDebug Level = iota
	// LevelInfo is for general informational messages
	LevelInfo
	// LevelWarn is for warning messages
	LevelWarn
	// LevelError is for error messages
	LevelError
	// LevelNone disables all logging
	LevelNone
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a Level
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "NONE", "OFF":
		return LevelNone
	default:
		return LevelInfo
	}
}

func (l Level) charm() log.Level {
	switch l {
	case LevelDebug:
		return log.DebugLevel
	case LevelWarn:
		return log.WarnLevel
	case LevelError, LevelNone:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Format represents the output format
type Format int

const (
	// FormatText outputs human-readable text
	FormatText Format = iota
	// FormatJSON outputs machine-readable JSON
	FormatJSON
	// FormatLogfmt outputs key=value pairs
	FormatLogfmt
)

// ParseFormat parses a format name, reporting whether it was recognized
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, true
	case "json":
		return FormatJSON, true
	case "logfmt":
		return FormatLogfmt, true
	default:
		return FormatText, false
	}
}

func (f Format) formatter() log.Formatter {
	switch f {
	case FormatJSON:
		return log.JSONFormatter
	case FormatLogfmt:
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// Fields is a map of structured log fields
type Fields map[string]interface{}

// Options configures the logger
type Options struct {
	Level  Level
	Format Format
	Output io.Writer
	// Prefix is prepended to every message, e.g. the component name
	Prefix string
}

// Logger provides structured logging capabilities
type Logger struct {
	mu     sync.Mutex
	level  Level
	output io.Writer
	base   *log.Logger
}

// DefaultLogger is a package-level logger for convenience
var DefaultLogger = New(Options{
	Level:  LevelWarn,
	Format: FormatText,
	Output: os.Stderr,
})

// New creates a new Logger with the given options
func New(opts Options) *Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	l := &Logger{level: opts.Level, output: opts.Output}
	l.base = log.NewWithOptions(l.sink(), log.Options{
		Level:           opts.Level.charm(),
		Formatter:       opts.Format.formatter(),
		Prefix:          opts.Prefix,
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05.000",
	})
	return l
}

// sink returns the writer for the current level; LevelNone discards
// everything because charmbracelet/log has no level above fatal.
func (l *Logger) sink() io.Writer {
	if l.level == LevelNone {
		return io.Discard
	}
	return l.output
}

// SetLevel changes the log level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.base.SetLevel(level.charm())
	l.base.SetOutput(l.sink())
}

// SetFormat changes the output format
func (l *Logger) SetFormat(format Format) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.base.SetFormatter(format.formatter())
}

// SetOutput changes the output writer
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
	l.base.SetOutput(l.sink())
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...Fields) {
	l.log(LevelDebug, msg, nil, fields...)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...Fields) {
	l.log(LevelInfo, msg, nil, fields...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...Fields) {
	l.log(LevelWarn, msg, nil, fields...)
}

// Error logs an error message
func (l *Logger) Error(msg string, err error, fields ...Fields) {
	l.log(LevelError, msg, err, fields...)
}

// log is the internal logging function
func (l *Logger) log(level Level, msg string, err error, fields ...Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	keyvals := flatten(err, fields...)
	switch level {
	case LevelDebug:
		l.base.Debug(msg, keyvals...)
	case LevelInfo:
		l.base.Info(msg, keyvals...)
	case LevelWarn:
		l.base.Warn(msg, keyvals...)
	default:
		l.base.Error(msg, keyvals...)
	}
}

// flatten merges fields into sorted key/value pairs so output is stable
func flatten(err error, fields ...Fields) []interface{} {
	merged := make(Fields)
	for _, f := range fields {
		for k, v := range f {
			merged[k] = v
		}
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	keyvals := make([]interface{}, 0, 2*len(keys)+2)
	if err != nil {
		keyvals = append(keyvals, "error", err.Error())
	}
	for _, k := range keys {
		keyvals = append(keyvals, k, fmt.Sprint(merged[k]))
	}
	return keyvals
}

// WithFields creates a child logger with preset fields
func (l *Logger) WithFields(fields Fields) *FieldLogger {
	return &FieldLogger{
		logger: l,
		fields: fields,
	}
}

// FieldLogger is a logger with preset fields
type FieldLogger struct {
	logger *Logger
	fields Fields
}

// Debug logs a debug message with preset fields
func (fl *FieldLogger) Debug(msg string, fields ...Fields) {
	fl.logger.Debug(msg, fl.mergeFields(fields...)...)
}

// Info logs an info message with preset fields
func (fl *FieldLogger) Info(msg string, fields ...Fields) {
	fl.logger.Info(msg, fl.mergeFields(fields...)...)
}

// Warn logs a warning message with preset fields
func (fl *FieldLogger) Warn(msg string, fields ...Fields) {
	fl.logger.Warn(msg, fl.mergeFields(fields...)...)
}

// Error logs an error message with preset fields
func (fl *FieldLogger) Error(msg string, err error, fields ...Fields) {
	fl.logger.Error(msg, err, fl.mergeFields(fields...)...)
}

// mergeFields merges preset fields with additional fields
func (fl *FieldLogger) mergeFields(fields ...Fields) []Fields {
	result := make([]Fields, 0, len(fields)+1)
	result = append(result, fl.fields)
	result = append(result, fields...)
	return result
}

// Package-level convenience functions using DefaultLogger

// Debug logs a debug message using the default logger
func Debug(msg string, fields ...Fields) {
	DefaultLogger.Debug(msg, fields...)
}

// Info logs an info message using the default logger
func Info(msg string, fields ...Fields) {
	DefaultLogger.Info(msg, fields...)
}

// Warn logs a warning message using the default logger
func Warn(msg string, fields ...Fields) {
	DefaultLogger.Warn(msg, fields...)
}

// Error logs an error message using the default logger
func Error(msg string, err error, fields ...Fields) {
	DefaultLogger.Error(msg, err, fields...)
}

// SetLevel sets the level of the default logger
func SetLevel(level Level) {
	DefaultLogger.SetLevel(level)
}

// SetFormat sets the format of the default logger
func SetFormat(format Format) {
	DefaultLogger.SetFormat(format)
}

// SetOutput sets the output of the default logger
func SetOutput(w io.Writer) {
	DefaultLogger.SetOutput(w)
}

// Package logging provides the pluggable, key/value style logger used by the
// compiler, the parser and the cyq tool. It is silent by default.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	// LogLevelDebug logs everything including every compiled statement
	LogLevelDebug LogLevel = iota
	// LogLevelInfo logs general information
	LogLevelInfo
	// LogLevelWarn logs warning messages that don't stop execution
	LogLevelWarn
	// LogLevelError logs only error conditions
	LogLevelError
	// LogLevelOff disables all logging
	LogLevelOff
)

// String returns the string representation of a log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the level name in structured output.
func (l LogLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// ParseLogLevel parses a string into a LogLevel
func ParseLogLevel(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return LogLevelDebug
	case "INFO":
		return LogLevelInfo
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	case "OFF", "NONE":
		return LogLevelOff
	default:
		return LogLevelInfo
	}
}

// LogCategory groups log output by subsystem
type LogCategory string

const (
	CategoryCompiler LogCategory = "compiler"
	CategoryParser   LogCategory = "parser"
	CategoryLSP      LogCategory = "lsp"
	CategoryCLI      LogCategory = "cli"
)

// ForCategory tags logger with category when its implementation supports
// categories, and returns it unchanged otherwise.
func ForCategory(logger Logger, category LogCategory) Logger {
	switch l := logger.(type) {
	case *ConsoleLogger:
		return l.WithCategory(category)
	case *StructuredLogger:
		return l.WithCategory(category)
	case *LogrusLogger:
		return l.WithCategory(category)
	default:
		return logger
	}
}

// LogEntry represents a structured log entry
type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     LogLevel               `json:"level"`
	Category  LogCategory            `json:"category,omitempty"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// Logger is the logging interface every component accepts.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})
	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})
	// Warn logs a warning message with optional key-value pairs
	Warn(msg string, keysAndValues ...interface{})
	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
	// IsDebugEnabled returns true if debug logging is enabled
	IsDebugEnabled() bool
	// IsInfoEnabled returns true if info logging is enabled
	IsInfoEnabled() bool
}

// Output formats accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatLogrus  = "logrus"
)

// Config holds logging configuration
type Config struct {
	// Logger is the logger implementation. Nil means silent.
	Logger Logger
	// Level is the minimum level the logger was built with
	Level LogLevel
	// Format is one of FormatConsole, FormatJSON or FormatLogrus
	Format string
}

// DefaultConfig returns a logging configuration with a no-op logger
func DefaultConfig() *Config {
	return &Config{
		Logger: &NoOpLogger{},
		Level:  LogLevelOff,
		Format: FormatConsole,
	}
}

// New builds a Logger writing to w in the given format. An empty format
// selects console output; a nil writer selects stderr.
func New(format string, level LogLevel, w io.Writer) (Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	switch strings.ToLower(format) {
	case "", FormatConsole, FormatJSON, FormatLogrus:
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	if level == LogLevelOff {
		return &NoOpLogger{}, nil
	}
	switch strings.ToLower(format) {
	case FormatJSON:
		return NewStructuredLogger(level, w), nil
	case FormatLogrus:
		return NewLogrusLogger(level, w), nil
	default:
		return NewConsoleLoggerWithOutput(level, w, w), nil
	}
}

// NewConfig builds a Config around New.
func NewConfig(format string, level LogLevel, w io.Writer) (*Config, error) {
	logger, err := New(format, level, w)
	if err != nil {
		return nil, err
	}
	if format == "" {
		format = FormatConsole
	}
	return &Config{Logger: logger, Level: level, Format: format}, nil
}

// NoOpLogger is a logger that does nothing (default behavior)
type NoOpLogger struct{}

func (l *NoOpLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (l *NoOpLogger) Info(msg string, keysAndValues ...interface{})  {}
func (l *NoOpLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (l *NoOpLogger) Error(msg string, keysAndValues ...interface{}) {}
func (l *NoOpLogger) IsDebugEnabled() bool                           { return false }
func (l *NoOpLogger) IsInfoEnabled() bool                            { return false }

// parseKeyValues turns alternating keys and values into a field map. A
// trailing key without a value is dropped.
func parseKeyValues(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprintf("%v", keysAndValues[i])] = fieldValue(keysAndValues[i+1])
	}
	return fields
}

// fieldValue keeps errors readable once marshalled.
func fieldValue(v interface{}) interface{} {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return v
}

func formatKeyValues(keysAndValues []interface{}) string {
	var pairs []string
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		pairs = append(pairs, fmt.Sprintf("%v=%v", keysAndValues[i], keysAndValues[i+1]))
	}
	return strings.Join(pairs, " ")
}

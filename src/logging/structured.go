package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// StructuredLogger writes one JSON LogEntry per line.
type StructuredLogger struct {
	Level    LogLevel
	Category LogCategory
	Output   io.Writer
	mu       sync.Mutex
}

// NewStructuredLogger creates a JSON lines logger.
func NewStructuredLogger(level LogLevel, output io.Writer) *StructuredLogger {
	return &StructuredLogger{Level: level, Output: output}
}

// WithCategory returns a logger tagging every entry with category.
func (l *StructuredLogger) WithCategory(category LogCategory) *StructuredLogger {
	return &StructuredLogger{Level: l.Level, Category: category, Output: l.Output}
}

func (l *StructuredLogger) log(level LogLevel, msg string, keysAndValues ...interface{}) {
	if level < l.Level {
		return
	}
	entry := LogEntry{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Category:  l.Category,
		Message:   msg,
	}
	if len(keysAndValues) > 0 {
		entry.Fields = parseKeyValues(keysAndValues)
	}
	l.LogStructured(entry)
}

// LogStructured writes a prepared entry.
func (l *StructuredLogger) LogStructured(entry LogEntry) {
	data, err := json.Marshal(entry)
	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		fmt.Fprintf(l.Output, "ERROR: failed to marshal log entry: %v\n", err)
		return
	}
	l.Output.Write(append(data, '\n'))
}

func (l *StructuredLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log(LogLevelDebug, msg, keysAndValues...)
}

func (l *StructuredLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log(LogLevelInfo, msg, keysAndValues...)
}

func (l *StructuredLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log(LogLevelWarn, msg, keysAndValues...)
}

func (l *StructuredLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log(LogLevelError, msg, keysAndValues...)
}

func (l *StructuredLogger) IsDebugEnabled() bool { return l.Level <= LogLevelDebug }

func (l *StructuredLogger) IsInfoEnabled() bool { return l.Level <= LogLevelInfo }

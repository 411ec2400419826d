package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// ConsoleLogger logs to stdout/stderr with configurable level and formatting
type ConsoleLogger struct {
	level      LogLevel
	debugLog   *log.Logger
	infoLog    *log.Logger
	warnLog    *log.Logger
	errorLog   *log.Logger
	mu         sync.RWMutex
	timeFormat string
	category   LogCategory
}

// NewConsoleLogger creates a new console logger with the specified level
func NewConsoleLogger(level LogLevel) *ConsoleLogger {
	return NewConsoleLoggerWithOutput(level, os.Stdout, os.Stderr)
}

// NewConsoleLoggerWithOutput creates a console logger with custom output writers
func NewConsoleLoggerWithOutput(level LogLevel, stdout, stderr io.Writer) *ConsoleLogger {
	return &ConsoleLogger{
		level:      level,
		debugLog:   log.New(stdout, "", 0),
		infoLog:    log.New(stdout, "", 0),
		warnLog:    log.New(stderr, "", 0),
		errorLog:   log.New(stderr, "", 0),
		timeFormat: "2006-01-02 15:04:05.000",
	}
}

// WithCategory returns a logger sharing c's outputs that prefixes messages
// with category.
func (c *ConsoleLogger) WithCategory(category LogCategory) *ConsoleLogger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &ConsoleLogger{
		level:      c.level,
		debugLog:   c.debugLog,
		infoLog:    c.infoLog,
		warnLog:    c.warnLog,
		errorLog:   c.errorLog,
		timeFormat: c.timeFormat,
		category:   category,
	}
}

// SetLevel updates the log level
func (c *ConsoleLogger) SetLevel(level LogLevel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.level = level
}

// SetTimeFormat sets the time format for log messages
func (c *ConsoleLogger) SetTimeFormat(format string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeFormat = format
}

func (c *ConsoleLogger) formatMessage(level LogLevel, msg string, keysAndValues ...interface{}) string {
	c.mu.RLock()
	timeFormat := c.timeFormat
	c.mu.RUnlock()

	tag := "cypherkit"
	if c.category != "" {
		tag += ":" + string(c.category)
	}
	formatted := fmt.Sprintf("[%s] %s [%s] %s", time.Now().Format(timeFormat), level.String(), tag, msg)
	if pairs := formatKeyValues(keysAndValues); pairs != "" {
		formatted += " | " + pairs
	}
	return formatted
}

func (c *ConsoleLogger) enabled(level LogLevel) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.level <= level
}

func (c *ConsoleLogger) Debug(msg string, keysAndValues ...interface{}) {
	if c.enabled(LogLevelDebug) {
		c.debugLog.Println(c.formatMessage(LogLevelDebug, msg, keysAndValues...))
	}
}

func (c *ConsoleLogger) Info(msg string, keysAndValues ...interface{}) {
	if c.enabled(LogLevelInfo) {
		c.infoLog.Println(c.formatMessage(LogLevelInfo, msg, keysAndValues...))
	}
}

func (c *ConsoleLogger) Warn(msg string, keysAndValues ...interface{}) {
	if c.enabled(LogLevelWarn) {
		c.warnLog.Println(c.formatMessage(LogLevelWarn, msg, keysAndValues...))
	}
}

func (c *ConsoleLogger) Error(msg string, keysAndValues ...interface{}) {
	if c.enabled(LogLevelError) {
		c.errorLog.Println(c.formatMessage(LogLevelError, msg, keysAndValues...))
	}
}

func (c *ConsoleLogger) IsDebugEnabled() bool { return c.enabled(LogLevelDebug) }

func (c *ConsoleLogger) IsInfoEnabled() bool { return c.enabled(LogLevelInfo) }

package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// LogrusLogger adapts a logrus entry to Logger.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger creates a logrus-backed logger writing text to w.
func NewLogrusLogger(level LogLevel, w io.Writer) *LogrusLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrusLevel(level))
	return &LogrusLogger{entry: logrus.NewEntry(l)}
}

// WrapLogrus adapts an existing logrus entry, keeping its fields and level.
func WrapLogrus(entry *logrus.Entry) *LogrusLogger {
	return &LogrusLogger{entry: entry}
}

// WithCategory returns a logger that tags entries with a component field.
func (l *LogrusLogger) WithCategory(category LogCategory) *LogrusLogger {
	return &LogrusLogger{entry: l.entry.WithField("component", string(category))}
}

func logrusLevel(level LogLevel) logrus.Level {
	switch level {
	case LogLevelDebug:
		return logrus.DebugLevel
	case LogLevelInfo:
		return logrus.InfoLevel
	case LogLevelWarn:
		return logrus.WarnLevel
	default:
		return logrus.ErrorLevel
	}
}

func (l *LogrusLogger) with(keysAndValues []interface{}) *logrus.Entry {
	if len(keysAndValues) == 0 {
		return l.entry
	}
	return l.entry.WithFields(logrus.Fields(parseKeyValues(keysAndValues)))
}

func (l *LogrusLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Debug(msg)
}

func (l *LogrusLogger) Info(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Info(msg)
}

func (l *LogrusLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Warn(msg)
}

func (l *LogrusLogger) Error(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Error(msg)
}

func (l *LogrusLogger) IsDebugEnabled() bool {
	return l.entry.Logger.IsLevelEnabled(logrus.DebugLevel)
}

func (l *LogrusLogger) IsInfoEnabled() bool {
	return l.entry.Logger.IsLevelEnabled(logrus.InfoLevel)
}

package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"INFO", LogLevelInfo},
		{" warning ", LogLevelWarn},
		{"warn", LogLevelWarn},
		{"error", LogLevelError},
		{"none", LogLevelOff},
		{"off", LogLevelOff},
		{"bogus", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := NewConsoleLoggerWithOutput(LogLevelInfo, &stdout, &stderr)

	logger.Debug("debug message")
	logger.Info("info message", "kind", "match")
	logger.Warn("warn message")
	logger.Error("error message")

	if strings.Contains(stdout.String(), "debug message") {
		t.Error("debug message should be filtered out at INFO level")
	}
	if !strings.Contains(stdout.String(), "INFO [cypherkit] info message | kind=match") {
		t.Errorf("unexpected info line: %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "warn message") || !strings.Contains(stderr.String(), "error message") {
		t.Errorf("warn and error should go to stderr, got %q", stderr.String())
	}
	if logger.IsDebugEnabled() {
		t.Error("debug should be disabled")
	}

	logger.SetLevel(LogLevelDebug)
	if !logger.IsDebugEnabled() {
		t.Error("debug should be enabled after SetLevel")
	}
}

func TestStructuredLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(LogLevelDebug, &buf).WithCategory(CategoryCompiler)

	logger.Debug("compiled", "vars", 2, "err", errors.New("boom"), "dangling")

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("invalid JSON line %q: %v", buf.String(), err)
	}
	if entry["level"] != "DEBUG" {
		t.Errorf("level = %v, want DEBUG", entry["level"])
	}
	if entry["category"] != "compiler" {
		t.Errorf("category = %v, want compiler", entry["category"])
	}
	fields, ok := entry["fields"].(map[string]interface{})
	if !ok {
		t.Fatalf("fields missing: %v", entry)
	}
	if fields["vars"] != float64(2) || fields["err"] != "boom" {
		t.Errorf("unexpected fields %v", fields)
	}
	if _, ok := fields["dangling"]; ok {
		t.Error("trailing key without value should be dropped")
	}
}

func TestStructuredLogger_Filters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(LogLevelError, &buf)
	logger.Info("quiet")
	logger.Warn("quiet")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
	if logger.IsInfoEnabled() {
		t.Error("info should be disabled")
	}
}

func TestLogrusLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusLogger(LogLevelInfo, &buf).WithCategory(CategoryParser)

	logger.Debug("hidden")
	logger.Info("parsed", "statement", "MATCH")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug should be filtered")
	}
	for _, want := range []string{"parsed", "component=parser", "statement=MATCH"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if !logger.IsInfoEnabled() || logger.IsDebugEnabled() {
		t.Error("unexpected enabled levels")
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	l, err := New("json", LogLevelInfo, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := l.(*StructuredLogger); !ok {
		t.Errorf("json format gave %T", l)
	}

	l, err = New("", LogLevelOff, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := l.(*NoOpLogger); !ok {
		t.Errorf("off level gave %T", l)
	}

	if _, err := New("xml", LogLevelInfo, &buf); err == nil {
		t.Error("expected error for unknown format")
	}

	cfg, err := NewConfig("", LogLevelWarn, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Format != FormatConsole || cfg.Level != LogLevelWarn {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestDefaultConfigIsSilent(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Logger.IsInfoEnabled() || cfg.Logger.IsDebugEnabled() {
		t.Error("default logger should be silent")
	}
}

func TestForCategory(t *testing.T) {
	var console bytes.Buffer
	ForCategory(NewConsoleLoggerWithOutput(LogLevelInfo, &console, &console), CategoryCLI).Info("started")
	if !strings.Contains(console.String(), "INFO [cypherkit:cli] started") {
		t.Errorf("console line missing category: %q", console.String())
	}

	var structured bytes.Buffer
	ForCategory(NewStructuredLogger(LogLevelInfo, &structured), CategoryLSP).Info("serving")
	if !strings.Contains(structured.String(), `"category":"lsp"`) {
		t.Errorf("structured entry missing category: %q", structured.String())
	}

	var text bytes.Buffer
	ForCategory(NewLogrusLogger(LogLevelInfo, &text), CategoryCompiler).Info("compiled")
	if !strings.Contains(text.String(), "component=compiler") {
		t.Errorf("logrus line missing component: %q", text.String())
	}

	noop := &NoOpLogger{}
	if got := ForCategory(noop, CategoryParser); got != Logger(noop) {
		t.Errorf("ForCategory(noop) = %v, want the same logger", got)
	}
}

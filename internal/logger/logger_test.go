package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{
		Level:     DEBUG,
		Format:    JSONFormat,
		Output:    &buf,
		Component: "test",
	})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Errorf("Expected 4 log lines, got %d", len(lines))
	}

	for i, line := range lines {
		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Errorf("Line %d is not valid JSON: %v", i+1, err)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{
		Level:  WARN,
		Format: JSONFormat,
		Output: &buf,
	})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Errorf("Expected 2 log lines with WARN level, got %d", len(lines))
	}
	if logger.Enabled(INFO) {
		t.Error("Expected INFO to be disabled at WARN level")
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{
		Level:     INFO,
		Format:    JSONFormat,
		Output:    &buf,
		Component: "loader",
	})

	logger.Info("table loaded", Fields{
		"table": "day",
		"rows":  731,
	})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}

	if entry.Level != "INFO" {
		t.Errorf("Expected level INFO, got %s", entry.Level)
	}
	if entry.Message != "table loaded" {
		t.Errorf("Expected message 'table loaded', got %s", entry.Message)
	}
	if entry.Component != "loader" {
		t.Errorf("Expected component 'loader', got %s", entry.Component)
	}
	if entry.Fields["table"] != "day" {
		t.Errorf("Expected field table='day', got %v", entry.Fields["table"])
	}
	if entry.Fields["rows"] != float64(731) {
		t.Errorf("Expected field rows=731, got %v", entry.Fields["rows"])
	}
	if !strings.HasPrefix(entry.Caller, "logger_test.go:") {
		t.Errorf("Expected caller in logger_test.go, got %q", entry.Caller)
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{
		Level:     INFO,
		Format:    TextFormat,
		Output:    &buf,
		Component: "dispatcher",
	})

	logger.Info("tab rendered", Fields{
		"tab":    "advanced",
		"charts": 4,
	})

	output := buf.String()
	for _, want := range []string{"INFO", "[dispatcher]", "tab rendered", "fields={charts=4, tab=advanced}"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got %q", want, output)
		}
	}
}

func TestWithComponentAndFields(t *testing.T) {
	var buf bytes.Buffer

	base := New(Config{
		Level:     INFO,
		Format:    JSONFormat,
		Output:    &buf,
		Component: "base",
	})

	scoped := base.WithComponent("render").With(Fields{"chart": "heatmap"})
	scoped.Info("rendered", Fields{"bytes": 10})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}
	if entry.Component != "render" {
		t.Errorf("Expected component 'render', got %s", entry.Component)
	}
	if entry.Fields["chart"] != "heatmap" || entry.Fields["bytes"] != float64(10) {
		t.Errorf("Expected merged fields, got %v", entry.Fields)
	}

	// level changes on the parent apply to derived loggers
	base.SetLevel(ERROR)
	buf.Reset()
	scoped.Info("filtered")
	if buf.Len() != 0 {
		t.Errorf("Expected derived logger to honour parent level, got %q", buf.String())
	}
}

func TestErrorLogging(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{
		Level:  ERROR,
		Format: JSONFormat,
		Output: &buf,
	})

	logger.Error("chart failed", errors.New("insufficient history"), Fields{
		"chart": "decomposition",
	})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}
	if entry.Error != "insufficient history" {
		t.Errorf("Expected error 'insufficient history', got %s", entry.Error)
	}
	if entry.Fields["chart"] != "decomposition" {
		t.Errorf("Expected chart field 'decomposition', got %v", entry.Fields["chart"])
	}
}

func TestFatalExits(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: INFO, Format: TextFormat, Output: &buf})

	code := -1
	logger.shared.exit = func(c int) { code = c }
	logger.Fatal("cannot load data", errors.New("missing file"))

	if code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "FATAL") {
		t.Errorf("Expected FATAL entry, got %q", buf.String())
	}
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer

	originalLogger := GetGlobalLogger()
	defer SetGlobalLogger(originalLogger)

	SetGlobalLogger(New(Config{
		Level:  INFO,
		Format: JSONFormat,
		Output: &buf,
	}))

	Info("global info message")
	Warn("global warn message")
	Component("server").Info("scoped message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 log lines, got %d", len(lines))
	}

	var entry LogEntry
	if err := json.Unmarshal([]byte(lines[2]), &entry); err != nil {
		t.Fatalf("Failed to parse JSON line: %v", err)
	}
	if entry.Component != "server" || entry.Message != "scoped message" {
		t.Errorf("Third line incorrect: component=%s, message=%s", entry.Component, entry.Message)
	}
}

func TestConfigure(t *testing.T) {
	var buf bytes.Buffer

	originalLogger := GetGlobalLogger()
	defer SetGlobalLogger(originalLogger)
	SetGlobalLogger(New(Config{Level: INFO, Format: JSONFormat, Output: &buf}))

	Configure("warning", "TEXT")
	Info("dropped")
	Warn("kept")

	output := buf.String()
	if strings.Contains(output, "dropped") {
		t.Error("Expected INFO to be filtered after Configure(warning)")
	}
	if !strings.Contains(output, "WARN kept") {
		t.Errorf("Expected text formatted warning, got %q", output)
	}

	// unknown names leave settings alone
	Configure("verbose", "xml")
	if GetGlobalLogger().Enabled(INFO) {
		t.Error("Expected level to remain WARN after unknown level name")
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"Warn", WARN},
		{"warning", WARN},
		{"error", ERROR},
		{"fatal", FATAL},
		{"trace", -1},
	}
	for _, test := range tests {
		if got := ParseLevel(test.input); got != test.expected {
			t.Errorf("ParseLevel(%q): expected %v, got %v", test.input, test.expected, got)
		}
	}

	if ParseFormat("JSON") != JSONFormat || ParseFormat("text") != TextFormat || ParseFormat("yaml") != -1 {
		t.Error("ParseFormat returned unexpected values")
	}
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{FATAL, "FATAL"},
		{LogLevel(42), "UNKNOWN"},
	}

	for _, test := range tests {
		if test.level.String() != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, test.level.String())
		}
	}
}

func BenchmarkJSONLogging(b *testing.B) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  INFO,
		Format: JSONFormat,
		Output: &buf,
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", Fields{
			"iteration": i,
		})
	}
}

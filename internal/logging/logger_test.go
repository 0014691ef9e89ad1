package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLogLines(t *testing.T, dir string) []map[string]any {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not valid JSON: %v\nline: %s", err, line)
		}
		out = append(out, entry)
	}
	return out
}

func TestNewLogger(t *testing.T) {
	t.Run("creates log file in state directory", func(t *testing.T) {
		dir := t.TempDir()

		logger, err := NewLogger(dir, LevelDebug, DefaultRotationConfig())
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		defer logger.Close()

		if _, err := os.Stat(filepath.Join(dir, LogFileName)); os.IsNotExist(err) {
			t.Errorf("log file was not created")
		}
	})

	t.Run("writes to stderr when dir is empty", func(t *testing.T) {
		logger, err := NewLogger("", LevelInfo, DefaultRotationConfig())
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		if logger.closer != nil {
			t.Error("expected no closer for a stderr logger")
		}
		if err := logger.Close(); err != nil {
			t.Errorf("Close() = %v, want nil", err)
		}
	})
}

func TestLogLevels(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelWarn, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message", "key", "value")
	logger.Error("error message")
	logger.Close()

	lines := readLogLines(t, dir)
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines at WARN, got %d", len(lines))
	}
	if lines[0]["msg"] != "warn message" || lines[0]["key"] != "value" {
		t.Errorf("unexpected first line: %v", lines[0])
	}
	if lines[1]["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR", lines[1]["level"])
	}
}

func TestLoggerContext(t *testing.T) {
	dir := t.TempDir()

	root, err := NewLogger(dir, LevelDebug, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	child := root.WithSession("s-1").WithComponent("attach").WithPanel("Body").With("slot", "tech", 42)
	child.Info("attached")
	root.Info("plain")
	root.Close()

	lines := readLogLines(t, dir)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	want := map[string]string{
		"session_id": "s-1",
		"component":  "attach",
		"panel":      "Body",
		"slot":       "tech",
	}
	for k, v := range want {
		if lines[0][k] != v {
			t.Errorf("%s = %v, want %q", k, lines[0][k], v)
		}
	}
	if _, ok := lines[1]["component"]; ok {
		t.Error("root logger should not inherit child attributes")
	}
}

func TestLoggerWithNoArgsReturnsSame(t *testing.T) {
	logger := NopLogger()
	if logger.With() != logger {
		t.Error("With() without args should return the receiver")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", LevelDebug},
		{"WARN", LevelWarn},
		{"Error", LevelError},
		{"info", LevelInfo},
		{"verbose", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidLevels(t *testing.T) {
	levels := ValidLevels()
	if len(levels) != 4 {
		t.Fatalf("ValidLevels() returned %d levels, want 4", len(levels))
	}
	for _, l := range levels {
		if ParseLevel(l) != l {
			t.Errorf("ParseLevel(%q) did not round trip", l)
		}
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.Info("discarded", "k", "v")
	logger.WithComponent("x").Error("discarded")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
}

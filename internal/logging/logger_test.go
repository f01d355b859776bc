package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	WithComponent(logger, "pipeline").Info("run started", Int("files", 3))

	line := buf.String()
	if !strings.Contains(line, " INFO pipeline: run started") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "files=3") {
		t.Fatalf("missing attr in console line: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Warn("downgrade", String("reason", "no intel cpu"))

	if !strings.Contains(buf.String(), `reason="no intel cpu"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info record to be suppressed, got %q", buf.String())
	}
	logger.Error("shown")
	if !strings.Contains(buf.String(), "ERROR") {
		t.Fatalf("expected error record, got %q", buf.String())
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	for _, value := range []string{"", "info", "bogus"} {
		if got := parseLevel(value); got != slog.LevelInfo {
			t.Fatalf("parseLevel(%q) = %v, want info", value, got)
		}
	}
	if got := parseLevel("debug"); got != slog.LevelDebug {
		t.Fatalf("parseLevel(debug) = %v", got)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

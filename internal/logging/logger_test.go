package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerOutputShape(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelInfo)

	logger := slog.New(newConsoleHandler(&buf, levelVar))
	logger = NewComponentLogger(logger, "dispatcher")
	logger.Warn("webhook send failed", String(FieldProvider, "SLACK"), Int("status", 500))

	line := buf.String()
	if !strings.Contains(line, " WARN dispatcher: webhook send failed") {
		t.Fatalf("unexpected line shape: %q", line)
	}
	if !strings.Contains(line, "provider=SLACK") {
		t.Fatalf("expected provider attr in %q", line)
	}
	if !strings.Contains(line, "status=500") {
		t.Fatalf("expected status attr in %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be folded into the prefix: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))
	logger.Info("sent", String("title", "Build Failed"))

	if !strings.Contains(buf.String(), `title="Build Failed"`) {
		t.Fatalf("expected quoted value in %q", buf.String())
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)

	logger := slog.New(newConsoleHandler(&buf, levelVar))
	logger.Info("should be dropped")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Fatalf("info line leaked past warn level: %q", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDoesNotPanic(t *testing.T) {
	NewNop().Error("ignored", Error(nil))
}

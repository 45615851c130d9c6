package logging_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"mvvideos/internal/logging"
)

func TestLevelFromVerbosity(t *testing.T) {
	cases := []struct {
		count int
		want  slog.Level
	}{
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{3, logging.LevelTrace},
		{7, logging.LevelTrace},
	}
	for _, tc := range cases {
		if got := logging.LevelFromVerbosity(tc.count); got != tc.want {
			t.Fatalf("LevelFromVerbosity(%d) = %v, want %v", tc.count, got, tc.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, err := logging.ParseLevel("trace"); err != nil || lvl != logging.LevelTrace {
		t.Fatalf("ParseLevel(trace) = %v, %v", lvl, err)
	}
	if _, err := logging.ParseLevel("noisy"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestConsoleHandlerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{Level: slog.LevelWarn, Writer: &buf})

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "WARN") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestConsoleHandlerComponentOverride(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{
		Level:           slog.LevelWarn,
		Writer:          &buf,
		ComponentLevels: map[string]slog.Level{"discovery": slog.LevelDebug},
	})

	logger.With(logging.String("component", "discovery")).Debug("verbose discovery detail")
	logger.With(logging.String("component", "mover")).Debug("quiet mover detail")

	out := buf.String()
	if !strings.Contains(out, "verbose discovery detail") {
		t.Fatalf("override should surface discovery debug records: %q", out)
	}
	if strings.Contains(out, "quiet mover detail") {
		t.Fatalf("non-overridden component must keep the base level: %q", out)
	}
	if !strings.Contains(out, "[discovery]") {
		t.Fatalf("component should render in brackets: %q", out)
	}
}

func TestConsoleHandlerRendersAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Options{Level: slog.LevelInfo, Writer: &buf})

	logger.Info("planned", logging.Int("moves", 2), logging.String("dest", "/flat dir"))

	out := buf.String()
	if !strings.Contains(out, "moves=2") {
		t.Fatalf("int attr missing: %q", out)
	}
	if !strings.Contains(out, `dest="/flat dir"`) {
		t.Fatalf("string attr with spaces should be quoted: %q", out)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("goes nowhere", logging.Error(nil))
}

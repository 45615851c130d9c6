package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// LevelTrace sits below slog.LevelDebug for -vvv output.
const LevelTrace = slog.LevelDebug - 4

// Options describes logger construction parameters.
type Options struct {
	Level           slog.Level
	Writer          io.Writer
	Color           bool
	ComponentLevels map[string]slog.Level
}

// New constructs a logger backed by the console handler.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	return slog.New(newConsoleHandler(w, opts.Level, opts.Color, opts.ComponentLevels))
}

// LevelFromVerbosity maps counted -v occurrences to a level:
// 0 warn, 1 info, 2 debug, 3 and above trace.
func LevelFromVerbosity(count int) slog.Level {
	switch {
	case count <= 0:
		return slog.LevelWarn
	case count == 1:
		return slog.LevelInfo
	case count == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// ParseLevel reads a level name from configuration.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// ColorEnabled resolves the configured color mode ("auto", "always",
// "never") against whether w is a terminal.
func ColorEnabled(mode string, w io.Writer) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true
	case "never":
		return false
	default:
		f, ok := w.(*os.File)
		return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	}
}

package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/fatih/color"
)

// consoleHandler renders records as single human-readable lines:
//
//	15:04:05 INFO  [pipeline] discovery finished candidates=12
//
// Per-component levels override the base level when a "component" attribute
// is present on the record or the logger.
type consoleHandler struct {
	mu        *sync.Mutex
	writer    io.Writer
	level     slog.Level
	minLevel  slog.Level
	overrides map[string]slog.Level
	attrs     []slog.Attr
	groups    []string

	trace *color.Color
	debug *color.Color
	info  *color.Color
	warn  *color.Color
	err   *color.Color
}

func newConsoleHandler(w io.Writer, level slog.Level, colored bool, overrides map[string]slog.Level) *consoleHandler {
	minLevel := level
	for _, lvl := range overrides {
		if lvl < minLevel {
			minLevel = lvl
		}
	}
	h := &consoleHandler{
		mu:        &sync.Mutex{},
		writer:    w,
		level:     level,
		minLevel:  minLevel,
		overrides: overrides,
		trace:     color.New(color.FgMagenta),
		debug:     color.New(color.FgBlue),
		info:      color.New(color.FgGreen),
		warn:      color.New(color.FgYellow),
		err:       color.New(color.FgRed),
	}
	for _, c := range []*color.Color{h.trace, h.debug, h.info, h.warn, h.err} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return h
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.minLevel
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	component := ""
	attrs := make([]slog.Attr, 0, len(h.attrs)+record.NumAttrs())
	attrs = append(attrs, h.attrs...)
	record.Attrs(func(attr slog.Attr) bool {
		attrs = append(attrs, h.qualify(attr))
		return true
	})
	for _, attr := range attrs {
		if attr.Key == "component" {
			component = attr.Value.String()
			break
		}
	}

	effective := h.level
	if component != "" {
		if lvl, ok := h.overrides[component]; ok {
			effective = lvl
		}
	}
	if record.Level < effective {
		return nil
	}

	timestamp := record.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var buf bytes.Buffer
	buf.Grow(128 + len(attrs)*24)
	buf.WriteString(timestamp.Format("15:04:05"))
	buf.WriteByte(' ')
	buf.WriteString(h.levelLabel(record.Level))
	if component != "" {
		buf.WriteString(" [")
		buf.WriteString(component)
		buf.WriteByte(']')
	}
	buf.WriteByte(' ')
	buf.WriteString(record.Message)
	for _, attr := range attrs {
		if attr.Key == "" || attr.Key == "component" {
			continue
		}
		buf.WriteByte(' ')
		buf.WriteString(attr.Key)
		buf.WriteByte('=')
		buf.WriteString(formatValue(attr.Value))
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, attr := range attrs {
		clone.attrs = append(clone.attrs, h.qualify(attr))
	}
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

func (h *consoleHandler) qualify(attr slog.Attr) slog.Attr {
	for i := len(h.groups) - 1; i >= 0; i-- {
		attr.Key = h.groups[i] + "." + attr.Key
	}
	return attr
}

func (h *consoleHandler) levelLabel(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return h.trace.Sprint("TRACE")
	case level < slog.LevelInfo:
		return h.debug.Sprint("DEBUG")
	case level < slog.LevelWarn:
		return h.info.Sprint("INFO ")
	case level < slog.LevelError:
		return h.warn.Sprint("WARN ")
	default:
		return h.err.Sprint("ERROR")
	}
}

func formatValue(v slog.Value) string {
	v = v.Resolve()
	s := v.String()
	if v.Kind() == slog.KindString && needsQuoting(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuoting(s string) bool {
	for _, r := range s {
		if r == ' ' || r == '"' || r == '=' || r < 0x20 {
			return true
		}
	}
	return false
}

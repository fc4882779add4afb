package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	MaxSize    = 100 // megabytes
	MaxBackups = 3
	MaxAge     = 28 // days
)

// ConsoleHandler writes every record as JSON to the underlying handler and,
// when a console writer is set, as one colored line for humans.
type ConsoleHandler struct {
	handler slog.Handler
	console io.Writer
	attrs   []slog.Attr
	mu      *sync.Mutex
}

func NewConsoleHandler(console io.Writer, jsonWriter io.Writer, level slog.Level, service string) *ConsoleHandler {
	handler := slog.NewJSONHandler(jsonWriter, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.String("timestamp", a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}).WithAttrs([]slog.Attr{slog.String("service", service)})

	return &ConsoleHandler{handler: handler, console: console, mu: &sync.Mutex{}}
}

func (h *ConsoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *ConsoleHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.handler.Handle(ctx, r); err != nil {
		return err
	}
	if h.console == nil {
		return nil
	}

	var colorFn func(format string, args ...interface{}) string
	switch {
	case r.Level >= slog.LevelError:
		colorFn = color.New(color.FgRed).Sprintf
	case r.Level >= slog.LevelWarn:
		colorFn = color.New(color.FgYellow).Sprintf
	case r.Level >= slog.LevelInfo:
		colorFn = color.New(color.FgGreen).Sprintf
	default:
		colorFn = color.New(color.FgCyan).Sprintf
	}

	attrs := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		attrs = append(attrs, fmt.Sprintf("%s=%v", a.Key, a.Value))
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, fmt.Sprintf("%s=%v", a.Key, a.Value))
		return true
	})

	message := r.Message
	if len(attrs) > 0 {
		message = message + " " + strings.Join(attrs, " ")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.console, "%s %s %s\n",
		color.New(color.FgBlue).Sprintf("%s", r.Time.Format("2006-01-02 15:04:05.000")),
		colorFn("%-5s", r.Level.String()),
		message,
	)
	return err
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &ConsoleHandler{handler: h.handler.WithAttrs(attrs), console: h.console, attrs: merged, mu: h.mu}
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	return &ConsoleHandler{handler: h.handler.WithGroup(name), console: h.console, attrs: h.attrs, mu: h.mu}
}

type Options struct {
	Service  string
	Level    string
	FilePath string
	// Console enables the colored stdout line next to the JSON output.
	Console io.Writer
}

// New builds the process logger. JSON goes to a rotating file when FilePath
// is set, otherwise to the console writer.
func New(opts Options) *slog.Logger {
	var jsonWriter io.Writer = io.Discard
	console := opts.Console
	if opts.FilePath != "" {
		jsonWriter = &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    MaxSize,
			MaxBackups: MaxBackups,
			MaxAge:     MaxAge,
			Compress:   true,
		}
	} else if console != nil {
		jsonWriter, console = console, nil
	}

	return slog.New(NewConsoleHandler(console, jsonWriter, ParseLevel(opts.Level), opts.Service))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

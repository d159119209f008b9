package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"portfolio-site/internal/config"
)

// Setup installs the logger built from cfg as the process default and
// returns it.
func Setup(cfg *config.Config) *slog.Logger {
	logger := New(os.Stdout, cfg)
	slog.SetDefault(logger)
	return logger
}

// New builds a logger writing to w. Every record is tagged with the app
// name and environment, and ERROR records carry a stack trace.
func New(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Log.Level),
		AddSource: cfg.Log.Source,
	}

	var h slog.Handler
	if strings.EqualFold(cfg.Log.Format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	return slog.New(&stackHandler{Handler: h}).With(
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
	)
}

func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Fatal logs at Error level and exits with code 1.
func Fatal(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}

// stackHandler appends the calling goroutine's stack to ERROR records.
type stackHandler struct {
	slog.Handler
}

func (h *stackHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level < slog.LevelError {
		return h.Handler.Handle(ctx, r)
	}
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	r.AddAttrs(slog.String("stacktrace", string(buf[:n])))
	return h.Handler.Handle(ctx, r)
}

func (h *stackHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &stackHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *stackHandler) WithGroup(name string) slog.Handler {
	return &stackHandler{Handler: h.Handler.WithGroup(name)}
}

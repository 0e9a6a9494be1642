package logger

import (
	"log/slog"
	"os"
)

// Logger emits one JSON line per event with a stable service/action shape.
type Logger struct {
	sl *slog.Logger
}

func New(service string) *Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &Logger{sl: slog.New(h).With(
		slog.String("service", service),
		slog.String("hostname", hostname()),
	)}
}

// With returns a child logger carrying extra permanent attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{sl: l.sl.With(args...)}
}

func (l *Logger) Info(action string, args ...any)  { l.sl.Info(action, args...) }
func (l *Logger) Debug(action string, args ...any) { l.sl.Debug(action, args...) }

func (l *Logger) Error(action string, err error, args ...any) {
	if err != nil {
		args = append(args, slog.String("error", err.Error()))
	}
	l.sl.Error(action, args...)
}

func hostname() string { h, _ := os.Hostname(); return h }

package observability

import (
	"log/slog"
	"os"
)

type Logger struct {
	*slog.Logger
}

// NewLogger builds a JSON slog logger tagged with the service name.
func NewLogger(serviceName string) *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	logger := slog.New(handler).With("service", serviceName)
	return &Logger{logger}
}

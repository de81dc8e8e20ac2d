package logging

import (
	"log/slog"
	"os"
)

// New builds the process-wide JSON logger. Level comes from LOG_LEVEL
// (debug|info|warn|error), defaulting to info.
func New(service string) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
		level = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(h).With("service", service)
}

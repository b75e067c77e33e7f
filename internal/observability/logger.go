package observability

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide structured logger. Debug flips the level;
// everything else stays at the slog defaults so log shipping can parse the
// output without per-service configuration.
func NewLogger(service string, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("service", service))
}

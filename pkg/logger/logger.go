package logger

import (
	"log/slog"
	"os"
)

// Log is the shared application logger. It defaults to a plain JSON handler
// so packages can log before Init runs (tests, early startup).
var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

func Init() {
	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	Log = slog.New(handler)
	slog.SetDefault(Log)
}

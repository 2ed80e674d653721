package logger

import (
	"log/slog"
	"os"
)

// New returns a JSON slog logger writing to stdout. Services log through
// *Context variants so request IDs travel with the entry.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

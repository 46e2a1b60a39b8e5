package logging

import (
	"log/slog"
	"os"
	"strings"
)

// NewStdoutHandler builds the JSON handler every process writes through.
// LOG_LEVEL (debug, info, warn, error) adjusts verbosity; the default is
// info.
func NewStdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level()})
}

// Setup installs the stdout handler as the process-wide default. The
// server later swaps in a fanout that adds database persistence for
// error records.
func Setup() {
	slog.SetDefault(slog.New(NewStdoutHandler()))
}

func level() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

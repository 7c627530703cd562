// Package log builds the zerolog loggers used by scrapekit binaries.
package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const (
	jsonEnv  = "SCRAPEKIT_LOG_JSON"
	levelEnv = "SCRAPEKIT_LOG_LEVEL"
)

// New returns a logger for binaries: JSON to stderr when running
// non-interactively (Kubernetes, or SCRAPEKIT_LOG_JSON set), console
// output otherwise. SCRAPEKIT_LOG_LEVEL selects the minimum level by
// zerolog name (trace, debug, info, warn, error); unset or unparseable
// means info.
func New() *zerolog.Logger {
	var output io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02T15:04:05.999Z07:00",
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" || os.Getenv(jsonEnv) != "" {
		output = os.Stderr
	}
	return NewWithWriter(output, LevelFromEnv())
}

// NewWithWriter returns a logger writing to w, emitting events at or
// above level.
func NewWithWriter(w io.Writer, level zerolog.Level) *zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &logger
}

// LevelFromEnv reads the minimum level from SCRAPEKIT_LOG_LEVEL, falling
// back to info when unset or unparseable.
func LevelFromEnv() zerolog.Level {
	raw := os.Getenv(levelEnv)
	if raw == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(raw)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

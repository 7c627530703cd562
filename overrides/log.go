package overrides

import "log/slog"

// NullWriter is a writer that discards all data.
type NullWriter struct{}

func (NullWriter) Write([]byte) (int, error) { return 0, nil }

// NullLogger creates a logger that discards all output.
func NullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(NullWriter{}, nil))
}

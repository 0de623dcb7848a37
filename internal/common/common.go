// Package common holds small helpers shared by the generator packages.
package common

import "log/slog"

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// Logger returns l, or a logger that discards everything when l is nil.
func Logger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}

	return l
}

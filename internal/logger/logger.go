// Package logger provides the zerolog logger used for verbose feature
// diagnostics. Only the Verbose option paths write to it.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	std = New(zerolog.ConsoleWriter{Out: os.Stderr}, zerolog.InfoLevel)
)

// New builds a logger writing to w at the given level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// NewConsole builds a human-readable console logger at the given level.
func NewConsole(level zerolog.Level) zerolog.Logger {
	return New(zerolog.ConsoleWriter{Out: os.Stderr}, level)
}

// Std returns the shared diagnostics logger.
func Std() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return std
}

// SetStd replaces the shared diagnostics logger.
func SetStd(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	std = l
}

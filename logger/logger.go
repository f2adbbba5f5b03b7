// Package logger provides a zerolog logger shared by the cq backend.
//
// It follows the pattern of github.com/consensys/gnark/logger: a single
// package-level logger with a configurable sink and level. It writes to
// stderr at every level until reconfigured; Disable silences it, after
// which zerolog no-ops cheaply.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	logger zerolog.Logger
	mu     sync.RWMutex
)

func init() {
	logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Logger returns the current global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetOutput redirects the logger to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Output(w)
}

// SetLevel sets the minimum level of logged messages.
func SetLevel(lvl zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(lvl)
}

// Disable silences the logger entirely.
func Disable() {
	SetLevel(zerolog.Disabled)
}

// Package dlog provides the decompression engine's optional diagnostic
// logging. The engine is silent by default; a caller who wants a trace of
// stop iterations, gas switches, and divergence warnings can point the
// package at a sink, mirroring the Enable/Disable debug toggle used
// elsewhere in the dive-tooling ecosystem for log playback tools.
package dlog

import (
	"io"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  = zerolog.New(io.Discard).With().Timestamp().Logger()
)

// Enable turns diagnostic logging on, writing structured events to w.
func Enable(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = zerolog.New(w).With().Timestamp().Logger()
	enabled = true
}

// Disable turns diagnostic logging off. Calls to the logging helpers below
// become no-ops.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
	logger = zerolog.New(io.Discard).With().Timestamp().Logger()
}

// Debugf logs a low-level tracing message (stop loop iterations, ceiling
// checks) when logging is enabled.
func Debugf(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled {
		return
	}
	logger.Debug().Msgf(format, args...)
}

// Warnf logs an operational condition (ppO2 overrun, reverse profile,
// insufficient gas) that the caller should also see surfaced as a Warning
// value in the returned profile.
func Warnf(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled {
		return
	}
	logger.Warn().Msgf(format, args...)
}

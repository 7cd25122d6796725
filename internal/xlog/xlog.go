// Package xlog is the engine's structured logger, adapted from the
// project's original zerolog setup (caller-annotated console writer, unix
// time format) into a small key-value helper so call sites don't each
// build their own zerolog.Event chain.
package xlog

import (
	"github.com/rs/zerolog"

	"github.com/itohio/tensorgraph/pkg/logger"
)

// Log is the shared logger instance every package in this module writes
// through — the package's caller-annotated console logger, reused as-is.
var Log = logger.Log

// fields turns a flat key, value, key, value... slice into a zerolog
// context, skipping a trailing unpaired key.
func fields(e *zerolog.Event, kv []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, kv[i+1])
	}
	return e
}

// Debug logs msg at debug level with the given alternating key/value pairs.
func Debug(msg string, kv ...interface{}) {
	fields(Log.Debug(), kv).Msg(msg)
}

// Info logs msg at info level with the given alternating key/value pairs.
func Info(msg string, kv ...interface{}) {
	fields(Log.Info(), kv).Msg(msg)
}

// Error logs msg at error level, attaching err and the given alternating
// key/value pairs.
func Error(err error, msg string, kv ...interface{}) {
	fields(Log.Error().Err(err), kv).Msg(msg)
}

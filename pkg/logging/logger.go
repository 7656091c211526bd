// Package logging wraps log/slog with the contextual helpers this module's
// components attach to every log line: which transaction, table, page or
// lock a message concerns.
package logging

import (
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
)

// Logger is a thin wrapper around *slog.Logger. Each With* method returns a
// derived Logger rather than mutating the receiver, so a base logger can be
// shared and specialized per call site without aliasing surprises.
type Logger struct {
	inner *slog.Logger
}

// New constructs a Logger that writes structured text to os.Stderr at the
// given level.
func New(level slog.Level) *Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{inner: slog.New(h)}
}

// Nop returns a Logger that discards everything; useful in tests that don't
// care about log output.
func Nop() *Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1})
	return &Logger{inner: slog.New(h)}
}

func (l *Logger) with(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

// WithComponent tags subsequent log lines with the subsystem emitting them
// (e.g. "bufferpool", "lockmanager").
func (l *Logger) WithComponent(name string) *Logger {
	return l.with("component", name)
}

// WithTxn tags subsequent log lines with a transaction identifier.
func (l *Logger) WithTxn(tid any) *Logger {
	return l.with("tid", tid)
}

// WithTable tags subsequent log lines with a table identifier.
func (l *Logger) WithTable(tableID any) *Logger {
	return l.with("table", tableID)
}

// WithPage tags subsequent log lines with a page identifier.
func (l *Logger) WithPage(pageID any) *Logger {
	return l.with("page", pageID)
}

// WithLock tags subsequent log lines with a lock mode.
func (l *Logger) WithLock(mode any) *Logger {
	return l.with("lock", mode)
}

// WithRequest tags subsequent log lines with a lock request identifier, so
// a wait-then-grant (or wait-then-timeout) pair can be correlated in logs
// even when many transactions contend for the same page concurrently.
func (l *Logger) WithRequest(id any) *Logger {
	return l.with("request", id)
}

// WithError tags subsequent log lines with an error value.
func (l *Logger) WithError(err error) *Logger {
	return l.with("error", err)
}

// WithBytes tags subsequent log lines with a human-readable byte count
// (cache size, flushed page bytes).
func (l *Logger) WithBytes(n int) *Logger {
	return l.with("bytes", humanize.Bytes(uint64(n))) // #nosec G115
}

func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

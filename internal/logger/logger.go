// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the sync daemon and the Web GIS server.
//
// [Logger] embeds zerolog.Logger, so the whole zerolog API is available on
// it. Request- and session-scoped loggers travel in a context and are read
// back with [FromContext] or [FromRequest].
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Logger struct {
	zerolog.Logger
}

func configureGlobals(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"
}

func newLogger(w io.Writer, role string) *Logger {
	l := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()
	return &Logger{l}
}

// NewLogger returns a JSON logger writing to stdout with "role", timestamp and
// caller function fields. The global level is Debug.
func NewLogger(role string) *Logger {
	configureGlobals(zerolog.DebugLevel)
	return newLogger(os.Stdout, role)
}

// NewFileLogger is like NewLogger but appends to path, creating parent
// directories. It falls back to stdout when the file cannot be opened.
func NewFileLogger(role, path string) *Logger {
	configureGlobals(zerolog.DebugLevel)

	if path == "" {
		return newLogger(os.Stdout, role)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return newLogger(os.Stdout, role)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return newLogger(os.Stdout, role)
	}
	return newLogger(f, role)
}

// Nop discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy that can be enriched without touching l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithSession returns a child logger tagged with the layer and session id
// of a sync session.
func (l *Logger) WithSession(layerID, sessionID string) *Logger {
	return &Logger{l.With().Str("layer_id", layerID).Str("session_id", sessionID).Logger()}
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*log.Ctx(r.Context())}
}

// FromContext returns the logger attached to ctx. Without one, zerolog's
// default context logger is returned, never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

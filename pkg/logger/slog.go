// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/phsym/console-slog"
)

// SlogLogger implements Logger on top of log/slog with a console handler.
type SlogLogger struct {
	logger *slog.Logger
	level  *slog.LevelVar
}

// NewConsole creates a Logger that writes human-readable output to w.
// If w is nil, os.Stderr is used.
func NewConsole(level Level, w io.Writer) Logger {
	if w == nil {
		w = os.Stderr
	}
	lv := &slog.LevelVar{}
	lv.Set(toSlogLevel(level))
	handler := console.NewHandler(w, &console.HandlerOptions{
		Level: lv,
	})
	return &SlogLogger{
		logger: slog.New(handler),
		level:  lv,
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewConsole(ErrorLevel+1, io.Discard)
}

func (l *SlogLogger) Debug(msg string, keysAndValues ...any) {
	l.log(slog.LevelDebug, msg, keysAndValues...)
}

func (l *SlogLogger) Info(msg string, keysAndValues ...any) {
	l.log(slog.LevelInfo, msg, keysAndValues...)
}

func (l *SlogLogger) Warn(msg string, keysAndValues ...any) {
	l.log(slog.LevelWarn, msg, keysAndValues...)
}

func (l *SlogLogger) Error(msg string, keysAndValues ...any) {
	l.log(slog.LevelError, msg, keysAndValues...)
}

func (l *SlogLogger) With(keysAndValues ...any) Logger {
	return &SlogLogger{
		logger: l.logger.With(keysAndValues...),
		level:  l.level,
	}
}

func (l *SlogLogger) SetLevel(level Level) {
	l.level.Set(toSlogLevel(level))
}

func (l *SlogLogger) log(level slog.Level, msg string, args ...any) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, level) {
		return
	}
	l.logger.Log(ctx, level, msg, args...)
}

func toSlogLevel(level Level) slog.Level {
	switch {
	case level <= DebugLevel:
		return slog.LevelDebug
	case level == InfoLevel:
		return slog.LevelInfo
	case level == WarnLevel:
		return slog.LevelWarn
	case level == ErrorLevel:
		return slog.LevelError
	default:
		// Above ErrorLevel: effectively disabled.
		return slog.LevelError + 4
	}
}

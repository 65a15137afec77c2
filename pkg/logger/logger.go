// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

// Package logger defines a common logging interface for sweepbench packages,
// allowing the CLI, the panel service, and tests to plug in different
// logging implementations.
package logger

// Level indicates the logging severity level.
type Level = int8

const (
	// DebugLevel logs are typically voluminous, and are usually disabled in production.
	DebugLevel Level = iota - 1
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs are more important than Info, but don't need individual
	// human review.
	WarnLevel
	// ErrorLevel logs are high-priority. If an application is running smoothly,
	// it shouldn't generate any error-level logs.
	ErrorLevel
)

// Logger defines a common interface for structured logging.
type Logger interface {
	// Debug logs a message at DebugLevel with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)
	// Info logs a message at InfoLevel with optional key-value pairs.
	Info(msg string, keysAndValues ...any)
	// Warn logs a message at WarnLevel with optional key-value pairs.
	Warn(msg string, keysAndValues ...any)
	// Error logs a message at ErrorLevel with optional key-value pairs.
	Error(msg string, keysAndValues ...any)
	// With creates a child logger and adds structured context to it.
	With(keysAndValues ...any) Logger
	// SetLevel sets the minimum enabled level for this logger.
	SetLevel(level Level)
}

// Package logger provides structured logging for the CatchDB CLI.
//
// It wraps log/slog:
//
//   - logger.go: configuration, level control and the Logger interface
//   - context.go: context-carried loggers and per-command IDs
//
// Output goes to stderr by default. When a file is configured it is written
// through a size-rotated lumberjack sink instead.
package logger

package logger

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	commandKey
)

type command struct {
	id   string
	name string
}

// WithLogger stores l in ctx.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithCommand tags ctx with a fresh command ID for one shell or exec
// command named name.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, command{id: ulid.Make().String(), name: name})
}

// CommandID returns the ID set by WithCommand, or "".
func CommandID(ctx context.Context) string {
	if c, ok := ctx.Value(commandKey).(command); ok {
		return c.id
	}
	return ""
}

// L returns the context logger with the command attributes attached.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)
	if c, ok := ctx.Value(commandKey).(command); ok {
		l = l.With("command_id", c.id, "command", c.name)
	}
	return l
}

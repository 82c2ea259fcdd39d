package logging

import (
	"log/slog"
)

// WithComponent creates a logger with component/subsystem context.
//
// Example:
//
//	log := logging.WithComponent("relational")
//	log.Debug("merge evaluated", "rows", n)
func WithComponent(component string) *slog.Logger {
	return GetLogger().With("component", component)
}

// WithColumn creates a logger with column (series name) context.
//
// Example:
//
//	log := logging.WithColumn("price")
//	log.Debug("sorting", "len", len(values))
func WithColumn(name string) *slog.Logger {
	return GetLogger().With("column", name)
}

// WithOp creates a logger with both component and operation context.
func WithOp(component, op string) *slog.Logger {
	return GetLogger().With("component", component, "op", op)
}

// WithError creates a logger with error context.
//
// Example:
//
//	log := logging.WithError(err)
//	log.Warn("merge rejected", "key", key)
func WithError(err error) *slog.Logger {
	return GetLogger().With("error", err.Error())
}

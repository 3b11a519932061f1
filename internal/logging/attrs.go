package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldFile is the standardized structured logging key for scene file paths.
	FieldFile = "file"
	// FieldAnimation is the standardized structured logging key for animation indices.
	FieldAnimation = "animation"
	// FieldSampler is the standardized structured logging key for sampler indices.
	FieldSampler = "sampler"
	// FieldAccessor is the standardized structured logging key for accessor indices.
	FieldAccessor = "accessor"
	// FieldRunID is the standardized structured logging key for repair run identifiers.
	FieldRunID = "run_id"
)

// Error wraps an error as a structured attribute.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger creates a logger with a standardized component
// attribute. If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }

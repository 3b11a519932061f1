// Package logging constructs the process-wide slog logger and defines the
// standardized structured field keys used across the repair pipeline.
//
// Two output formats exist: a compact console format for interactive use
// and JSON for machine consumption. Components obtain child loggers through
// NewComponentLogger so every record carries a component attribute.
package logging

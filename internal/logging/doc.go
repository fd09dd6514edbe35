// Package logging builds the slog loggers used across bookvert.
//
// Two output formats exist: a compact console format for interactive
// runs and JSON lines for machine consumption. Every run carries a
// correlation ID in its context so log lines from one conversion can be
// grouped after the fact.
package logging

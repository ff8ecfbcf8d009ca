// Package logging assembles structured slog loggers and formatting helpers used
// across bandplanner.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so recoverable failures (a corrupt
// stored value, a rejected import) are logged with the same event_type,
// error_hint, and impact fields everywhere. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
package logging

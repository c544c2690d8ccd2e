// Package logging assembles the slog loggers used by landmarkprep commands.
//
// It owns the console and JSON handlers, routes log lines to stderr so job
// results on stdout stay machine readable, optionally mirrors them into a
// JSON log file, and tags lines with component names and per-run IDs. A no-op
// logger is available for tests and library callers that pass nil.
package logging

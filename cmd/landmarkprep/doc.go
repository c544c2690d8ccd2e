// Package main hosts the landmarkprep CLI entrypoint and command graph.
//
// The Cobra command tree exposes the dataset preparation jobs (max-frame,
// split) and configuration scaffolding. It resolves configuration once,
// builds the structured logger, and runs preflight checks so the internal
// packages only deal with the job itself. Job results go to stdout; logs go
// to stderr.
package main

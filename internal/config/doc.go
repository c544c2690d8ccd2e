// Package config loads, normalizes, and validates landmarkprep configuration.
//
// It supplies the dataset layout defaults (data directory, manifest, source
// and split directories), expands user paths including tilde shortcuts,
// resolves relative dataset paths against the data directory, reads TOML
// files, and honours the LANDMARKPREP_DATA_DIR environment fallback.
//
// Always obtain settings through this package so the jobs receive absolute
// paths and a validated worker count.
package config

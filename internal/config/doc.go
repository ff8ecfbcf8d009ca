// Package config loads, normalizes, and validates bandplanner configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and overlays BANDPLANNER_* environment
// variables. The Config type centralizes every knob the CLI needs so the data
// directory, storage backend, and ordering policy are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config

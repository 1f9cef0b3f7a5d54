// Package config loads, normalizes, and validates karaoke configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// STORAGE_DIR, ALIGNER_ENGINE, and HF_TOKEN. The Config type centralizes every
// knob the CLI and the job daemon need: storage roots, the alignment engine,
// render defaults, and external tool locations.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config

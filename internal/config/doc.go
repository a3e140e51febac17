// Package config loads, normalizes, and validates streamsift configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: export and output directories, scanner thresholds, extra
// detector rules, sanitizer skip lists, report ranking sizes, and log
// settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, compiled-checked detector patterns, and clear validation
// errors.
package config

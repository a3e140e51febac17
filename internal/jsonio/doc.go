// Package jsonio centralizes JSON file access for the pipeline.
//
// Every stage reads and writes documents through this package so the codec
// (goccy/go-json), the pretty-printed two-space output format, and the
// write-to-temp-then-rename atomicity guarantee stay uniform. A crashed run
// never leaves a truncated report behind.
package jsonio

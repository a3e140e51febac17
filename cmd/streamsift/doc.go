// Package main hosts the streamsift CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into pipeline
// stage executions: merging an export archive, scanning it for sensitive
// data, producing the sanitized copy, and generating the diagnostic report.
// It centralizes configuration resolution and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main

// Package services defines shared utilities consumed by the pipeline stages.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that keep stage failures
//     consistent and classifiable (configuration vs validation vs transient).
//   - Context helpers that stamp stage names and run identifiers on contexts
//     for logging.
//
// Use these helpers when wiring new stage logic so operational behaviour
// (error handling, observability) stays uniform across the pipeline.
package services

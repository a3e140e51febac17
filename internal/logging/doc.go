// Package logging builds slog loggers for the pipeline CLI.
//
// It supports a human-oriented console format and a machine-oriented JSON
// format, selected through configuration. The console handler prints a
// timestamped header line with the component and stage, followed by indented
// attribute lines, so stage progress stays readable during a run.
//
// Components obtain a tagged logger via WithComponent so every record carries
// a stable "component" attribute.
package logging

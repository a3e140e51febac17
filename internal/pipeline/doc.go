// Package pipeline sequences the processing stages end to end.
//
// A Runner executes merge, scan, sanitize and report in order under a
// lockfile so only one pipeline works against an output directory at a
// time. Stage failures are recorded and do not stop later stages; each
// script-style stage stands alone, so a report over partial outputs is
// still worth producing.
package pipeline

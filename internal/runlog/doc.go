// Package runlog persists a ledger of pipeline runs in SQLite.
//
// The ledger is observational: the pipeline records when a run started,
// how each stage ended and the headline counters, and the runs command
// lists them. No stage ever reads the ledger back to make decisions.
package runlog

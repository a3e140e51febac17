// Package merge consolidates a raw export archive into a single document.
//
// It concatenates streaming-history files (JSON arrays only), playlist files
// (objects with a "playlists" array), and an allow-listed subset of the
// well-known account files, then cleans the streaming records and writes one
// merged JSON document. Per-file failures are logged and skipped; no single
// malformed file aborts the merge.
package merge

// Package export models a user's exported personal-data archive.
//
// It defines the streaming record and playlist types shared by every
// pipeline stage, the validation and coercion rules for raw export entries,
// and the discovery helpers that locate export files under the fixed
// vendor-named folders.
package export

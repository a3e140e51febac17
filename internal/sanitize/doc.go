// Package sanitize produces a publishable copy of an export archive.
//
// The sanitizer mirrors the account-data and extended-history folders into
// an output directory, dropping files on the skip list, removing fields
// whose names look sensitive and redacting pattern matches inside string
// values. It also derives two reduced safe datasets (streaming history and
// playlists) and writes an auditable report of everything it did.
package sanitize

// Package report computes descriptive statistics over the merged dataset
// and renders them as a JSON diagnostic report and a console dashboard.
//
// The reporter is read-only with respect to the listening data: it loads
// the merged document (falling back to the safe datasets), aggregates
// streaming, artist, track, playlist and temporal statistics, folds in the
// privacy and sanitization reports when present, and writes a single
// diagnostic document. The quick summary is a reduced console-only view of
// the same inputs.
package report

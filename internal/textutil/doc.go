// Package textutil provides small text helpers shared by the report
// renderers: rune-aware truncation with ellipsis and locale-aware count
// formatting.
package textutil

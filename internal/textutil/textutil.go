package textutil

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var countPrinter = message.NewPrinter(language.English)

// Truncate shortens s to at most limit runes, appending "..." when anything
// was cut. A non-positive limit returns s unchanged.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// FormatCount renders n with thousands separators ("12,345").
func FormatCount(n int64) string {
	return countPrinter.Sprintf("%d", n)
}

package privacy

import (
	"fmt"
	"regexp"

	"streamsift/internal/config"
)

// Detector pairs a named pattern with the placeholder the sanitizer
// substitutes for its matches.
type Detector struct {
	Name        string
	Pattern     *regexp.Regexp
	Placeholder string
}

// Builtin returns the ordered built-in detector table. The order matters:
// the sanitizer applies placeholders in this sequence, so earlier detectors
// win when patterns overlap (an IP inside a URI is already rewritten by the
// time the URI rule runs).
func Builtin() []Detector {
	return []Detector{
		{
			Name:        "ip_addresses",
			Pattern:     regexp.MustCompile(`\b(?:[0-9]{1,3}\.){3}[0-9]{1,3}\b`),
			Placeholder: "[IP_ADDRESS]",
		},
		{
			Name:        "email_addresses",
			Pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
			Placeholder: "[EMAIL]",
		},
		{
			Name:        "device_ids",
			Pattern:     regexp.MustCompile(`\b[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\b`),
			Placeholder: "[DEVICE_ID]",
		},
		{
			Name:        "spotify_uris",
			Pattern:     regexp.MustCompile(`spotify:(?:track|album|artist|playlist|user):[a-zA-Z0-9]+`),
			Placeholder: "[SPOTIFY_URI]",
		},
		{
			Name:        "mac_addresses",
			Pattern:     regexp.MustCompile(`\b(?:[0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}\b`),
			Placeholder: "[MAC_ADDRESS]",
		},
		{
			Name:        "phone_numbers",
			Pattern:     regexp.MustCompile(`\b\+?[1-9]\d{1,14}\b`),
			Placeholder: "[PHONE]",
		},
		{
			Name:        "credit_cards",
			Pattern:     regexp.MustCompile(`\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`),
			Placeholder: "[CREDIT_CARD]",
		},
	}
}

// Detectors returns the built-in table followed by any user-configured
// rules.
func Detectors(extra []config.DetectorRule) ([]Detector, error) {
	detectors := Builtin()
	for _, rule := range extra {
		pattern, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("detector %q: %w", rule.Name, err)
		}
		placeholder := rule.Placeholder
		if placeholder == "" {
			placeholder = "[REDACTED]"
		}
		detectors = append(detectors, Detector{
			Name:        rule.Name,
			Pattern:     pattern,
			Placeholder: placeholder,
		})
	}
	return detectors, nil
}

// DetectorNames lists the table's pattern names in order.
func DetectorNames(detectors []Detector) []string {
	names := make([]string, 0, len(detectors))
	for _, d := range detectors {
		names = append(names, d.Name)
	}
	return names
}

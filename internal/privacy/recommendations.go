package privacy

import (
	"fmt"
	"strings"

	"streamsift/internal/export"
)

// buildRecommendations derives advisory text from the findings. The output
// is informational only; nothing downstream branches on it.
func buildRecommendations(report *Report) []string {
	var recommendations []string

	if len(report.RiskyFiles) == 0 {
		return append(recommendations, "All files appear to be safe for publication")
	}

	recommendations = append(recommendations,
		fmt.Sprintf("Found %d files with potential sensitive data", len(report.RiskyFiles)))

	for _, group := range issueTypeCounts(report) {
		recommendations = append(recommendations,
			fmt.Sprintf("  - %s: %d instances found", group.label, group.count))
	}

	if anyFileContains(report, export.TechnicalLogDir) {
		recommendations = append(recommendations,
			fmt.Sprintf("RECOMMENDATION: Consider excluding the %q directory entirely", export.TechnicalLogDir))
	}
	if anyIssueContains(report, "ip_addresses") {
		recommendations = append(recommendations,
			"RECOMMENDATION: Remove or anonymize IP addresses before publishing")
	}
	if anyIssueContains(report, "email_addresses") {
		recommendations = append(recommendations,
			"RECOMMENDATION: Remove or redact email addresses before publishing")
	}
	if anyIssueContains(report, "device_ids") {
		recommendations = append(recommendations,
			"RECOMMENDATION: Remove or anonymize device IDs before publishing")
	}

	return recommendations
}

type issueGroup struct {
	label string
	count int
}

// issueTypeCounts buckets issues into the headline categories, preserving a
// fixed display order.
func issueTypeCounts(report *Report) []issueGroup {
	buckets := map[string]int{}
	for _, file := range report.RiskyFiles {
		for _, issue := range file.Issues {
			switch {
			case strings.Contains(issue, "ip_addresses"):
				buckets["IP Addresses"]++
			case strings.Contains(issue, "email_addresses"):
				buckets["Email Addresses"]++
			case strings.Contains(issue, "device_ids"):
				buckets["Device IDs"]++
			case strings.Contains(issue, "spotify_uris"):
				buckets["Spotify URIs"]++
			default:
				buckets["Other"]++
			}
		}
	}

	var groups []issueGroup
	for _, label := range []string{"IP Addresses", "Email Addresses", "Device IDs", "Spotify URIs", "Other"} {
		if count := buckets[label]; count > 0 {
			groups = append(groups, issueGroup{label: label, count: count})
		}
	}
	return groups
}

func anyFileContains(report *Report, substr string) bool {
	for file := range report.SensitiveDataFound {
		if strings.Contains(file, substr) {
			return true
		}
	}
	return false
}

func anyIssueContains(report *Report, substr string) bool {
	for _, issues := range report.SensitiveDataFound {
		for _, issue := range issues {
			if strings.Contains(issue, substr) {
				return true
			}
		}
	}
	return false
}

package privacy

import (
	"strings"

	"streamsift/internal/config"
)

// RiskTier is the coarse sensitivity classification of a field name.
type RiskTier string

const (
	RiskHigh   RiskTier = "high_risk"
	RiskMedium RiskTier = "medium_risk"
	RiskLow    RiskTier = "low_risk"
)

// FieldRule classifies field names containing the (case-insensitive)
// substring Name.
type FieldRule struct {
	Name string
	Tier RiskTier
}

var highRiskFields = []string{
	"ip_addr", "ipAddress", "ip_address", "ipAddrDecrypted",
	"email", "emailAddress", "email_address",
	"phone", "phoneNumber", "phone_number",
	"deviceId", "device_id", "deviceIdDecrypted",
	"macAddress", "mac_address",
	"creditCard", "credit_card", "cardNumber",
	"password", "token", "accessToken", "refreshToken",
	"sessionId", "session_id",
	"userId", "user_id", "username",
	"address", "street", "city", "zip", "postalCode",
	"ssn", "socialSecurity", "passport",
}

var mediumRiskFields = []string{
	"location", "latitude", "longitude", "gps",
	"timezone", "timeZone",
	"language", "locale",
	"platform", "os", "operatingSystem",
	"browser", "userAgent",
	"connection", "network", "wifi",
	"bluetooth", "bluetoothAddress",
}

var lowRiskFields = []string{
	"timestamp", "date", "time",
	"duration", "msPlayed",
	"trackName", "artistName", "albumName",
	"playlistName", "playlist_name",
}

// FieldRules returns the ordered three-tier field-name table.
func FieldRules() []FieldRule {
	rules := make([]FieldRule, 0, len(highRiskFields)+len(mediumRiskFields)+len(lowRiskFields))
	for _, name := range highRiskFields {
		rules = append(rules, FieldRule{Name: name, Tier: RiskHigh})
	}
	for _, name := range mediumRiskFields {
		rules = append(rules, FieldRule{Name: name, Tier: RiskMedium})
	}
	for _, name := range lowRiskFields {
		rules = append(rules, FieldRule{Name: name, Tier: RiskLow})
	}
	return rules
}

// FieldRulesWith returns the built-in table followed by one rule per
// configured detector carrying a risk label: field names containing the
// detector's name are flagged at that tier.
func FieldRulesWith(extra []config.DetectorRule) []FieldRule {
	rules := FieldRules()
	for _, rule := range extra {
		tier, ok := tierForRisk(rule.Risk)
		if !ok {
			continue
		}
		rules = append(rules, FieldRule{Name: rule.Name, Tier: tier})
	}
	return rules
}

func tierForRisk(risk string) (RiskTier, bool) {
	switch risk {
	case "high":
		return RiskHigh, true
	case "medium":
		return RiskMedium, true
	case "low":
		return RiskLow, true
	default:
		return "", false
	}
}

// RemovalFields returns the field-name substrings the sanitizer strips
// entirely: the high and medium tiers. The low tier names the essential
// listening data and must survive sanitization.
func RemovalFields() []string {
	fields := make([]string, 0, len(highRiskFields)+len(mediumRiskFields))
	fields = append(fields, highRiskFields...)
	fields = append(fields, mediumRiskFields...)
	return fields
}

// MatchesField reports whether the key matches the rule by case-insensitive
// substring.
func (r FieldRule) MatchesField(key string) bool {
	return strings.Contains(strings.ToLower(key), strings.ToLower(r.Name))
}

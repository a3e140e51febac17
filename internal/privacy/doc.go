// Package privacy holds the detection rules shared by the scanner and the
// sanitizer, plus the scanner itself.
//
// Detection is heuristic by design: an ordered table of regex detectors
// (IP addresses, emails, device IDs, vendor URIs, MAC addresses,
// phone-shaped and card-shaped digit runs) and a three-tier field-name risk
// table. The phone and large-number rules are known to produce false
// positives on timestamps and durations; thresholds are configurable rather
// than silently tightened.
package privacy

package fingerprint

import "strings"

// First match wins; order is significant (Chrome UAs also contain "Safari").
var browserRules = []struct {
	needle string
	label  string
}{
	{"Firefox", "Firefox"},
	{"Chrome", "Chrome"},
	{"Safari", "Safari"},
	{"Edge", "Edge"},
	{"Opera", "Opera"},
}

var osRules = []struct {
	needle string
	label  string
}{
	{"Win", "Windows"},
	{"Mac", "macOS"},
	{"Linux", "Linux"},
	{"Android", "Android"},
	{"iOS", "iOS"},
}

// ClassifyBrowser maps a user-agent string to a coarse browser label.
// Returns "Unknown" when no rule matches.
func ClassifyBrowser(userAgent string) string {
	for _, rule := range browserRules {
		if strings.Contains(userAgent, rule.needle) {
			return rule.label
		}
	}
	return "Unknown"
}

// ClassifyOS maps a user-agent string to a coarse operating system label.
// Returns "Unknown" when no rule matches.
func ClassifyOS(userAgent string) string {
	for _, rule := range osRules {
		if strings.Contains(userAgent, rule.needle) {
			return rule.label
		}
	}
	return "Unknown"
}

package emit

import "strings"

// EventSource derives the default bus source identifier from the document
// title, e.g. "Bill Events" becomes "bill.events". Runs of non-alphanumeric
// characters collapse into a single dot.
func EventSource(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	if slug == "" {
		return "schemagen.events"
	}
	var b strings.Builder
	lastDot := true
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDot = false
			continue
		}
		if !lastDot {
			b.WriteRune('.')
			lastDot = true
		}
	}
	return strings.TrimSuffix(b.String(), ".")
}

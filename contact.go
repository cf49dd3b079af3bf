package mailscout

import "strings"

// DefaultContactPattern is the substring that marks an href as a contact page.
const DefaultContactPattern = "/contact"

// FindContactLink returns the first href whose lowercased form contains
// pattern, in the order the renderer supplied them. Nil entries are anchors
// without an href and are skipped. An empty pattern means DefaultContactPattern.
//
// The heuristic misses pages such as "/get-in-touch" and matches
// "/contactless-payment"; both are accepted.
func FindContactLink(hrefs []*string, pattern string) (string, bool) {
	if pattern == "" {
		pattern = DefaultContactPattern
	}
	pattern = strings.ToLower(pattern)

	for _, href := range hrefs {
		if href == nil || *href == "" {
			continue
		}
		if strings.Contains(strings.ToLower(*href), pattern) {
			return *href, true
		}
	}
	return "", false
}

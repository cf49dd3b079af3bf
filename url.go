package mailscout

import "strings"

// NavigableURL returns rawURL with an https scheme when it has none, so
// bare hosts like "example.com" from input files can be loaded. The site's
// identity in outputs stays the original string.
func NavigableURL(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	if s == "" || strings.Contains(s, "://") {
		return s
	}
	return "https://" + strings.TrimPrefix(s, "//")
}

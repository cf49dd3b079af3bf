package mailscout

import "strings"

// DefaultIgnorePrefixes lists the local-part prefixes of role mailboxes
// that are dropped from the filtered output.
var DefaultIgnorePrefixes = []string{
	"support@",
	"info@",
	"noreply@",
	"contact@",
	"admin@",
	"webmaster@",
}

// FilterGeneric returns the rows whose lowercased email does not start with
// any of prefixes. Surviving rows keep their relative order; no rows are
// added. Prefixes are compared as given, so callers pass them lowercased.
func FilterGeneric(rows []EmailRow, prefixes []string) []EmailRow {
	out := make([]EmailRow, 0, len(rows))
	for _, row := range rows {
		if hasAnyPrefix(strings.ToLower(row.Email), prefixes) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// GenericFilter drops rows addressed to role mailboxes.
type GenericFilter struct {
	prefixes []string
}

// NewGenericFilter returns a filter for the given prefixes, lowercased.
// With no prefixes it uses DefaultIgnorePrefixes.
func NewGenericFilter(prefixes ...string) *GenericFilter {
	if len(prefixes) == 0 {
		prefixes = DefaultIgnorePrefixes
	}
	f := &GenericFilter{prefixes: make([]string, 0, len(prefixes))}
	for _, p := range prefixes {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			f.prefixes = append(f.prefixes, p)
		}
	}
	return f
}

// Prefixes returns the configured prefixes.
func (f *GenericFilter) Prefixes() []string {
	out := make([]string, len(f.prefixes))
	copy(out, f.prefixes)
	return out
}

// Filter applies FilterGeneric with the configured prefixes.
func (f *GenericFilter) Filter(rows []EmailRow) []EmailRow {
	return FilterGeneric(rows, f.prefixes)
}

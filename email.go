package mailscout

import (
	"regexp"
	"sort"
)

// emailPattern matches addresses. It also accepts some invalid forms, such
// as consecutive dots or a leading hyphen in the domain.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// EmailSet is an unordered set of email addresses found on one site.
// Addresses are stored as matched, without case normalization.
type EmailSet map[string]struct{}

// NewEmailSet returns a set holding the given addresses.
func NewEmailSet(emails ...string) EmailSet {
	s := make(EmailSet, len(emails))
	for _, e := range emails {
		s.Add(e)
	}
	return s
}

// Add inserts an address. Empty strings are ignored.
func (s EmailSet) Add(email string) {
	if email == "" {
		return
	}
	s[email] = struct{}{}
}

// Union adds every address of other to s.
func (s EmailSet) Union(other EmailSet) {
	for e := range other {
		s.Add(e)
	}
}

// Contains reports whether the address is in the set.
func (s EmailSet) Contains(email string) bool {
	_, ok := s[email]
	return ok
}

// Len returns the number of addresses.
func (s EmailSet) Len() int {
	return len(s)
}

// Sorted returns the addresses in lexical order.
func (s EmailSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// ExtractEmails returns every substring of text that looks like an email
// address. Empty or non-matching input yields an empty set.
func ExtractEmails(text string) EmailSet {
	set := make(EmailSet)
	if text == "" {
		return set
	}
	for _, m := range emailPattern.FindAllString(text, -1) {
		set.Add(m)
	}
	return set
}

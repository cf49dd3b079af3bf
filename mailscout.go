// Package mailscout extracts contact email addresses from websites.
// It renders each site's homepage and a heuristically discovered contact
// page, harvests addresses with a regular expression, deduplicates them per
// site and filters out generic role mailboxes before writing the results.
//
// This package contains domain types, the pure extraction and filtering
// logic, and the interfaces implemented by adapters. Implementations live in
// subdirectories named after their primary dependency (e.g., rod/, sqlite/,
// goquery/).
package mailscout

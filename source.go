package mailscout

import "context"

// SiteSource supplies the sites to scrape.
type SiteSource interface {
	// ReadSites returns site URLs in input order, trimmed, without empty
	// entries. Returns ENOTFOUND if the source is missing and EINVALID if
	// it is malformed.
	ReadSites(ctx context.Context) ([]string, error)
}

// RowWriter persists flattened result rows.
type RowWriter interface {
	WriteRows(ctx context.Context, rows []EmailRow) error
}

// SiteScraper collects the addresses of a single site.
type SiteScraper interface {
	// ScrapeSite never fails: problems are logged and yield fewer (or no)
	// addresses.
	ScrapeSite(ctx context.Context, url string) EmailSet
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

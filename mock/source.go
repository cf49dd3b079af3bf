package mock

import (
	"context"

	"github.com/fwojciec/mailscout"
)

var _ mailscout.SiteSource = (*SiteSource)(nil)

// SiteSource is a mock implementation of mailscout.SiteSource.
type SiteSource struct {
	ReadSitesFn func(ctx context.Context) ([]string, error)
}

func (s *SiteSource) ReadSites(ctx context.Context) ([]string, error) {
	return s.ReadSitesFn(ctx)
}

var _ mailscout.RowWriter = (*RowWriter)(nil)

// RowWriter is a mock implementation of mailscout.RowWriter.
type RowWriter struct {
	WriteRowsFn func(ctx context.Context, rows []mailscout.EmailRow) error
}

func (w *RowWriter) WriteRows(ctx context.Context, rows []mailscout.EmailRow) error {
	return w.WriteRowsFn(ctx, rows)
}

var _ mailscout.SiteScraper = (*SiteScraper)(nil)

// SiteScraper is a mock implementation of mailscout.SiteScraper.
type SiteScraper struct {
	ScrapeSiteFn func(ctx context.Context, url string) mailscout.EmailSet
}

func (s *SiteScraper) ScrapeSite(ctx context.Context, url string) mailscout.EmailSet {
	return s.ScrapeSiteFn(ctx, url)
}

var _ mailscout.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of mailscout.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

package harvest

import (
	"context"
	"log/slog"

	"github.com/fwojciec/mailscout"
)

// ProgressEvent reports progress after each site.
type ProgressEvent struct {
	URL       string
	Completed int
	Total     int
	Emails    int
}

// ProgressFunc is a callback for reporting collection progress.
type ProgressFunc func(event ProgressEvent)

// Collector scrapes a batch of sites sequentially.
type Collector struct {
	Scraper mailscout.SiteScraper
	Logger  *slog.Logger
}

// Collect scrapes urls in order, one at a time, and returns the sites that
// yielded at least one address. A failing site never stops the batch.
// A scraper panic is logged and counts as a site without addresses.
// The progress callback, if provided, is called after each site.
func (c *Collector) Collect(ctx context.Context, urls []string, progress ProgressFunc) *mailscout.SiteEmailMap {
	logger := loggerOrDiscard(c.Logger)
	result := mailscout.NewSiteEmailMap()

	for i, u := range urls {
		emails := c.scrape(ctx, logger, u)
		result.Set(u, emails)

		if progress != nil {
			progress(ProgressEvent{
				URL:       u,
				Completed: i + 1,
				Total:     len(urls),
				Emails:    emails.Len(),
			})
		}
	}

	if result.Len() == 0 {
		logger.Info("no emails found on any site", "sites", len(urls))
	}
	return result
}

func (c *Collector) scrape(ctx context.Context, logger *slog.Logger, u string) (emails mailscout.EmailSet) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("scraping website panicked", "url", u, "panic", r)
			emails = mailscout.NewEmailSet()
		}
	}()
	return c.Scraper.ScrapeSite(ctx, u)
}

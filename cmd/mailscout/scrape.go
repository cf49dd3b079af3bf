package main

import (
	"fmt"

	"github.com/fwojciec/mailscout"
	"github.com/fwojciec/mailscout/fs"
	"github.com/fwojciec/mailscout/harvest"
	msslog "github.com/fwojciec/mailscout/slog"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	logger := deps.log()

	if deps.Renderer == nil {
		fmt.Fprintln(deps.Stderr, "error: no renderer configured")
		return mailscout.Errorf(mailscout.EINTERNAL, "no renderer configured")
	}

	scraper := &harvest.Scraper{
		Renderer:       deps.Renderer,
		ContactPattern: c.ContactPattern,
		Logger:         logger,
	}
	if c.Rate > 0 {
		scraper.RateLimiter = harvest.NewDomainLimiter(c.Rate)
	}

	pipeline := &harvest.Pipeline{
		Sites:     fs.NewSiteFile(c.Input),
		Collector: &harvest.Collector{Scraper: scraper, Logger: logger},
		Filter:    mailscout.NewGenericFilter(c.IgnorePrefix...),
		Raw:       msslog.NewLoggingRowWriter(fs.NewRowFile(c.Raw), "raw", logger),
		Filtered:  msslog.NewLoggingRowWriter(fs.NewRowFile(c.Filtered), "filtered", logger),
		Runs:      deps.Runs,
		Logger:    logger,
	}

	progress := func(event harvest.ProgressEvent) {
		fmt.Fprintf(deps.Stdout, "  [%d/%d] %s: %d emails\n", event.Completed, event.Total, event.URL, event.Emails)
	}

	result, err := pipeline.Run(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	switch {
	case result.Sites == 0:
		fmt.Fprintf(deps.Stdout, "No websites to process in %s\n", c.Input)
	case result.SitesWithEmails == 0:
		fmt.Fprintf(deps.Stdout, "No emails found on %d sites\n", result.Sites)
	default:
		fmt.Fprintf(deps.Stdout, "Saved %d emails from %d of %d sites to %s\n",
			result.RawRows, result.SitesWithEmails, result.Sites, c.Raw)
		fmt.Fprintf(deps.Stdout, "Saved %d emails after filtering to %s\n", result.FilteredRows, c.Filtered)
	}
	if result.RunID != "" {
		fmt.Fprintf(deps.Stdout, "Recorded run %s\n", result.RunID)
	}

	return nil
}

package harvest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/mailscout"
)

// Pipeline runs the whole extraction: read sites, collect addresses, write
// the raw rows, filter generic addresses and write the filtered rows.
type Pipeline struct {
	Sites     mailscout.SiteSource
	Collector *Collector
	Filter    *mailscout.GenericFilter
	Raw       mailscout.RowWriter
	Filtered  mailscout.RowWriter

	// Runs, if set, records every run that read at least one site.
	Runs mailscout.RunStore

	Logger *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Result summarizes a pipeline run.
type Result struct {
	RunID           string
	Sites           int
	SitesWithEmails int
	RawRows         int
	FilteredRows    int
}

// Run executes the pipeline. Unreadable or empty input is not an error: it
// is logged and an empty Result is returned. When no site yields an
// address, no rows are written. Errors writing outputs are returned.
func (p *Pipeline) Run(ctx context.Context, progress ProgressFunc) (*Result, error) {
	logger := loggerOrDiscard(p.Logger)
	now := p.Now
	if now == nil {
		now = time.Now
	}
	started := now().UTC()

	sites, err := p.Sites.ReadSites(ctx)
	if err != nil {
		logger.Error("reading websites", "err", err)
		return &Result{}, nil
	}
	if len(sites) == 0 {
		logger.Info("no websites to process")
		return &Result{}, nil
	}

	found := p.Collector.Collect(ctx, sites, progress)
	raw := found.Rows()

	filter := p.Filter
	if filter == nil {
		filter = mailscout.NewGenericFilter()
	}
	filtered := filter.Filter(raw)

	result := &Result{
		Sites:           len(sites),
		SitesWithEmails: found.Len(),
		RawRows:         len(raw),
		FilteredRows:    len(filtered),
	}

	if found.Len() > 0 {
		if err := p.Raw.WriteRows(ctx, raw); err != nil {
			return nil, fmt.Errorf("writing raw emails: %w", err)
		}
		logger.Info("raw emails saved", "rows", len(raw))

		if err := p.Filtered.WriteRows(ctx, filtered); err != nil {
			return nil, fmt.Errorf("writing filtered emails: %w", err)
		}
		logger.Info("filtered emails saved", "rows", len(filtered), "dropped", len(raw)-len(filtered))
	}

	if p.Runs != nil {
		run := &mailscout.Run{
			Sites:      len(sites),
			Raw:        raw,
			Filtered:   filtered,
			StartedAt:  started,
			FinishedAt: now().UTC(),
		}
		if err := p.Runs.CreateRun(ctx, run); err != nil {
			return nil, fmt.Errorf("recording run: %w", err)
		}
		result.RunID = run.ID
	}

	return result, nil
}

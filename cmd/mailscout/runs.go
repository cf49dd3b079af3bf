package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/mailscout"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	if c.ID != "" {
		return c.show(deps)
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, mailscout.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailscout.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'mailscout scrape' to start one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d sites  %s\n",
			r.ID, r.StartedAt.UTC().Format(time.RFC3339), r.Sites, r.FinishedAt.Sub(r.StartedAt).Round(time.Second))
	}

	return nil
}

// show prints the rows of one run.
func (c *RunsCmd) show(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailscout.ErrorMessage(err))
		return err
	}

	rows := run.Filtered
	if c.Raw {
		rows = run.Raw
	}

	fmt.Fprintf(deps.Stdout, "Run %s: %d sites, %d raw, %d filtered\n", run.ID, run.Sites, len(run.Raw), len(run.Filtered))
	for _, row := range rows {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", row.Website, row.Email)
	}

	return nil
}

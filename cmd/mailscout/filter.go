package main

import (
	"fmt"

	"github.com/fwojciec/mailscout"
	"github.com/fwojciec/mailscout/fs"
	msslog "github.com/fwojciec/mailscout/slog"
)

// Run executes the filter command.
func (c *FilterCmd) Run(deps *Dependencies) error {
	logger := deps.log()

	rows, err := fs.NewRowFile(c.Input).ReadRows(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailscout.ErrorMessage(err))
		return err
	}

	filtered := mailscout.NewGenericFilter(c.IgnorePrefix...).Filter(rows)

	out := msslog.NewLoggingRowWriter(fs.NewRowFile(c.Output), "filtered", logger)
	if err := out.WriteRows(deps.Ctx, filtered); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Kept %d of %d emails in %s\n", len(filtered), len(rows), c.Output)
	return nil
}

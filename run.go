package mailscout

import (
	"context"
	"time"
)

// Run records one execution of the pipeline.
type Run struct {
	ID         string     `json:"id"`
	Sites      int        `json:"sites"`
	Raw        []EmailRow `json:"raw"`
	Filtered   []EmailRow `json:"filtered"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt time.Time  `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.StartedAt.IsZero() {
		return Errorf(EINVALID, "run start time required")
	}
	if r.FinishedAt.Before(r.StartedAt) {
		return Errorf(EINVALID, "run cannot finish before it starts")
	}
	return nil
}

// RunStore persists pipeline runs.
type RunStore interface {
	// CreateRun stores a run and its rows, assigning its ID.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run with its rows.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs, newest first, without their rows.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/mailscout"
	main "github.com/fwojciec/mailscout/cmd/mailscout"
	"github.com/fwojciec/mailscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunsCmd_Run(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC)

	t.Run("lists runs with ID, start time and site count", func(t *testing.T) {
		t.Parallel()

		var gotFilter mailscout.RunFilter
		runs := &mock.RunStore{
			FindRunsFn: func(_ context.Context, filter mailscout.RunFilter) ([]*mailscout.Run, error) {
				gotFilter = filter
				return []*mailscout.Run{
					{ID: "run-2", Sites: 4, StartedAt: started.Add(time.Hour), FinishedAt: started.Add(time.Hour + 90*time.Second)},
					{ID: "run-1", Sites: 2, StartedAt: started, FinishedAt: started.Add(time.Minute)},
				}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Runs: runs}

		err := (&main.RunsCmd{Limit: 5}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 5, gotFilter.Limit)
		output := stdout.String()
		assert.Contains(t, output, "run-2  2026-02-03T10:00:00Z  4 sites  1m30s")
		assert.Contains(t, output, "run-1  2026-02-03T09:00:00Z  2 sites  1m0s")
	})

	t.Run("shows helpful message when no runs exist", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunStore{
			FindRunsFn: func(_ context.Context, _ mailscout.RunFilter) ([]*mailscout.Run, error) {
				return nil, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Runs: runs}

		require.NoError(t, (&main.RunsCmd{}).Run(deps))

		assert.Contains(t, stdout.String(), "No runs recorded")
	})

	t.Run("returns error when FindRuns fails", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("database connection failed")
		runs := &mock.RunStore{
			FindRunsFn: func(_ context.Context, _ mailscout.RunFilter) ([]*mailscout.Run, error) {
				return nil, dbErr
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Runs: runs}

		err := (&main.RunsCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, dbErr, err)
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("shows filtered rows of one run", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunStore{
			FindRunByIDFn: func(_ context.Context, id string) (*mailscout.Run, error) {
				assert.Equal(t, "run-1", id)
				return &mailscout.Run{
					ID:       "run-1",
					Sites:    2,
					Raw:      []mailscout.EmailRow{{Website: "a.test", Email: "info@a.test"}, {Website: "a.test", Email: "jane@a.test"}},
					Filtered: []mailscout.EmailRow{{Website: "a.test", Email: "jane@a.test"}},
				}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Runs: runs}

		require.NoError(t, (&main.RunsCmd{ID: "run-1"}).Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "Run run-1: 2 sites, 2 raw, 1 filtered")
		assert.Contains(t, output, "a.test  jane@a.test")
		assert.NotContains(t, output, "info@a.test")
	})

	t.Run("shows raw rows with --raw", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunStore{
			FindRunByIDFn: func(_ context.Context, _ string) (*mailscout.Run, error) {
				return &mailscout.Run{
					ID:  "run-1",
					Raw: []mailscout.EmailRow{{Website: "a.test", Email: "info@a.test"}},
				}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Runs: runs}

		require.NoError(t, (&main.RunsCmd{ID: "run-1", Raw: true}).Run(deps))

		assert.Contains(t, stdout.String(), "a.test  info@a.test")
	})

	t.Run("reports unknown run", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunStore{
			FindRunByIDFn: func(_ context.Context, _ string) (*mailscout.Run, error) {
				return nil, mailscout.Errorf(mailscout.ENOTFOUND, "run not found")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Runs: runs}

		err := (&main.RunsCmd{ID: "nope"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, mailscout.ENOTFOUND, mailscout.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: run not found")
	})
}

package mock

import (
	"context"

	"github.com/fwojciec/mailscout"
)

var _ mailscout.RunStore = (*RunStore)(nil)

// RunStore is a mock implementation of mailscout.RunStore.
type RunStore struct {
	CreateRunFn   func(ctx context.Context, run *mailscout.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*mailscout.Run, error)
	FindRunsFn    func(ctx context.Context, filter mailscout.RunFilter) ([]*mailscout.Run, error)
}

func (s *RunStore) CreateRun(ctx context.Context, run *mailscout.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunStore) FindRunByID(ctx context.Context, id string) (*mailscout.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunStore) FindRuns(ctx context.Context, filter mailscout.RunFilter) ([]*mailscout.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

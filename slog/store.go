package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mailscout"
)

// Ensure LoggingRowWriter implements mailscout.RowWriter.
var _ mailscout.RowWriter = (*LoggingRowWriter)(nil)

// LoggingRowWriter wraps a RowWriter and logs each write under a name such
// as "raw" or "filtered".
type LoggingRowWriter struct {
	next   mailscout.RowWriter
	name   string
	logger *slog.Logger
}

// NewLoggingRowWriter creates a new LoggingRowWriter.
func NewLoggingRowWriter(next mailscout.RowWriter, name string, logger *slog.Logger) *LoggingRowWriter {
	return &LoggingRowWriter{next: next, name: name, logger: logger}
}

// WriteRows delegates to the wrapped writer and logs the operation.
func (w *LoggingRowWriter) WriteRows(ctx context.Context, rows []mailscout.EmailRow) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write rows",
			"output", w.name,
			"rows", len(rows),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteRows(ctx, rows)
}

// Ensure LoggingRunStore implements mailscout.RunStore.
var _ mailscout.RunStore = (*LoggingRunStore)(nil)

// LoggingRunStore wraps a RunStore with debug logging.
type LoggingRunStore struct {
	next   mailscout.RunStore
	logger *slog.Logger
}

// NewLoggingRunStore creates a new LoggingRunStore.
func NewLoggingRunStore(next mailscout.RunStore, logger *slog.Logger) *LoggingRunStore {
	return &LoggingRunStore{next: next, logger: logger}
}

// CreateRun delegates to the wrapped store and logs the stored run.
func (s *LoggingRunStore) CreateRun(ctx context.Context, run *mailscout.Run) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create run",
			"id", run.ID,
			"sites", run.Sites,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRun(ctx, run)
}

// FindRunByID delegates to the wrapped store.
func (s *LoggingRunStore) FindRunByID(ctx context.Context, id string) (*mailscout.Run, error) {
	return s.next.FindRunByID(ctx, id)
}

// FindRuns delegates to the wrapped store.
func (s *LoggingRunStore) FindRuns(ctx context.Context, filter mailscout.RunFilter) ([]*mailscout.Run, error) {
	return s.next.FindRuns(ctx, filter)
}

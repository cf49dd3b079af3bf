package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fwojciec/mailscout"
	"github.com/google/uuid"
)

const (
	kindRaw      = "raw"
	kindFiltered = "filtered"
)

// Compile-time interface verification.
var _ mailscout.RunStore = (*RunService)(nil)

// RunService implements mailscout.RunStore using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun stores a run with its raw and filtered rows in one transaction.
// Rows repeated within a kind are stored once.
func (s *RunService) CreateRun(ctx context.Context, run *mailscout.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	id := uuid.New().String()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, sites, started_at, finished_at)
		VALUES (?, ?, ?, ?)
	`, id, run.Sites, formatTime(run.StartedAt), formatTime(run.FinishedAt)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO emails (run_id, kind, position, website, email, fingerprint)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for kind, rows := range map[string][]mailscout.EmailRow{kindRaw: run.Raw, kindFiltered: run.Filtered} {
		for i, row := range rows {
			if _, err := stmt.ExecContext(ctx, id, kind, i, row.Website, row.Email,
				fingerprint(row.Website, row.Email)); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	run.ID = id
	return nil
}

// FindRunByID retrieves a run with its rows.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*mailscout.Run, error) {
	var run mailscout.Run
	var startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, sites, started_at, finished_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.Sites, &startedAt, &finishedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, mailscout.Errorf(mailscout.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
		return nil, err
	}

	if err := s.attachRows(ctx, &run); err != nil {
		return nil, err
	}

	return &run, nil
}

// FindRuns retrieves runs newest first, without their rows.
func (s *RunService) FindRuns(ctx context.Context, filter mailscout.RunFilter) ([]*mailscout.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, sites, started_at, finished_at FROM runs ORDER BY started_at DESC, id DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*mailscout.Run
	for rows.Next() {
		var run mailscout.Run
		var startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &run.Sites, &startedAt, &finishedAt); err != nil {
			return nil, err
		}
		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// attachRows loads the raw and filtered rows of run in stored order.
func (s *RunService) attachRows(ctx context.Context, run *mailscout.Run) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, website, email
		FROM emails
		WHERE run_id = ?
		ORDER BY kind, position
	`, run.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var row mailscout.EmailRow
		if err := rows.Scan(&kind, &row.Website, &row.Email); err != nil {
			return err
		}
		switch kind {
		case kindRaw:
			run.Raw = append(run.Raw, row)
		case kindFiltered:
			run.Filtered = append(run.Filtered, row)
		}
	}

	return rows.Err()
}

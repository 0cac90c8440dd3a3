package postgres

import (
	"context"
	"database/sql"
	"fmt"

	dashboardpg "firehose-dashboard/internal/dashboard/adapters/postgres"
	"firehose-dashboard/internal/runs/core/domain"
	"firehose-dashboard/internal/runs/core/ports"
)

// DB is satisfied by *sql.DB and *sql.Tx.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const insertRunSQL = `
INSERT INTO %s (
    name,
    date,
    reason
) VALUES (
    $1, $2, $3
)`

type RunRepository struct {
	db    DB
	query string
}

var _ ports.RunRepositoryPort = (*RunRepository)(nil)

// NewRunRepository writes into the same table the dashboard reads.
func NewRunRepository(db DB, table string) (*RunRepository, error) {
	quoted, err := dashboardpg.QuoteTable(table)
	if err != nil {
		return nil, err
	}
	return &RunRepository{
		db:    db,
		query: fmt.Sprintf(insertRunSQL, quoted),
	}, nil
}

func (r *RunRepository) InsertRun(ctx context.Context, run *domain.Run) error {
	reason, err := run.Reason()
	if err != nil {
		return fmt.Errorf("encode reason: %w", err)
	}

	res, err := r.db.ExecContext(ctx, r.query, run.Name, run.ExecutedAt.UTC(), reason)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	if rows != 1 {
		return fmt.Errorf("insert run: expected 1 row affected, got %d", rows)
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"firehose-dashboard/internal/dashboard/core/domain"
	"firehose-dashboard/internal/dashboard/core/ports"

	"github.com/lib/pq"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

var ErrInvalidTableName = errors.New("invalid table name")

const selectRecordsSQL = `
SELECT name, date, reason
FROM %s
WHERE name = $1 AND date >= $2
ORDER BY date DESC`

type RecordRepository struct {
	db    DB
	query string
}

var _ ports.RecordReaderPort = (*RecordRepository)(nil)

func NewRecordRepository(db DB, table string) (*RecordRepository, error) {
	quoted, err := QuoteTable(table)
	if err != nil {
		return nil, err
	}
	return &RecordRepository{
		db:    db,
		query: fmt.Sprintf(selectRecordsSQL, quoted),
	}, nil
}

// QuoteTable quotes a plain or schema-qualified table name.
func QuoteTable(table string) (string, error) {
	if table == "" {
		return "", ErrInvalidTableName
	}
	parts := strings.Split(table, ".")
	if len(parts) > 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}
	for i, p := range parts {
		if p == "" {
			return "", fmt.Errorf("%w: %q", ErrInvalidTableName, table)
		}
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, "."), nil
}

func (r *RecordRepository) FetchRecords(ctx context.Context, f ports.RecordFilter) ([]domain.Record, error) {
	// date is a naive timestamp holding UTC wall-clock time.
	rows, err := r.db.QueryContext(ctx, r.query, f.Name, f.Since.UTC())
	if err != nil {
		return nil, fmt.Errorf("query status records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.Record, 0)
	for rows.Next() {
		var (
			rec    domain.Record
			reason sql.NullString
		)
		if err := rows.Scan(&rec.Name, &rec.Date, &reason); err != nil {
			return nil, fmt.Errorf("scan status record: %w", err)
		}
		rec.Date = asUTC(rec.Date)
		// NULL parses like any other malformed payload
		rec.Reason = reason.String
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status records: %w", err)
	}

	return records, nil
}

// asUTC reads the wall clock of a naive timestamp as UTC, whatever zone the
// driver attached to it.
func asUTC(t time.Time) time.Time {
	y, mo, d := t.Date()
	h, mi, sec := t.Clock()
	return time.Date(y, mo, d, h, mi, sec, t.Nanosecond(), time.UTC)
}

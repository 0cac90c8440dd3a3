package ports

import (
	"context"
	"time"

	"firehose-dashboard/internal/dashboard/core/domain"
)

type RecordFilter struct {
	Name  string
	Since time.Time // inclusive
}

type RecordReaderPort interface {
	// FetchRecords returns every matching record, newest first.
	FetchRecords(ctx context.Context, f RecordFilter) ([]domain.Record, error)
}

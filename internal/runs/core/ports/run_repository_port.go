package ports

import (
	"context"

	"firehose-dashboard/internal/runs/core/domain"
)

type RunRepositoryPort interface {
	InsertRun(ctx context.Context, r *domain.Run) error
}

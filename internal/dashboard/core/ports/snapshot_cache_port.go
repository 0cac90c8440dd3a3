package ports

import (
	"context"
	"time"

	"firehose-dashboard/internal/dashboard/core/domain"
)

type SnapshotCachePort interface {
	// Get reports found=false on a miss; err is reserved for backend failures.
	Get(ctx context.Context, key string) (d *domain.Dashboard, found bool, err error)
	Set(ctx context.Context, key string, d *domain.Dashboard, ttl time.Duration) error
}

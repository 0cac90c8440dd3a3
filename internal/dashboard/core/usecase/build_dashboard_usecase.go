package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"firehose-dashboard/internal/dashboard/core/domain"
	"firehose-dashboard/internal/dashboard/core/ports"

	"go.uber.org/zap"
)

const (
	DefaultPeriod    = 30
	DefaultMaxPeriod = 365
	cacheKeyPrefix   = "firehose:dashboard"
)

var ErrInvalidPeriod = errors.New("invalid period")

// DataSourceError marks a failure to read from the status table. It is the
// only error that aborts a render after input validation.
type DataSourceError struct {
	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source unavailable: %v", e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// Recorder receives pipeline observations. observability.Metrics satisfies it.
type Recorder interface {
	CacheHit()
	CacheMiss()
	DataSourceFailure()
	RecordsFetched(n int)
	RenderDuration(d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) CacheHit()                    {}
func (nopRecorder) CacheMiss()                   {}
func (nopRecorder) DataSourceFailure()           {}
func (nopRecorder) RecordsFetched(int)           {}
func (nopRecorder) RenderDuration(time.Duration) {}

type BuildDashboardInput struct {
	Period int // 0 selects the configured default
}

type BuildDashboardUseCase struct {
	reader ports.RecordReaderPort

	cache    ports.SnapshotCachePort
	cacheTTL time.Duration

	statusName    string
	defaultPeriod int
	maxPeriod     int
	loc           *time.Location
	queryTimeout  time.Duration
	now           func() time.Time

	logger   *zap.Logger
	recorder Recorder
}

type Option func(*BuildDashboardUseCase)

func WithCache(cache ports.SnapshotCachePort, ttl time.Duration) Option {
	return func(uc *BuildDashboardUseCase) {
		uc.cache = cache
		uc.cacheTTL = ttl
	}
}

func WithStatusName(name string) Option {
	return func(uc *BuildDashboardUseCase) { uc.statusName = name }
}

func WithDefaultPeriod(n int) Option {
	return func(uc *BuildDashboardUseCase) { uc.defaultPeriod = n }
}

func WithMaxPeriod(n int) Option {
	return func(uc *BuildDashboardUseCase) { uc.maxPeriod = n }
}

func WithLocation(loc *time.Location) Option {
	return func(uc *BuildDashboardUseCase) { uc.loc = loc }
}

func WithQueryTimeout(d time.Duration) Option {
	return func(uc *BuildDashboardUseCase) { uc.queryTimeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(uc *BuildDashboardUseCase) { uc.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(uc *BuildDashboardUseCase) { uc.logger = l }
}

func WithRecorder(r Recorder) Option {
	return func(uc *BuildDashboardUseCase) { uc.recorder = r }
}

func NewBuildDashboardUseCase(reader ports.RecordReaderPort, opts ...Option) *BuildDashboardUseCase {
	uc := &BuildDashboardUseCase{
		reader:        reader,
		statusName:    domain.DefaultStatusName,
		defaultPeriod: DefaultPeriod,
		maxPeriod:     DefaultMaxPeriod,
		loc:           time.Local,
		now:           time.Now,
		logger:        zap.NewNop(),
		recorder:      nopRecorder{},
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute runs fetch, parse and aggregate for one render. Nothing is kept
// between calls unless a snapshot cache is configured.
func (uc *BuildDashboardUseCase) Execute(ctx context.Context, in BuildDashboardInput) (*domain.Dashboard, error) {
	if in.Period == 0 {
		in.Period = uc.defaultPeriod
	}
	if in.Period < 1 || in.Period > uc.maxPeriod {
		return nil, ErrInvalidPeriod
	}

	started := time.Now()
	now := uc.now().In(uc.loc)
	window := domain.NewWindow(in.Period, now)

	key := ""
	if uc.cacheEnabled() {
		key = uc.cacheKey(window, now)
		if d, ok := uc.lookup(ctx, key); ok {
			uc.recorder.RenderDuration(time.Since(started))
			return d, nil
		}
	}

	fetchCtx := ctx
	if uc.queryTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, uc.queryTimeout)
		defer cancel()
	}

	records, err := uc.reader.FetchRecords(fetchCtx, ports.RecordFilter{
		Name:  uc.statusName,
		Since: window.Start,
	})
	if err != nil {
		uc.recorder.DataSourceFailure()
		uc.logger.Error("failed to fetch status records",
			zap.String("status_name", uc.statusName),
			zap.Time("since", window.Start),
			zap.Error(err),
		)
		return nil, &DataSourceError{Err: err}
	}
	uc.recorder.RecordsFetched(len(records))

	d := domain.BuildDashboard(window, records, uc.loc)

	if key != "" {
		if err := uc.cache.Set(ctx, key, d, uc.cacheTTL); err != nil {
			uc.logger.Warn("failed to store dashboard snapshot", zap.String("key", key), zap.Error(err))
		}
	}

	uc.recorder.RenderDuration(time.Since(started))
	uc.logger.Debug("dashboard built",
		zap.Int("period", in.Period),
		zap.Int("records", d.TotalRuns),
		zap.Int("days", len(d.Daily)),
	)

	return d, nil
}

func (uc *BuildDashboardUseCase) cacheEnabled() bool {
	return uc.cache != nil && uc.cacheTTL > 0
}

// cacheKey buckets now by the TTL so a snapshot never outlives its bucket.
// The window's first day is part of the key: a bucket spanning local midnight
// must not serve yesterday's window.
func (uc *BuildDashboardUseCase) cacheKey(w domain.Window, now time.Time) string {
	bucket := now.Truncate(uc.cacheTTL).Unix()
	return fmt.Sprintf("%s:%s:%d:%s:%d",
		cacheKeyPrefix, uc.statusName, w.Period, w.Start.Format(domain.DayLayout), bucket)
}

func (uc *BuildDashboardUseCase) lookup(ctx context.Context, key string) (*domain.Dashboard, bool) {
	d, found, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("dashboard snapshot lookup failed", zap.String("key", key), zap.Error(err))
		uc.recorder.CacheMiss()
		return nil, false
	}
	if !found || d == nil {
		uc.recorder.CacheMiss()
		return nil, false
	}
	uc.recorder.CacheHit()
	return d, true
}

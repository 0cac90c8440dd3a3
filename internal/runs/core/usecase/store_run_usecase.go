package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	dashboard "firehose-dashboard/internal/dashboard/core/domain"
	"firehose-dashboard/internal/runs/core/domain"
	"firehose-dashboard/internal/runs/core/ports"

	"go.uber.org/zap"
)

var (
	ErrInvalidRun   = errors.New("invalid run")
	ErrFutureTime   = errors.New("timestamp cannot be in the future")
	ErrUnknownField = errors.New("unknown count field")
)

// Recorder is told how many runs each call persisted.
type Recorder interface {
	RunsStored(n int)
}

type nopRecorder struct{}

func (nopRecorder) RunsStored(int) {}

type StoreRunUseCase struct {
	repo     ports.RunRepositoryPort
	now      func() time.Time
	logger   *zap.Logger
	recorder Recorder
}

type Option func(*StoreRunUseCase)

func WithClock(now func() time.Time) Option {
	return func(uc *StoreRunUseCase) { uc.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(uc *StoreRunUseCase) { uc.logger = l }
}

func WithRecorder(r Recorder) Option {
	return func(uc *StoreRunUseCase) { uc.recorder = r }
}

func NewStoreRunUseCase(repo ports.RunRepositoryPort, opts ...Option) *StoreRunUseCase {
	uc := &StoreRunUseCase{
		repo:     repo,
		now:      time.Now,
		logger:   zap.NewNop(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type StoreRunInput struct {
	Name      string
	Timestamp int64
	Counts    map[string]float64
}

func (uc *StoreRunUseCase) Execute(ctx context.Context, in StoreRunInput) error {
	run, err := uc.toRun(in)
	if err != nil {
		return err
	}
	if err := uc.insert(ctx, run); err != nil {
		return err
	}
	uc.recorder.RunsStored(1)
	return nil
}

type BulkStoreRunsInput struct {
	Runs []StoreRunInput
}

type BulkStoreRunsResult struct {
	Stored int
}

// BulkStoreRuns validates every item before the first insert. Inserts stop
// at the first storage error; Stored reports how many made it.
func (uc *StoreRunUseCase) BulkStoreRuns(ctx context.Context, in BulkStoreRunsInput) (BulkStoreRunsResult, error) {
	var res BulkStoreRunsResult

	runs := make([]*domain.Run, 0, len(in.Runs))
	for i, item := range in.Runs {
		run, err := uc.toRun(item)
		if err != nil {
			return res, fmt.Errorf("runs[%d]: %w", i, err)
		}
		runs = append(runs, run)
	}

	for _, run := range runs {
		if err := uc.insert(ctx, run); err != nil {
			uc.recorder.RunsStored(res.Stored)
			return res, err
		}
		res.Stored++
	}

	uc.recorder.RunsStored(res.Stored)
	return res, nil
}

func (uc *StoreRunUseCase) insert(ctx context.Context, run *domain.Run) error {
	if err := uc.repo.InsertRun(ctx, run); err != nil {
		uc.logger.Error("failed to insert run",
			zap.String("name", run.Name),
			zap.Time("executed_at", run.ExecutedAt),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (uc *StoreRunUseCase) toRun(in StoreRunInput) (*domain.Run, error) {
	if err := uc.validateInput(in); err != nil {
		return nil, err
	}

	counts := make(map[dashboard.Field]float64, len(in.Counts))
	for k, v := range in.Counts {
		counts[dashboard.Field(k)] = v
	}

	return &domain.Run{
		Name:       in.Name,
		ExecutedAt: time.Unix(in.Timestamp, 0).UTC(),
		Counts:     counts,
	}, nil
}

func (uc *StoreRunUseCase) validateInput(in StoreRunInput) error {
	if in.Name == "" || in.Timestamp <= 0 || len(in.Counts) == 0 {
		return ErrInvalidRun
	}

	if in.Timestamp > uc.now().Unix() {
		return ErrFutureTime
	}

	for k, v := range in.Counts {
		if !dashboard.IsKnownField(k) {
			return fmt.Errorf("%w: %q", ErrUnknownField, k)
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidRun, k)
		}
	}

	return nil
}

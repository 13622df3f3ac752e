package biz

import (
	"context"

	"go-linktrack/internal/domain"
)

// RecordRepo stores tracked records consumed from the event bus.
type RecordRepo interface {
	Save(ctx context.Context, record *domain.TrackedRecord) error
	// Counts returns totals keyed by TrackedRecord.CounterKey.
	Counts(ctx context.Context) (map[string]int64, error)
}

// StatsUsecase reads aggregate tracking counters.
type StatsUsecase struct {
	repo RecordRepo
}

func NewStatsUsecase(repo RecordRepo) *StatsUsecase {
	return &StatsUsecase{repo: repo}
}

// Counts returns per-action totals. A missing store yields an empty map.
func (uc *StatsUsecase) Counts(ctx context.Context) (map[string]int64, error) {
	counts, err := uc.repo.Counts(ctx)
	if err != nil {
		return nil, err
	}
	if counts == nil {
		counts = map[string]int64{}
	}
	return counts, nil
}

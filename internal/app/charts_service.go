package app

import (
	"context"
	"time"

	"healthlog/internal/domain"
)

// ChartsService produces chart-ready data from the entry repository.
type ChartsService struct {
	repo domain.EntryRepository
}

// NewChartsService creates a ChartsService backed by the given repository.
func NewChartsService(repo domain.EntryRepository) *ChartsService {
	return &ChartsService{repo: repo}
}

// DailySeries returns one point per calendar date in the range that has at
// least one visible entry, ascending by date. Multiple same-day entries
// collapse to the most recent one.
func (s *ChartsService) DailySeries(ctx context.Context, rangeKey string) ([]domain.SeriesPoint, error) {
	cutoff := domain.RangeCutoff(rangeKey, time.Now())
	return s.repo.DailySeries(ctx, cutoff)
}

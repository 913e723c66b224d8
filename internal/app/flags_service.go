package app

import (
	"context"
	"fmt"
	"time"

	"healthlog/internal/domain"
)

// FlagsService encapsulates the per-day activity flag use cases.
type FlagsService struct {
	repo domain.DayFlagsRepository
}

// NewFlagsService creates a FlagsService backed by the given repository.
func NewFlagsService(repo domain.DayFlagsRepository) *FlagsService {
	return &FlagsService{repo: repo}
}

// Get returns the flags for a date. A date with no row reads as both flags
// false, not as an error.
func (s *FlagsService) Get(ctx context.Context, date string) (*domain.DayFlags, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	flags, err := s.repo.GetDayFlags(ctx, date)
	if err != nil {
		return nil, err
	}
	if flags == nil {
		flags = &domain.DayFlags{EntryDate: date}
	}
	return flags, nil
}

// Set upserts both flags for a date and returns the stored state.
func (s *FlagsService) Set(ctx context.Context, date string, didWorkout, didWalk bool) (*domain.DayFlags, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if err := s.repo.UpsertDayFlags(ctx, date, didWorkout, didWalk, time.Now()); err != nil {
		return nil, err
	}
	return s.repo.GetDayFlags(ctx, date)
}

func validateDate(date string) error {
	if _, err := time.Parse(domain.DayFormat, date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return nil
}

// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"healthlog/internal/domain"
)

var (
	// ErrNotFound indicates that the referenced entry does not exist.
	ErrNotFound = errors.New("entry not found")
	// ErrInvalidInput indicates a user-correctable validation failure.
	ErrInvalidInput = errors.New("invalid input")
)

// DefaultListLimit caps history queries when the caller does not supply a limit.
const DefaultListLimit = 200

// EntryService encapsulates the weight-entry lifecycle use cases.
type EntryService struct {
	repo domain.EntryRepository
}

// NewEntryService creates an EntryService backed by the given repository.
func NewEntryService(repo domain.EntryRepository) *EntryService {
	return &EntryService{repo: repo}
}

// Create validates and stores a new weight entry, returning the new id and
// the refreshed visible list for rangeKey.
func (s *EntryService) Create(ctx context.Context, date, timeOfDay string, weightLbs float64, notes, rangeKey string) (int64, []domain.WeightEntry, error) {
	now := time.Now()
	ts, err := entryTimestamp(date, timeOfDay, now)
	if err != nil {
		return 0, nil, err
	}
	if err := validateWeight(weightLbs); err != nil {
		return 0, nil, err
	}

	id, err := s.repo.InsertEntry(ctx, ts, date, weightLbs, domain.NormalizeNotes(notes), now)
	if err != nil {
		return 0, nil, err
	}
	items, err := s.List(ctx, rangeKey, DefaultListLimit)
	return id, items, err
}

// Get returns the entry with the given id regardless of soft-delete state.
func (s *EntryService) Get(ctx context.Context, id int64) (*domain.WeightEntry, error) {
	e, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	return e, nil
}

// List returns visible entries for the range, newest first, capped at limit.
func (s *EntryService) List(ctx context.Context, rangeKey string, limit int) ([]domain.WeightEntry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	cutoff := domain.RangeCutoff(rangeKey, time.Now())
	return s.repo.ListVisibleEntries(ctx, cutoff, limit)
}

// Update replaces the mutable fields of an existing entry. Soft-deleted
// entries remain updatable and keep their tombstone.
func (s *EntryService) Update(ctx context.Context, id int64, date, timeOfDay string, weightLbs float64, notes string) (*domain.WeightEntry, error) {
	now := time.Now()
	ts, err := entryTimestamp(date, timeOfDay, now)
	if err != nil {
		return nil, err
	}
	if err := validateWeight(weightLbs); err != nil {
		return nil, err
	}

	found, err := s.repo.UpdateEntry(ctx, id, ts, date, weightLbs, domain.NormalizeNotes(notes), now)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

// SoftDelete marks the entry deleted. Deleting an already-deleted entry is a
// no-op; only a nonexistent id is an error.
func (s *EntryService) SoftDelete(ctx context.Context, id int64) error {
	found, err := s.repo.SoftDeleteEntry(ctx, id, time.Now())
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

// Restore clears the soft-delete tombstone. Restoring an active entry is a
// no-op; only a nonexistent id is an error.
func (s *EntryService) Restore(ctx context.Context, id int64) error {
	found, err := s.repo.RestoreEntry(ctx, id, time.Now())
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func validateWeight(lbs float64) error {
	if math.IsNaN(lbs) || math.IsInf(lbs, 0) || lbs <= 0 {
		return fmt.Errorf("%w: weight must be a positive number", ErrInvalidInput)
	}
	return nil
}

// entryTimestamp derives the measurement timestamp in the reference timezone.
// An explicit HH:MM is joined with the date; otherwise the current wall clock
// is kept and only the calendar day is replaced by the submitted date.
func entryTimestamp(date, timeOfDay string, now time.Time) (time.Time, error) {
	loc := domain.ReferenceLocation()
	day, err := time.ParseInLocation(domain.DayFormat, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if timeOfDay == "" {
		local := now.In(loc)
		return time.Date(day.Year(), day.Month(), day.Day(),
			local.Hour(), local.Minute(), local.Second(), 0, loc), nil
	}
	hm, err := time.Parse("15:04", timeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		hm.Hour(), hm.Minute(), 0, 0, loc), nil
}

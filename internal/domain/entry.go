package domain

import (
	"context"
	"strings"
	"time"
)

// DayFormat is the calendar-date layout used everywhere dates are stored or
// compared. Fixed-width and zero-padded, so lexicographic order equals
// chronological order.
const DayFormat = "2006-01-02"

// referenceTZ is the fixed timezone used to derive calendar dates from
// timestamps, independent of server locale.
const referenceTZ = "America/Chicago"

var refLoc = mustLoadLocation(referenceTZ)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic("load reference timezone: " + err.Error())
	}
	return loc
}

// ReferenceLocation returns the fixed reference timezone (America/Chicago).
func ReferenceLocation() *time.Location {
	return refLoc
}

// WeightEntry is a single body-weight measurement. An entry is visible iff
// DeletedAt is nil; soft-delete sets the tombstone and restore clears it.
type WeightEntry struct {
	ID        int64      `json:"id"`
	EntryTS   time.Time  `json:"entryTs"`
	EntryDate string     `json:"entryDate"`
	WeightLbs float64    `json:"weightLbs"`
	Notes     string     `json:"notes,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Visible reports whether the entry has not been soft-deleted.
func (e *WeightEntry) Visible() bool {
	return e.DeletedAt == nil
}

// NormalizeNotes trims surrounding whitespace; an all-whitespace note
// collapses to the empty string, which is stored as absent.
func NormalizeNotes(notes string) string {
	return strings.TrimSpace(notes)
}

// SeriesPoint is one day of the charting series.
type SeriesPoint struct {
	Date      string  `json:"date"`
	WeightLbs float64 `json:"weightLbs"`
}

// EntryRepository is the port for weight-entry persistence.
//
// Lookups return nil (not an error) when no row matches. Mutations on a
// specific id return found=false when the id has no row; translating that
// into a not-found error is the caller's job.
type EntryRepository interface {
	InsertEntry(ctx context.Context, entryTS time.Time, entryDate string, weightLbs float64, notes string, now time.Time) (int64, error)
	GetEntry(ctx context.Context, id int64) (*WeightEntry, error)
	ListVisibleEntries(ctx context.Context, cutoffDate string, limit int) ([]WeightEntry, error)
	UpdateEntry(ctx context.Context, id int64, entryTS time.Time, entryDate string, weightLbs float64, notes string, now time.Time) (bool, error)
	SoftDeleteEntry(ctx context.Context, id int64, now time.Time) (bool, error)
	RestoreEntry(ctx context.Context, id int64, now time.Time) (bool, error)
	DailySeries(ctx context.Context, cutoffDate string) ([]SeriesPoint, error)
}

// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"healthlog/internal/domain"
)

// DB implements the repository ports on in-memory state.
type DB struct {
	mu      sync.Mutex
	entries []domain.WeightEntry
	flags   map[string]domain.DayFlags

	entryIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		flags: make(map[string]domain.DayFlags),
	}
}

// Ensure interfaces are met.
var _ domain.EntryRepository = (*DB)(nil)
var _ domain.DayFlagsRepository = (*DB)(nil)

// --- EntryRepository ---

// InsertEntry adds a new active weight entry.
func (db *DB) InsertEntry(ctx context.Context, entryTS time.Time, entryDate string, weightLbs float64, notes string, now time.Time) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.entryIDCounter++
	db.entries = append(db.entries, domain.WeightEntry{
		ID:        db.entryIDCounter,
		EntryTS:   entryTS,
		EntryDate: entryDate,
		WeightLbs: weightLbs,
		Notes:     notes,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	})
	return db.entryIDCounter, nil
}

// GetEntry returns the entry with the given id, or nil.
func (db *DB) GetEntry(ctx context.Context, id int64) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if e := db.find(id); e != nil {
		ret := *e
		return &ret, nil
	}
	return nil, nil
}

// ListVisibleEntries returns non-deleted entries newest first.
func (db *DB) ListVisibleEntries(ctx context.Context, cutoffDate string, limit int) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.WeightEntry, 0, len(db.entries))
	for _, e := range db.entries {
		if !e.Visible() {
			continue
		}
		if cutoffDate != "" && e.EntryDate < cutoffDate {
			continue
		}
		result = append(result, e)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].EntryTS.Equal(result[j].EntryTS) {
			return result[i].EntryTS.After(result[j].EntryTS)
		}
		return result[i].ID > result[j].ID
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// UpdateEntry replaces mutable fields regardless of soft-delete state.
func (db *DB) UpdateEntry(ctx context.Context, id int64, entryTS time.Time, entryDate string, weightLbs float64, notes string, now time.Time) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	e := db.find(id)
	if e == nil {
		return false, nil
	}
	e.EntryTS = entryTS
	e.EntryDate = entryDate
	e.WeightLbs = weightLbs
	e.Notes = notes
	e.UpdatedAt = now.UTC()
	return true, nil
}

// SoftDeleteEntry sets the tombstone; already-deleted rows are a no-op.
func (db *DB) SoftDeleteEntry(ctx context.Context, id int64, now time.Time) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	e := db.find(id)
	if e == nil {
		return false, nil
	}
	if e.DeletedAt == nil {
		at := now.UTC()
		e.DeletedAt = &at
		e.UpdatedAt = at
	}
	return true, nil
}

// RestoreEntry clears the tombstone; active rows are a no-op.
func (db *DB) RestoreEntry(ctx context.Context, id int64, now time.Time) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	e := db.find(id)
	if e == nil {
		return false, nil
	}
	if e.DeletedAt != nil {
		e.DeletedAt = nil
		e.UpdatedAt = now.UTC()
	}
	return true, nil
}

// DailySeries returns the most recent visible entry per date, ascending.
func (db *DB) DailySeries(ctx context.Context, cutoffDate string) ([]domain.SeriesPoint, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	latest := make(map[string]domain.WeightEntry)
	for _, e := range db.entries {
		if !e.Visible() {
			continue
		}
		if cutoffDate != "" && e.EntryDate < cutoffDate {
			continue
		}
		cur, ok := latest[e.EntryDate]
		if !ok || e.EntryTS.After(cur.EntryTS) ||
			(e.EntryTS.Equal(cur.EntryTS) && e.ID > cur.ID) {
			latest[e.EntryDate] = e
		}
	}

	out := make([]domain.SeriesPoint, 0, len(latest))
	for date, e := range latest {
		out = append(out, domain.SeriesPoint{Date: date, WeightLbs: e.WeightLbs})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// find returns a pointer into the backing slice; callers hold db.mu.
func (db *DB) find(id int64) *domain.WeightEntry {
	for i := range db.entries {
		if db.entries[i].ID == id {
			return &db.entries[i]
		}
	}
	return nil
}

// --- DayFlagsRepository ---

// UpsertDayFlags inserts or overwrites the flags for a date.
func (db *DB) UpsertDayFlags(ctx context.Context, entryDate string, didWorkout, didWalk bool, now time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.flags[entryDate] = domain.DayFlags{
		EntryDate:  entryDate,
		DidWorkout: didWorkout,
		DidWalk:    didWalk,
		UpdatedAt:  now.UTC(),
	}
	return nil
}

// GetDayFlags returns the flags for a date, or nil when absent.
func (db *DB) GetDayFlags(ctx context.Context, entryDate string) (*domain.DayFlags, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if f, ok := db.flags[entryDate]; ok {
		ret := f
		return &ret, nil
	}
	return nil, nil
}

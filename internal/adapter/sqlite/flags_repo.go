package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"healthlog/internal/domain"
)

// UpsertDayFlags inserts or overwrites the flags row for a date. Exactly one
// row per date exists afterwards.
func (d *DB) UpsertDayFlags(ctx context.Context, entryDate string, didWorkout, didWalk bool, now time.Time) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO day_flags(entry_date, did_workout, did_walk, updated_at) VALUES(?, ?, ?, ?)
		 ON CONFLICT(entry_date) DO UPDATE SET
			did_workout=excluded.did_workout,
			did_walk=excluded.did_walk,
			updated_at=excluded.updated_at;`,
		entryDate, boolToInt(didWorkout), boolToInt(didWalk), now.UTC().Format(tsFormat),
	)
	return err
}

// GetDayFlags returns the flags for a date, or nil when no row exists.
func (d *DB) GetDayFlags(ctx context.Context, entryDate string) (*domain.DayFlags, error) {
	var (
		f         domain.DayFlags
		workout   int
		walk      int
		updatedAt string
	)
	err := d.sql.QueryRowContext(ctx,
		"SELECT entry_date, did_workout, did_walk, updated_at FROM day_flags WHERE entry_date=?;",
		entryDate,
	).Scan(&f.EntryDate, &workout, &walk, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	f.DidWorkout = workout != 0
	f.DidWalk = walk != 0
	if f.UpdatedAt, err = time.Parse(tsFormat, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &f, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"healthlog/internal/domain"
)

// Timestamps are stored as RFC 3339 text so the offset the measurement was
// taken at survives round-trips.
const tsFormat = time.RFC3339

const entryColumns = "id, entry_ts, entry_date, weight_lbs, notes, deleted_at, created_at, updated_at"

// InsertEntry inserts a new active weight entry and returns its id.
func (d *DB) InsertEntry(ctx context.Context, entryTS time.Time, entryDate string, weightLbs float64, notes string, now time.Time) (int64, error) {
	res, err := d.sql.ExecContext(ctx,
		"INSERT INTO weight_entries(entry_ts, entry_date, weight_lbs, notes, created_at, updated_at) VALUES(?, ?, ?, NULLIF(?, ''), ?, ?);",
		entryTS.Format(tsFormat), entryDate, weightLbs, notes, now.UTC().Format(tsFormat), now.UTC().Format(tsFormat),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetEntry fetches an entry by id regardless of soft-delete state.
func (d *DB) GetEntry(ctx context.Context, id int64) (*domain.WeightEntry, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM weight_entries WHERE id=?;", id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

// ListVisibleEntries returns non-deleted entries, newest first, optionally
// bounded below by cutoffDate (inclusive), capped at limit.
func (d *DB) ListVisibleEntries(ctx context.Context, cutoffDate string, limit int) ([]domain.WeightEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM weight_entries
		 WHERE deleted_at IS NULL AND (?1 = '' OR entry_date >= ?1)
		 ORDER BY entry_ts DESC, id DESC LIMIT ?2;`,
		cutoffDate, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.WeightEntry, 0, limit)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// UpdateEntry replaces the mutable fields of the row with the given id,
// whatever its soft-delete state. Returns false when the id has no row.
func (d *DB) UpdateEntry(ctx context.Context, id int64, entryTS time.Time, entryDate string, weightLbs float64, notes string, now time.Time) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE weight_entries SET entry_ts=?, entry_date=?, weight_lbs=?, notes=NULLIF(?, ''), updated_at=? WHERE id=?;",
		entryTS.Format(tsFormat), entryDate, weightLbs, notes, now.UTC().Format(tsFormat), id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// SoftDeleteEntry sets the tombstone on an active row. Re-deleting an
// already-deleted row is a no-op; a missing id returns false.
func (d *DB) SoftDeleteEntry(ctx context.Context, id int64, now time.Time) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE weight_entries SET deleted_at=?, updated_at=? WHERE id=? AND deleted_at IS NULL;",
		now.UTC().Format(tsFormat), now.UTC().Format(tsFormat), id,
	)
	if err != nil {
		return false, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return false, err
	} else if n > 0 {
		return true, nil
	}
	return d.entryExists(ctx, id)
}

// RestoreEntry clears the tombstone on a deleted row. Restoring an active
// row is a no-op; a missing id returns false.
func (d *DB) RestoreEntry(ctx context.Context, id int64, now time.Time) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE weight_entries SET deleted_at=NULL, updated_at=? WHERE id=? AND deleted_at IS NOT NULL;",
		now.UTC().Format(tsFormat), id,
	)
	if err != nil {
		return false, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return false, err
	} else if n > 0 {
		return true, nil
	}
	return d.entryExists(ctx, id)
}

// DailySeries returns one point per date with at least one visible entry,
// ascending by date. The most recent entry of each day wins.
func (d *DB) DailySeries(ctx context.Context, cutoffDate string) ([]domain.SeriesPoint, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT entry_date, weight_lbs FROM (
			SELECT entry_date, weight_lbs,
				ROW_NUMBER() OVER (PARTITION BY entry_date ORDER BY entry_ts DESC, id DESC) AS rn
			FROM weight_entries
			WHERE deleted_at IS NULL AND (?1 = '' OR entry_date >= ?1)
		 ) WHERE rn = 1
		 ORDER BY entry_date ASC;`,
		cutoffDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SeriesPoint
	for rows.Next() {
		var p domain.SeriesPoint
		if err := rows.Scan(&p.Date, &p.WeightLbs); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (d *DB) entryExists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := d.sql.QueryRowContext(ctx, "SELECT 1 FROM weight_entries WHERE id=?;", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*domain.WeightEntry, error) {
	var (
		e         domain.WeightEntry
		entryTS   string
		notes     sql.NullString
		deletedAt sql.NullString
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&e.ID, &entryTS, &e.EntryDate, &e.WeightLbs, &notes, &deletedAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if e.EntryTS, err = time.Parse(tsFormat, entryTS); err != nil {
		return nil, fmt.Errorf("parse entry_ts: %w", err)
	}
	if e.CreatedAt, err = time.Parse(tsFormat, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if e.UpdatedAt, err = time.Parse(tsFormat, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	if deletedAt.Valid {
		t, err := time.Parse(tsFormat, deletedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse deleted_at: %w", err)
		}
		e.DeletedAt = &t
	}
	e.Notes = notes.String
	return &e, nil
}

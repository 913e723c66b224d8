// Package sqlite implements the repository ports on a WAL-journaled SQLite
// database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps a *sql.DB and implements the domain repository interfaces.
type DB struct {
	sql *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS weight_entries (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	entry_ts    TEXT NOT NULL,
	entry_date  TEXT NOT NULL,
	weight_lbs  REAL NOT NULL,
	notes       TEXT,
	deleted_at  TEXT,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_weight_entries_entry_date ON weight_entries(entry_date);
CREATE INDEX IF NOT EXISTS idx_weight_entries_entry_ts ON weight_entries(entry_ts);

CREATE TABLE IF NOT EXISTS day_flags (
	entry_date  TEXT PRIMARY KEY,
	did_workout INTEGER NOT NULL DEFAULT 0,
	did_walk    INTEGER NOT NULL DEFAULT 0,
	updated_at  TEXT NOT NULL
);
`

// Open creates the parent directory if needed, opens the database file with
// WAL journaling, pings, and runs the idempotent migration.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	s, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database handle.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	if _, err := d.sql.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

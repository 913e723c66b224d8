package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"healthlog/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "healthlog", "test.sqlite3"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func chiTS(t *testing.T, day string, hour int) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(domain.DayFormat, day, domain.ReferenceLocation())
	if err != nil {
		t.Fatal(err)
	}
	return d.Add(time.Duration(hour) * time.Hour)
}

func TestOpen_CreatesParentDir(t *testing.T) {
	// openTestDB points at a not-yet-existing subdirectory.
	db := openTestDB(t)

	// Migration is idempotent: a second migrate call must not fail.
	if err := db.migrate(context.Background()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestInsertAndGetRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Now()

	entryTS := chiTS(t, "2024-01-15", 7).Add(30 * time.Minute)
	id, err := db.InsertEntry(ctx, entryTS, "2024-01-15", 180.25, "after coffee", now)
	if err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}

	e, err := db.GetEntry(ctx, id)
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if e == nil {
		t.Fatal("expected entry, got nil")
	}
	if e.WeightLbs != 180.25 || e.EntryDate != "2024-01-15" || e.Notes != "after coffee" {
		t.Errorf("unexpected fields: %+v", e)
	}
	if !e.EntryTS.Equal(entryTS) {
		t.Errorf("entry_ts round-trip: want %v, got %v", entryTS, e.EntryTS)
	}
	if e.DeletedAt != nil {
		t.Error("new entry must be active")
	}
	if e.CreatedAt.IsZero() || e.UpdatedAt.IsZero() {
		t.Error("bookkeeping timestamps must be set")
	}
}

func TestGetEntry_Absent(t *testing.T) {
	db := openTestDB(t)
	e, err := db.GetEntry(context.Background(), 12345)
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if e != nil {
		t.Fatalf("expected nil for absent id, got %+v", e)
	}
}

func TestInsertEntry_EmptyNotesStoredAsNull(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id, err := db.InsertEntry(ctx, chiTS(t, "2024-01-01", 8), "2024-01-01", 180, "", time.Now())
	if err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}

	var notesIsNull bool
	err = db.sql.QueryRowContext(ctx, "SELECT notes IS NULL FROM weight_entries WHERE id=?;", id).Scan(&notesIsNull)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !notesIsNull {
		t.Error("empty notes must be stored as NULL")
	}
}

func TestListVisibleEntries_NewestFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Now()

	_, _ = db.InsertEntry(ctx, chiTS(t, "2024-01-01", 8), "2024-01-01", 180.0, "", now)
	_, _ = db.InsertEntry(ctx, chiTS(t, "2024-01-02", 8), "2024-01-02", 181.5, "", now)

	items, err := db.ListVisibleEntries(ctx, "", 200)
	if err != nil {
		t.Fatalf("ListVisibleEntries: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].WeightLbs != 181.5 || items[1].WeightLbs != 180.0 {
		t.Errorf("expected [181.5, 180.0], got [%v, %v]", items[0].WeightLbs, items[1].WeightLbs)
	}
}

func TestListVisibleEntries_CutoffAndLimit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Now()

	days := []string{"2024-01-01", "2024-01-05", "2024-01-10"}
	for i, day := range days {
		_, _ = db.InsertEntry(ctx, chiTS(t, day, 8), day, 180+float64(i), "", now)
	}

	items, err := db.ListVisibleEntries(ctx, "2024-01-05", 200)
	if err != nil {
		t.Fatalf("ListVisibleEntries: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items at/after cutoff, got %d", len(items))
	}
	for _, e := range items {
		if e.EntryDate < "2024-01-05" {
			t.Errorf("entry %s older than cutoff", e.EntryDate)
		}
	}

	items, _ = db.ListVisibleEntries(ctx, "", 1)
	if len(items) != 1 {
		t.Errorf("expected limit cap, got %d items", len(items))
	}
}

func TestSoftDeleteRestoreCycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Now()

	id, _ := db.InsertEntry(ctx, chiTS(t, "2024-01-01", 8), "2024-01-01", 180.0, "keep me", now)

	found, err := db.SoftDeleteEntry(ctx, id, now)
	if err != nil || !found {
		t.Fatalf("SoftDeleteEntry: found=%v err=%v", found, err)
	}
	items, _ := db.ListVisibleEntries(ctx, "", 200)
	if len(items) != 0 {
		t.Errorf("deleted entry still listed: %v", items)
	}

	// Idempotent re-delete.
	if found, err := db.SoftDeleteEntry(ctx, id, now.Add(time.Minute)); err != nil || !found {
		t.Fatalf("re-delete: found=%v err=%v", found, err)
	}

	if found, err := db.RestoreEntry(ctx, id, now); err != nil || !found {
		t.Fatalf("RestoreEntry: found=%v err=%v", found, err)
	}
	e, _ := db.GetEntry(ctx, id)
	if e.DeletedAt != nil {
		t.Error("restore must clear the tombstone")
	}
	if e.WeightLbs != 180.0 || e.Notes != "keep me" {
		t.Errorf("fields changed across delete/restore: %+v", e)
	}

	// Idempotent re-restore, and missing ids are reported as not found.
	if found, err := db.RestoreEntry(ctx, id, now); err != nil || !found {
		t.Fatalf("re-restore: found=%v err=%v", found, err)
	}
	if found, _ := db.SoftDeleteEntry(ctx, 9999, now); found {
		t.Error("expected found=false for missing id")
	}
	if found, _ := db.RestoreEntry(ctx, 9999, now); found {
		t.Error("expected found=false for missing id")
	}
}

func TestUpdateEntry(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Now()

	id, _ := db.InsertEntry(ctx, chiTS(t, "2024-01-01", 8), "2024-01-01", 180.0, "old", now)

	newTS := chiTS(t, "2024-01-02", 9)
	found, err := db.UpdateEntry(ctx, id, newTS, "2024-01-02", 178.5, "", now.Add(time.Minute))
	if err != nil || !found {
		t.Fatalf("UpdateEntry: found=%v err=%v", found, err)
	}

	e, _ := db.GetEntry(ctx, id)
	if e.EntryDate != "2024-01-02" || e.WeightLbs != 178.5 || e.Notes != "" {
		t.Errorf("update not applied: %+v", e)
	}
	if !e.UpdatedAt.After(e.CreatedAt) {
		t.Error("updated_at must advance")
	}

	if found, _ := db.UpdateEntry(ctx, 9999, newTS, "2024-01-02", 178.5, "", now); found {
		t.Error("expected found=false for missing id")
	}
}

func TestUpdateEntry_DeletedRowStillUpdatable(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Now()

	id, _ := db.InsertEntry(ctx, chiTS(t, "2024-01-01", 8), "2024-01-01", 180.0, "", now)
	_, _ = db.SoftDeleteEntry(ctx, id, now)

	found, err := db.UpdateEntry(ctx, id, chiTS(t, "2024-01-01", 9), "2024-01-01", 179.0, "", now)
	if err != nil || !found {
		t.Fatalf("UpdateEntry on deleted row: found=%v err=%v", found, err)
	}
	e, _ := db.GetEntry(ctx, id)
	if e.WeightLbs != 179.0 {
		t.Errorf("update not applied: %+v", e)
	}
	if e.DeletedAt == nil {
		t.Error("update must not clear the tombstone")
	}
}

func TestDailySeries(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Now()

	// Two same-day entries: the later one wins.
	_, _ = db.InsertEntry(ctx, chiTS(t, "2024-01-01", 7), "2024-01-01", 180.0, "", now)
	_, _ = db.InsertEntry(ctx, chiTS(t, "2024-01-01", 21), "2024-01-01", 181.0, "", now)
	_, _ = db.InsertEntry(ctx, chiTS(t, "2024-01-02", 7), "2024-01-02", 179.5, "", now)
	// A deleted entry contributes nothing, even as the only one of its day.
	delID, _ := db.InsertEntry(ctx, chiTS(t, "2024-01-03", 7), "2024-01-03", 250.0, "", now)
	_, _ = db.SoftDeleteEntry(ctx, delID, now)

	points, err := db.DailySeries(ctx, "")
	if err != nil {
		t.Fatalf("DailySeries: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d: %v", len(points), points)
	}
	if points[0].Date != "2024-01-01" || points[0].WeightLbs != 181.0 {
		t.Errorf("expected last entry of Jan 1 to win, got %+v", points[0])
	}
	if points[1].Date != "2024-01-02" || points[1].WeightLbs != 179.5 {
		t.Errorf("unexpected second point: %+v", points[1])
	}

	points, err = db.DailySeries(ctx, "2024-01-02")
	if err != nil {
		t.Fatalf("DailySeries with cutoff: %v", err)
	}
	if len(points) != 1 || points[0].Date != "2024-01-02" {
		t.Errorf("cutoff not applied: %v", points)
	}
}

func TestDayFlagsUpsert(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Now()

	f, err := db.GetDayFlags(ctx, "2024-01-01")
	if err != nil {
		t.Fatalf("GetDayFlags: %v", err)
	}
	if f != nil {
		t.Fatalf("expected nil for absent date, got %+v", f)
	}

	if err := db.UpsertDayFlags(ctx, "2024-01-01", true, false, now); err != nil {
		t.Fatalf("UpsertDayFlags: %v", err)
	}
	f, _ = db.GetDayFlags(ctx, "2024-01-01")
	if f == nil || !f.DidWorkout || f.DidWalk {
		t.Fatalf("unexpected flags: %+v", f)
	}

	if err := db.UpsertDayFlags(ctx, "2024-01-01", false, true, now.Add(time.Minute)); err != nil {
		t.Fatalf("second UpsertDayFlags: %v", err)
	}
	f, _ = db.GetDayFlags(ctx, "2024-01-01")
	if f == nil || f.DidWorkout || !f.DidWalk {
		t.Fatalf("expected second call's values, got %+v", f)
	}

	var count int
	if err := db.sql.QueryRowContext(ctx, "SELECT COUNT(1) FROM day_flags WHERE entry_date=?;", "2024-01-01").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one row per date, got %d", count)
	}
}

package domain

import (
	"context"
	"time"
)

// DayFlags holds the simple per-day activity toggles. At most one row exists
// per calendar date; writes are upserts.
type DayFlags struct {
	EntryDate  string    `json:"entryDate"`
	DidWorkout bool      `json:"didWorkout"`
	DidWalk    bool      `json:"didWalk"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// DayFlagsRepository is the port for day-flag persistence. GetDayFlags
// returns nil when no row exists for the date; callers treat that as both
// flags false.
type DayFlagsRepository interface {
	UpsertDayFlags(ctx context.Context, entryDate string, didWorkout, didWalk bool, now time.Time) error
	GetDayFlags(ctx context.Context, entryDate string) (*DayFlags, error)
}

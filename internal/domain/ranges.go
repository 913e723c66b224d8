package domain

import "time"

// rangeDays maps the symbolic range keys to their window size in days.
var rangeDays = map[string]int{
	"7d":  7,
	"14d": 14,
	"30d": 30,
	"90d": 90,
}

// RangeCutoff translates a symbolic range key into an inclusive lower-bound
// calendar date, evaluated against the current date in the reference
// timezone. "all" and unrecognized keys return "" (no lower bound). The
// window includes today: "7d" spans exactly 7 calendar days.
func RangeCutoff(key string, now time.Time) string {
	n, ok := rangeDays[key]
	if !ok {
		return ""
	}
	today := now.In(refLoc)
	return today.AddDate(0, 0, -(n - 1)).Format(DayFormat)
}

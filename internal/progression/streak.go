package progression

import "time"

// DateKey formats a moment as the calendar-day key used for streaks,
// daily stats, and mission rollover.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// daysBetween counts whole calendar days from a to b, ignoring the
// time-of-day component entirely.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, a.Location())
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, b.Location())
	return int(bd.Sub(ad).Hours() / 24)
}

// NextStreak computes the streak value after a learning event at now.
//
//	no prior activity        -> 1
//	same calendar day        -> unchanged
//	exactly one day later    -> current + 1
//	two or more days later   -> reset to 1
//
// updated is false only in the same-day case.
func NextStreak(current int, lastLearnedAt *time.Time, now time.Time) (newStreak int, updated bool) {
	if lastLearnedAt == nil {
		return 1, true
	}
	switch d := daysBetween(*lastLearnedAt, now); {
	case d == 0:
		return current, false
	case d == 1:
		return current + 1, true
	default:
		return 1, true
	}
}

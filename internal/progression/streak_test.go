package progression

import (
	"testing"
	"time"
)

func at(day int, hour int) time.Time {
	return time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC)
}

func TestNextStreak_FirstEver(t *testing.T) {
	streak, updated := NextStreak(0, nil, at(1, 12))
	if streak != 1 || !updated {
		t.Errorf("expected (1, true), got (%d, %v)", streak, updated)
	}
}

func TestNextStreak_SameDay(t *testing.T) {
	last := at(1, 9)
	streak, updated := NextStreak(4, &last, at(1, 23))
	if streak != 4 || updated {
		t.Errorf("expected (4, false), got (%d, %v)", streak, updated)
	}
}

func TestNextStreak_ConsecutiveDay(t *testing.T) {
	// Late night to early morning still counts as consecutive days.
	last := at(1, 23)
	streak, updated := NextStreak(4, &last, at(2, 1))
	if streak != 5 || !updated {
		t.Errorf("expected (5, true), got (%d, %v)", streak, updated)
	}
}

func TestNextStreak_GapResets(t *testing.T) {
	last := at(1, 12)
	streak, updated := NextStreak(30, &last, at(3, 12))
	if streak != 1 || !updated {
		t.Errorf("expected (1, true), got (%d, %v)", streak, updated)
	}
}

func TestDateKey_Format(t *testing.T) {
	if got := DateKey(at(5, 8)); got != "2026-03-05" {
		t.Errorf("expected 2026-03-05, got %s", got)
	}
}

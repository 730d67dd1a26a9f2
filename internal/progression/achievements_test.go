package progression

import (
	"testing"
	"time"

	"github.com/kotoba-learn/backend/internal/models"
)

func newUser() *models.UserState {
	state := models.InitialProfileState()
	return &state.User
}

func TestUnlockAchievements_FirstItem(t *testing.T) {
	u := newUser()
	u.LearnedItemIDs = []int{1}

	unlocked := UnlockAchievements(u, time.Now())
	if len(unlocked) != 1 || unlocked[0].ID != "first_step" {
		t.Fatalf("expected only first_step, got %+v", unlocked)
	}
	if unlocked := UnlockAchievements(u, time.Now()); len(unlocked) != 0 {
		t.Errorf("expected no repeat unlocks, got %+v", unlocked)
	}
}

func TestUnlockAchievements_GrantsTitle(t *testing.T) {
	u := newUser()
	u.LearnedItemIDs = make([]int, 10)
	for i := range u.LearnedItemIDs {
		u.LearnedItemIDs[i] = i + 1
	}

	UnlockAchievements(u, time.Now())
	if !u.HasTitle("Student") {
		t.Error("expected Student title to be unlocked")
	}
	if u.CurrentTitle != "Student" {
		t.Errorf("expected current title Student, got %s", u.CurrentTitle)
	}
}

func TestUnlockAchievements_StreakUsesBest(t *testing.T) {
	u := newUser()
	u.Streak = 1
	u.BestStreak = 7

	unlocked := UnlockAchievements(u, time.Now())
	ids := map[string]bool{}
	for _, a := range unlocked {
		ids[a.ID] = true
	}
	if !ids["three_day_streak"] || !ids["week_warrior"] {
		t.Errorf("expected streak achievements from best streak, got %+v", unlocked)
	}
}

func TestUnlockAchievements_TagMastery(t *testing.T) {
	u := newUser()
	u.Stats.TagProgress = map[string]int{"effort": 5}

	unlocked := UnlockAchievements(u, time.Now())
	found := false
	for _, a := range unlocked {
		if a.ID == "effort_master" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected effort_master unlock, got %+v", unlocked)
	}
}

func TestMarkNotified(t *testing.T) {
	u := newUser()
	u.LearnedItemIDs = []int{1}
	UnlockAchievements(u, time.Now())

	if pending := PendingNotifications(u); len(pending) != 1 {
		t.Fatalf("expected 1 pending, got %d", len(pending))
	}
	if changed := MarkNotified(u, []string{"first_step"}); changed != 1 {
		t.Errorf("expected 1 change, got %d", changed)
	}
	if pending := PendingNotifications(u); len(pending) != 0 {
		t.Errorf("expected no pending after marking, got %d", len(pending))
	}
	if changed := MarkNotified(u, []string{"first_step"}); changed != 0 {
		t.Errorf("expected marking twice to change nothing, got %d", changed)
	}
}

func TestUpcomingAchievements_NearestFirst(t *testing.T) {
	u := newUser()
	u.LearnedItemIDs = []int{1, 2, 3, 4} // 4/5 toward getting_started

	upcoming := UpcomingAchievements(u, 3)
	if len(upcoming) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(upcoming))
	}
	if upcoming[0].Achievement.ID != "getting_started" {
		t.Errorf("expected getting_started nearest, got %s", upcoming[0].Achievement.ID)
	}
	if upcoming[0].Progress != 4 || upcoming[0].Target != 5 {
		t.Errorf("expected progress 4/5, got %d/%d", upcoming[0].Progress, upcoming[0].Target)
	}
}

func TestUpcomingAchievements_ExcludesUnlocked(t *testing.T) {
	u := newUser()
	u.LearnedItemIDs = []int{1}
	UnlockAchievements(u, time.Now())

	for _, up := range UpcomingAchievements(u, 0) {
		if up.Achievement.ID == "first_step" {
			t.Error("unlocked achievement listed as upcoming")
		}
	}
}

func TestAchievementSummary_Tallies(t *testing.T) {
	u := newUser()
	u.LearnedItemIDs = []int{1}
	UnlockAchievements(u, time.Now())

	sum := AchievementSummary(u)
	if sum.Unlocked != 1 {
		t.Errorf("expected 1 unlocked, got %d", sum.Unlocked)
	}
	if sum.ByCategory["learning"].Unlocked != 1 {
		t.Errorf("expected learning category tally 1, got %d", sum.ByCategory["learning"].Unlocked)
	}
	if sum.Total != sum.ByCategory["learning"].Total+sum.ByCategory["streak"].Total+
		sum.ByCategory["level"].Total+sum.ByCategory["collection"].Total+sum.ByCategory["special"].Total {
		t.Error("category totals do not add up to the overall total")
	}
}

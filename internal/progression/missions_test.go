package progression

import (
	"math/rand"
	"testing"
	"time"

	"github.com/kotoba-learn/backend/internal/catalog"
	"github.com/kotoba-learn/backend/internal/models"
)

func testRng() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestEnsureTodayMissions_GeneratesThreeDistinct(t *testing.T) {
	dm := EnsureTodayMissions(nil, "2026-03-01", testRng())
	if dm.Date != "2026-03-01" {
		t.Errorf("expected date 2026-03-01, got %s", dm.Date)
	}
	if len(dm.Missions) != MissionsPerDay {
		t.Fatalf("expected %d missions, got %d", MissionsPerDay, len(dm.Missions))
	}
	seen := map[string]bool{}
	for i, m := range dm.Missions {
		if m.Slot != i {
			t.Errorf("mission %d: expected slot %d, got %d", i, i, m.Slot)
		}
		if seen[m.TemplateID] {
			t.Errorf("duplicate template %s", m.TemplateID)
		}
		seen[m.TemplateID] = true
		if _, ok := catalog.MissionTemplateByID(m.TemplateID); !ok {
			t.Errorf("unknown template %s", m.TemplateID)
		}
	}
}

func TestEnsureTodayMissions_SameDayKeepsProgress(t *testing.T) {
	rng := testRng()
	dm := EnsureTodayMissions(nil, "2026-03-01", rng)
	dm.Missions[0].Current = 2

	again := EnsureTodayMissions(dm, "2026-03-01", rng)
	if again != dm {
		t.Fatal("expected the same mission set back on the same day")
	}
	if again.Missions[0].Current != 2 {
		t.Errorf("expected progress kept, got %d", again.Missions[0].Current)
	}
}

func TestEnsureTodayMissions_RolloverForgetsUnclaimed(t *testing.T) {
	rng := testRng()
	dm := EnsureTodayMissions(nil, "2026-03-01", rng)
	dm.Missions[0].Current = 5
	dm.Missions[0].Completed = true

	next := EnsureTodayMissions(dm, "2026-03-02", rng)
	if next == dm {
		t.Fatal("expected a fresh mission set on a new day")
	}
	for _, m := range next.Missions {
		if m.Current != 0 || m.Completed || m.ClaimedAt != nil {
			t.Errorf("expected pristine mission, got %+v", m)
		}
	}
}

func countMission(date string) *models.DailyMissionState {
	return &models.DailyMissionState{
		Date: date,
		Missions: []models.MissionProgress{
			{Slot: 0, TemplateID: "learn_3"},
			{Slot: 1, TemplateID: "cat_food"},
			{Slot: 2, TemplateID: "tag_effort"},
		},
	}
}

func TestRecordLearning_MatchesByTypeCategoryTag(t *testing.T) {
	dm := countMission("2026-03-01")
	food, _ := catalog.ItemByID(11)       // food category
	proverb, _ := catalog.ItemByID(91)    // effort tag
	furniture, _ := catalog.ItemByID(1)   // neither

	RecordLearning(dm, furniture)
	if dm.Missions[0].Current != 1 || dm.Missions[1].Current != 0 || dm.Missions[2].Current != 0 {
		t.Errorf("furniture: unexpected progress %+v", dm.Missions)
	}

	completed := RecordLearning(dm, food)
	if dm.Missions[1].Current != 1 || !dm.Missions[1].Completed {
		t.Errorf("food: expected category mission complete, got %+v", dm.Missions[1])
	}
	if len(completed) != 1 || completed[0] != 1 {
		t.Errorf("expected slot 1 completion, got %v", completed)
	}

	RecordLearning(dm, proverb)
	if !dm.Missions[2].Completed {
		t.Errorf("proverb: expected tag mission complete, got %+v", dm.Missions[2])
	}
	if dm.Missions[0].Current != 3 || !dm.Missions[0].Completed {
		t.Errorf("expected count mission complete after 3 items, got %+v", dm.Missions[0])
	}
}

func TestRecordLearning_CompletedMissionStops(t *testing.T) {
	dm := countMission("2026-03-01")
	food, _ := catalog.ItemByID(11)
	RecordLearning(dm, food)
	RecordLearning(dm, food)
	if dm.Missions[1].Current != 1 {
		t.Errorf("expected completed mission to stop counting, got %d", dm.Missions[1].Current)
	}
}

func TestClaimMission_Lifecycle(t *testing.T) {
	dm := countMission("2026-03-01")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if _, err := ClaimMission(dm, 1, now); err != ErrMissionIncomplete {
		t.Errorf("expected ErrMissionIncomplete, got %v", err)
	}

	food, _ := catalog.ItemByID(11)
	RecordLearning(dm, food)

	exp, err := ClaimMission(dm, 1, now)
	if err != nil {
		t.Fatalf("expected claim to succeed, got %v", err)
	}
	if exp != 20 {
		t.Errorf("expected 20 exp, got %d", exp)
	}

	if _, err := ClaimMission(dm, 1, now); err != ErrMissionClaimed {
		t.Errorf("expected ErrMissionClaimed, got %v", err)
	}
	if _, err := ClaimMission(dm, 9, now); err != ErrMissionNotFound {
		t.Errorf("expected ErrMissionNotFound, got %v", err)
	}
}

func TestMissionStatuses_JoinsTemplates(t *testing.T) {
	dm := countMission("2026-03-01")
	statuses := MissionStatuses(dm)
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if statuses[0].Target != 3 {
		t.Errorf("expected learn_3 target 3, got %d", statuses[0].Target)
	}
	if MissionStatuses(nil) != nil {
		t.Error("expected nil statuses for nil state")
	}
}

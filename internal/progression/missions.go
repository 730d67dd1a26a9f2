package progression

import (
	"errors"
	"math/rand"
	"time"

	"github.com/kotoba-learn/backend/internal/catalog"
	"github.com/kotoba-learn/backend/internal/models"
)

// MissionsPerDay is how many mission slots each day gets.
const MissionsPerDay = 3

var (
	ErrMissionNotFound   = errors.New("no mission in that slot today")
	ErrMissionIncomplete = errors.New("mission is not completed yet")
	ErrMissionClaimed    = errors.New("mission reward already claimed")
)

// EnsureTodayMissions returns the mission set for today, generating a
// fresh one when the stored set is missing or dated. Rollover is
// deliberately forgetful: unclaimed progress from a previous day is
// discarded, never carried over.
func EnsureTodayMissions(existing *models.DailyMissionState, today string, rng *rand.Rand) *models.DailyMissionState {
	if existing != nil && existing.Date == today {
		return existing
	}
	perm := rng.Perm(len(catalog.MissionTemplates))
	fresh := &models.DailyMissionState{Date: today}
	for slot := 0; slot < MissionsPerDay && slot < len(perm); slot++ {
		fresh.Missions = append(fresh.Missions, models.MissionProgress{
			Slot:       slot,
			TemplateID: catalog.MissionTemplates[perm[slot]].ID,
		})
	}
	return fresh
}

// missionMatches reports whether a learned item counts toward a
// template. Count missions match everything; category and tag missions
// match on the item's metadata.
func missionMatches(t catalog.MissionTemplate, item catalog.VocabularyItem) bool {
	switch t.Type {
	case catalog.MissionLearnCount:
		return true
	case catalog.MissionLearnCategory:
		return item.Category == t.Category
	case catalog.MissionLearnTag:
		for _, tag := range item.Tags {
			if tag == t.Tag {
				return true
			}
		}
	}
	return false
}

// RecordLearning advances every matching, still-active mission by one
// and returns the slots that just crossed their target.
func RecordLearning(dm *models.DailyMissionState, item catalog.VocabularyItem) []int {
	var completed []int
	for i := range dm.Missions {
		m := &dm.Missions[i]
		if m.Completed {
			continue
		}
		t, ok := catalog.MissionTemplateByID(m.TemplateID)
		if !ok || !missionMatches(t, item) {
			continue
		}
		m.Current++
		if m.Current >= t.Target {
			m.Completed = true
			completed = append(completed, m.Slot)
		}
	}
	return completed
}

// ClaimMission hands out the reward for a completed slot exactly once.
// On any error the mission state is untouched and the exp is zero.
func ClaimMission(dm *models.DailyMissionState, slot int, now time.Time) (int, error) {
	for i := range dm.Missions {
		m := &dm.Missions[i]
		if m.Slot != slot {
			continue
		}
		if m.ClaimedAt != nil {
			return 0, ErrMissionClaimed
		}
		if !m.Completed {
			return 0, ErrMissionIncomplete
		}
		t, ok := catalog.MissionTemplateByID(m.TemplateID)
		if !ok {
			return 0, ErrMissionNotFound
		}
		claimed := now
		m.ClaimedAt = &claimed
		return t.Reward.Exp, nil
	}
	return 0, ErrMissionNotFound
}

// MissionStatuses joins today's slots with their template details.
func MissionStatuses(dm *models.DailyMissionState) []models.MissionStatus {
	if dm == nil {
		return nil
	}
	out := make([]models.MissionStatus, 0, len(dm.Missions))
	for _, m := range dm.Missions {
		t, ok := catalog.MissionTemplateByID(m.TemplateID)
		if !ok {
			continue
		}
		out = append(out, models.MissionStatus{
			Slot:      m.Slot,
			Template:  t,
			Current:   m.Current,
			Target:    t.Target,
			Completed: m.Completed,
			Claimed:   m.ClaimedAt != nil,
		})
	}
	return out
}

package progression

import (
	"sort"
	"time"

	"github.com/kotoba-learn/backend/internal/catalog"
	"github.com/kotoba-learn/backend/internal/models"
)

// achievementProgress measures how far a profile is toward one
// condition. Streak conditions use the best streak so an unlock earned
// once can never be "un-earned" by a later reset.
func achievementProgress(s *models.UserState, cond catalog.AchievementCondition) int {
	switch cond.Type {
	case catalog.ConditionLearnedCount:
		return len(s.LearnedItemIDs)
	case catalog.ConditionStreak:
		if s.BestStreak > s.Streak {
			return s.BestStreak
		}
		return s.Streak
	case catalog.ConditionLevel:
		return s.Level
	case catalog.ConditionTotalExp:
		return s.TotalExp
	case catalog.ConditionTagMastery:
		return s.Stats.TagProgress[cond.Tag]
	}
	return 0
}

func hasUnlocked(s *models.UserState, id string) bool {
	for _, u := range s.UnlockedAchievements {
		if u.AchievementID == id {
			return true
		}
	}
	return false
}

// UnlockAchievements scans the catalog in order and unlocks everything
// the profile now qualifies for. Unlocks are recorded un-notified, and
// earned titles join the unlocked set with the newest becoming current.
// Reward exp is NOT applied here — the caller routes the returned
// catalog entries' rewards through GainExperience.
func UnlockAchievements(s *models.UserState, now time.Time) []catalog.Achievement {
	var unlocked []catalog.Achievement
	for _, a := range catalog.Achievements {
		if hasUnlocked(s, a.ID) {
			continue
		}
		if achievementProgress(s, a.Condition) < a.Condition.Value {
			continue
		}
		s.UnlockedAchievements = append(s.UnlockedAchievements, models.UnlockedAchievement{
			AchievementID: a.ID,
			UnlockedAt:    now,
		})
		if a.Reward.Title != "" && !s.HasTitle(a.Reward.Title) {
			s.UnlockedTitles = append(s.UnlockedTitles, a.Reward.Title)
			s.CurrentTitle = a.Reward.Title
		}
		unlocked = append(unlocked, a)
	}
	return unlocked
}

// PendingNotifications returns unlocked-but-unseen achievements in
// unlock order.
func PendingNotifications(s *models.UserState) []catalog.Achievement {
	var out []catalog.Achievement
	for _, u := range s.UnlockedAchievements {
		if u.Notified {
			continue
		}
		if a, ok := catalog.AchievementByID(u.AchievementID); ok {
			out = append(out, a)
		}
	}
	return out
}

// MarkNotified flags the given achievement ids as seen and reports how
// many records actually changed.
func MarkNotified(s *models.UserState, ids []string) int {
	changed := 0
	for i := range s.UnlockedAchievements {
		u := &s.UnlockedAchievements[i]
		if u.Notified {
			continue
		}
		for _, id := range ids {
			if u.AchievementID == id {
				u.Notified = true
				changed++
				break
			}
		}
	}
	return changed
}

// UpcomingAchievements lists locked achievements ordered by how close
// the profile is, nearest first. limit <= 0 means no limit.
func UpcomingAchievements(s *models.UserState, limit int) []models.UpcomingAchievement {
	var out []models.UpcomingAchievement
	for _, a := range catalog.Achievements {
		if hasUnlocked(s, a.ID) {
			continue
		}
		p := achievementProgress(s, a.Condition)
		if p > a.Condition.Value {
			p = a.Condition.Value
		}
		out = append(out, models.UpcomingAchievement{
			Achievement: a,
			Progress:    p,
			Target:      a.Condition.Value,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi := float64(out[i].Progress) / float64(out[i].Target)
		pj := float64(out[j].Progress) / float64(out[j].Target)
		return pi > pj
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// AchievementSummary tallies unlocks overall and per category.
func AchievementSummary(s *models.UserState) models.AchievementSummary {
	sum := models.AchievementSummary{
		Total:      len(catalog.Achievements),
		ByCategory: map[string]models.CategoryTally{},
	}
	for _, a := range catalog.Achievements {
		tally := sum.ByCategory[a.Category]
		tally.Total++
		if hasUnlocked(s, a.ID) {
			tally.Unlocked++
			sum.Unlocked++
		}
		sum.ByCategory[a.Category] = tally
	}
	if sum.Total > 0 {
		sum.Percentage = sum.Unlocked * 100 / sum.Total
	}
	return sum
}

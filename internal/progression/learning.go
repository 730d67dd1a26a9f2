package progression

import (
	"errors"
	"math/rand"
	"time"

	"github.com/kotoba-learn/backend/internal/catalog"
	"github.com/kotoba-learn/backend/internal/models"
)

var ErrUnknownItem = errors.New("unknown vocabulary item")

// Learn runs the full transition for marking one item learned:
//
//	1. resolve the item
//	2. roll daily missions over to today if needed
//	3. update the streak and activity stamps
//	4. short-circuit if the item is already learned
//	5. record the item in the learned set and stats
//	6. award base exp scaled by the streak bonus
//	7. advance matching missions
//	8. collect level rewards for every level crossed
//	9. unlock achievements, then route all reward exp back
//	   through the experience engine in one final gain
//
// The state is mutated in place; persistence is the caller's concern.
// Reward-driven level-ups deliberately do not trigger a second reward
// or achievement pass.
func Learn(state *models.ProfileState, itemID int, now time.Time, rng *rand.Rand) (models.LearningResult, error) {
	item, ok := catalog.ItemByID(itemID)
	if !ok {
		return models.LearningResult{}, ErrUnknownItem
	}

	u := &state.User
	today := DateKey(now)
	u.DailyMissions = EnsureTodayMissions(u.DailyMissions, today, rng)

	// The streak and activity stamps update on every learning touch,
	// re-learns included — reviewing known material keeps a streak
	// alive. Only exp, stats, and missions are gated on a new item.
	newStreak, streakUpdated := NextStreak(u.Streak, u.LastLearnedAt, now)
	u.Streak = newStreak
	if newStreak > u.BestStreak {
		u.BestStreak = newStreak
	}
	learnedAt := now
	u.LastLearnedAt = &learnedAt

	if u.Stats.LastActiveDate != today {
		u.Stats.TodayLearned = 0
		u.Stats.LastActiveDate = today
	}

	if u.HasLearned(itemID) {
		return models.LearningResult{
			Success: true,
			State:   *state,
			ExperienceResult: models.ExperienceResult{
				NewExperience:    u.Experience,
				NewLevel:         u.Level,
				StreakMultiplier: 1.0,
			},
			IsNewItem:       false,
			StreakUpdated:   streakUpdated,
			MissionProgress: MissionStatuses(u.DailyMissions),
			NextMilestone:   NextStreakMilestone(u.Streak),
		}, nil
	}

	u.LearnedItemIDs = append(u.LearnedItemIDs, itemID)
	u.Stats.TotalLearned = len(u.LearnedItemIDs)
	u.Stats.TodayLearned++
	if u.Stats.TagProgress == nil {
		u.Stats.TagProgress = map[string]int{}
	}
	for _, tag := range item.Tags {
		u.Stats.TagProgress[tag]++
	}

	finalExp, bonusExp, multiplier := ApplyStreakBonus(BaseLearnExp, newStreak)
	expRes, err := GainExperience(u.Level, u.Experience, finalExp)
	if err != nil {
		return models.LearningResult{}, err
	}
	oldLevel := u.Level
	u.Level = expRes.NewLevel
	u.Experience = expRes.NewExperience
	u.TotalExp += finalExp
	expRes.BonusExp = bonusExp
	expRes.StreakMultiplier = multiplier

	RecordLearning(u.DailyMissions, item)

	// Sparse table, so most level-ups cross nothing. A multi-level jump
	// collects every reward on the way; the highest is the headline.
	rewardExp := 0
	var headline *catalog.LevelReward
	for lvl := oldLevel + 1; lvl <= u.Level; lvl++ {
		if r := catalog.LevelRewardFor(lvl); r != nil {
			rewardExp += r.BonusExp
			headline = r
			if r.Title != "" && !u.HasTitle(r.Title) {
				u.UnlockedTitles = append(u.UnlockedTitles, r.Title)
				u.CurrentTitle = r.Title
			}
		}
	}

	newAchievements := UnlockAchievements(u, now)
	for _, a := range newAchievements {
		rewardExp += a.Reward.Exp
	}

	if rewardExp > 0 {
		bonusRes, err := GainExperience(u.Level, u.Experience, rewardExp)
		if err != nil {
			return models.LearningResult{}, err
		}
		u.Level = bonusRes.NewLevel
		u.Experience = bonusRes.NewExperience
		u.TotalExp += rewardExp
		expRes.NewLevel = bonusRes.NewLevel
		expRes.NewExperience = bonusRes.NewExperience
		expRes.LeveledUp = expRes.LeveledUp || bonusRes.LeveledUp
		expRes.ExperienceGained += rewardExp
	}

	return models.LearningResult{
		Success:          true,
		State:            *state,
		ExperienceResult: expRes,
		IsNewItem:        true,
		StreakUpdated:    streakUpdated,
		NewAchievements:  newAchievements,
		LevelReward:      headline,
		MissionProgress:  MissionStatuses(u.DailyMissions),
		NextMilestone:    NextStreakMilestone(u.Streak),
	}, nil
}

// Unlearn removes an item from the learned set and unwinds the derived
// stats. Experience, streaks, and achievements already earned stay —
// unlearning is a correction tool, not a refund.
func Unlearn(state *models.ProfileState, itemID int) bool {
	u := &state.User
	idx := -1
	for i, id := range u.LearnedItemIDs {
		if id == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	u.LearnedItemIDs = append(u.LearnedItemIDs[:idx], u.LearnedItemIDs[idx+1:]...)
	u.Stats.TotalLearned = len(u.LearnedItemIDs)
	if item, ok := catalog.ItemByID(itemID); ok {
		for _, tag := range item.Tags {
			if u.Stats.TagProgress[tag] > 0 {
				u.Stats.TagProgress[tag]--
			}
		}
	}
	return true
}

package models

import (
	"time"

	"github.com/kotoba-learn/backend/internal/catalog"
)

// ── Core Profile State ────────────────────────────────────

// UserState is the root aggregate for a single learner profile.
// It is owned by the profile store and mutated only through the
// progression engines.
type UserState struct {
	Level      int `json:"level"`
	Experience int `json:"experience"`
	TotalExp   int `json:"total_exp"`

	LearnedItemIDs []int `json:"learned_item_ids"`

	Streak        int        `json:"streak"`
	BestStreak    int        `json:"best_streak"`
	LastLearnedAt *time.Time `json:"last_learned_at"`

	UnlockedAchievements []UnlockedAchievement `json:"unlocked_achievements"`
	CurrentTitle         string                `json:"current_title"`
	UnlockedTitles       []string              `json:"unlocked_titles"`

	DailyMissions *DailyMissionState `json:"daily_missions"`

	Stats UserStats `json:"stats"`
}

// HasLearned reports whether the item id is already in the learned set.
func (s *UserState) HasLearned(itemID int) bool {
	for _, id := range s.LearnedItemIDs {
		if id == itemID {
			return true
		}
	}
	return false
}

// HasTitle reports whether the title has already been unlocked.
func (s *UserState) HasTitle(title string) bool {
	for _, t := range s.UnlockedTitles {
		if t == title {
			return true
		}
	}
	return false
}

type UserStats struct {
	TotalLearned   int            `json:"total_learned"`
	TodayLearned   int            `json:"today_learned"`
	LastActiveDate string         `json:"last_active_date,omitempty"`
	TagProgress    map[string]int `json:"tag_progress"`
}

// UnlockedAchievement records a single permanent achievement unlock.
// The sequence on UserState is append-only; an id appears at most once.
type UnlockedAchievement struct {
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
	Notified      bool      `json:"notified"`
}

// ── Daily Missions ────────────────────────────────────────

// MissionProgress tracks one of today's three mission slots.
// Identity is the structured (date, slot, template) triple — the date
// lives on the enclosing DailyMissionState.
type MissionProgress struct {
	Slot       int        `json:"slot"`
	TemplateID string     `json:"template_id"`
	Current    int        `json:"current"`
	Completed  bool       `json:"completed"`
	ClaimedAt  *time.Time `json:"claimed_at"`
}

// DailyMissionState is the full mission set for one calendar day.
// It is regenerated wholesale when the stored date is not today, which
// intentionally forgets any unclaimed progress from the previous day.
type DailyMissionState struct {
	Date     string            `json:"date"`
	Missions []MissionProgress `json:"missions"`
}

// ── Rank Progress ─────────────────────────────────────────

// RankProgress tracks the monotonic rank-unlock ladder. CurrentRank may
// be below HighestUnlockedRank — revisiting a cleared rank is allowed.
type RankProgress struct {
	CurrentRank         int         `json:"current_rank"`
	HighestUnlockedRank int         `json:"highest_unlocked_rank"`
	RankScores          map[int]int `json:"rank_scores"`
	QuizAttempts        map[int]int `json:"quiz_attempts"`
}

// ── Profile Aggregate ─────────────────────────────────────

// ProfileState is the unit of persistence: everything the store keeps
// for one profile, stored as a single opaque blob.
type ProfileState struct {
	User  UserState    `json:"user"`
	Ranks RankProgress `json:"ranks"`
}

// InitialProfileState returns the documented default state for a brand
// new profile (and for any profile whose stored blob cannot be read).
func InitialProfileState() ProfileState {
	return ProfileState{
		User: UserState{
			Level:          1,
			CurrentTitle:   catalog.StartingTitle,
			UnlockedTitles: []string{catalog.StartingTitle},
			Stats: UserStats{
				TagProgress: map[string]int{},
			},
		},
		Ranks: RankProgress{
			CurrentRank:         1,
			HighestUnlockedRank: 1,
			RankScores:          map[int]int{},
			QuizAttempts:        map[int]int{},
		},
	}
}

// ── Result Types ──────────────────────────────────────────

// ExperienceResult describes the outcome of a single experience gain.
type ExperienceResult struct {
	NewExperience    int     `json:"new_experience"`
	NewLevel         int     `json:"new_level"`
	LeveledUp        bool    `json:"leveled_up"`
	ExperienceGained int     `json:"experience_gained"`
	BonusExp         int     `json:"bonus_exp"`
	StreakMultiplier float64 `json:"streak_multiplier"`
}

// ExpProgress is the within-level progress bar.
type ExpProgress struct {
	Current    int `json:"current"`
	Required   int `json:"required"`
	Percentage int `json:"percentage"`
}

// MissionStatus joins a mission slot's progress with its template details
// for API responses.
type MissionStatus struct {
	Slot      int                     `json:"slot"`
	Template  catalog.MissionTemplate `json:"template"`
	Current   int                     `json:"current"`
	Target    int                     `json:"target"`
	Completed bool                    `json:"completed"`
	Claimed   bool                    `json:"claimed"`
}

// LearningResult is the consolidated outcome of marking one item learned.
// Success is false when the state transition happened but could not be
// persisted; the new state is still returned so the caller can decide.
type LearningResult struct {
	Success          bool                  `json:"success"`
	State            ProfileState          `json:"state"`
	ExperienceResult ExperienceResult      `json:"experience_result"`
	IsNewItem        bool                  `json:"is_new_item"`
	StreakUpdated    bool                  `json:"streak_updated"`
	NewAchievements  []catalog.Achievement `json:"new_achievements"`
	LevelReward      *catalog.LevelReward  `json:"level_reward,omitempty"`
	MissionProgress  []MissionStatus       `json:"mission_progress"`
	NextMilestone    *catalog.StreakBonus  `json:"next_streak_milestone,omitempty"`
}

// UpcomingAchievement is a not-yet-unlocked achievement with how close
// the profile is to earning it.
type UpcomingAchievement struct {
	Achievement catalog.Achievement `json:"achievement"`
	Progress    int                 `json:"progress"`
	Target      int                 `json:"target"`
}

// AchievementSummary aggregates unlock counts for the profile screen.
type AchievementSummary struct {
	Unlocked   int                      `json:"unlocked"`
	Total      int                      `json:"total"`
	Percentage int                      `json:"percentage"`
	ByCategory map[string]CategoryTally `json:"by_category"`
}

type CategoryTally struct {
	Unlocked int `json:"unlocked"`
	Total    int `json:"total"`
}

// ── Request Types ─────────────────────────────────────────

type LearnRequest struct {
	ItemID int `json:"item_id"`
}

type ClaimMissionRequest struct {
	Slot int `json:"slot"`
}

type StartQuizRequest struct {
	RankLevel int `json:"rank_level"`
}

type AnswerRequest struct {
	Selected string `json:"selected"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Package catalog holds the static, read-only content the progression
// engines evaluate against: the vocabulary and rank ladder, the
// achievement catalog, level rewards, streak bonuses, and daily-mission
// templates. Everything here is fixed at build time.
package catalog

// StartingTitle is granted to every new profile.
const StartingTitle = "Novice"

// ── Achievements ──────────────────────────────────────────

// Condition types understood by the achievement evaluator.
const (
	ConditionLearnedCount = "learned_count"
	ConditionStreak       = "streak"
	ConditionLevel        = "level"
	ConditionTotalExp     = "total_exp"
	ConditionTagMastery   = "tag_mastery"
)

type AchievementCondition struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
	Tag   string `json:"tag,omitempty"`
}

type AchievementReward struct {
	Exp   int    `json:"exp"`
	Title string `json:"title,omitempty"`
}

// Achievement is a static catalog entry. Evaluation order is catalog
// order — there is no priority among simultaneous unlocks.
type Achievement struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Icon        string               `json:"icon"`
	Category    string               `json:"category"`
	Condition   AchievementCondition `json:"condition"`
	Reward      AchievementReward    `json:"reward"`
	Rarity      string               `json:"rarity"`
}

var Achievements = []Achievement{
	// Learning milestones
	{ID: "first_step", Name: "First Step", Description: "Learn your first item", Icon: "🐣",
		Category: "learning", Condition: AchievementCondition{Type: ConditionLearnedCount, Value: 1},
		Reward: AchievementReward{Exp: 10}, Rarity: "common"},
	{ID: "getting_started", Name: "Getting Started", Description: "Learn 5 items", Icon: "📖",
		Category: "learning", Condition: AchievementCondition{Type: ConditionLearnedCount, Value: 5},
		Reward: AchievementReward{Exp: 25}, Rarity: "common"},
	{ID: "dedicated_learner", Name: "Dedicated Learner", Description: "Learn 10 items", Icon: "📚",
		Category: "learning", Condition: AchievementCondition{Type: ConditionLearnedCount, Value: 10},
		Reward: AchievementReward{Exp: 50, Title: "Student"}, Rarity: "common"},
	{ID: "word_collector", Name: "Word Collector", Description: "Learn 25 items", Icon: "🎯",
		Category: "learning", Condition: AchievementCondition{Type: ConditionLearnedCount, Value: 25},
		Reward: AchievementReward{Exp: 100}, Rarity: "rare"},
	{ID: "wisdom_seeker", Name: "Wisdom Seeker", Description: "Learn 50 items", Icon: "🔮",
		Category: "learning", Condition: AchievementCondition{Type: ConditionLearnedCount, Value: 50},
		Reward: AchievementReward{Exp: 200, Title: "Sage in Training"}, Rarity: "rare"},
	{ID: "master_scholar", Name: "Master Scholar", Description: "Learn 100 items", Icon: "🎓",
		Category: "learning", Condition: AchievementCondition{Type: ConditionLearnedCount, Value: 100},
		Reward: AchievementReward{Exp: 500, Title: "Scholar"}, Rarity: "epic"},
	{ID: "living_dictionary", Name: "Living Dictionary", Description: "Learn 200 items", Icon: "📕",
		Category: "learning", Condition: AchievementCondition{Type: ConditionLearnedCount, Value: 200},
		Reward: AchievementReward{Exp: 1000, Title: "Living Dictionary"}, Rarity: "legendary"},

	// Streak milestones
	{ID: "three_day_streak", Name: "Three Days Running", Description: "Learn 3 days in a row", Icon: "🔥",
		Category: "streak", Condition: AchievementCondition{Type: ConditionStreak, Value: 3},
		Reward: AchievementReward{Exp: 30}, Rarity: "common"},
	{ID: "week_warrior", Name: "Week Warrior", Description: "Learn 7 days in a row", Icon: "⚔️",
		Category: "streak", Condition: AchievementCondition{Type: ConditionStreak, Value: 7},
		Reward: AchievementReward{Exp: 70, Title: "Persistent"}, Rarity: "rare"},
	{ID: "fortnight_fighter", Name: "Fortnight Fighter", Description: "Learn 14 days in a row", Icon: "🏅",
		Category: "streak", Condition: AchievementCondition{Type: ConditionStreak, Value: 14},
		Reward: AchievementReward{Exp: 150}, Rarity: "rare"},
	{ID: "monthly_master", Name: "Monthly Master", Description: "Learn 30 days in a row", Icon: "🌙",
		Category: "streak", Condition: AchievementCondition{Type: ConditionStreak, Value: 30},
		Reward: AchievementReward{Exp: 300, Title: "Iron Will"}, Rarity: "epic"},
	{ID: "hundred_days", Name: "Hundred-Day Discipline", Description: "Learn 100 days in a row", Icon: "👑",
		Category: "streak", Condition: AchievementCondition{Type: ConditionStreak, Value: 100},
		Reward: AchievementReward{Exp: 1000, Title: "Indomitable"}, Rarity: "legendary"},

	// Level milestones
	{ID: "level_5", Name: "Past the Gate", Description: "Reach level 5", Icon: "⭐",
		Category: "level", Condition: AchievementCondition{Type: ConditionLevel, Value: 5},
		Reward: AchievementReward{Exp: 50}, Rarity: "common"},
	{ID: "level_10", Name: "Double Digits", Description: "Reach level 10", Icon: "🌟",
		Category: "level", Condition: AchievementCondition{Type: ConditionLevel, Value: 10},
		Reward: AchievementReward{Exp: 100, Title: "Seeker"}, Rarity: "rare"},
	{ID: "level_25", Name: "Intermediate Proof", Description: "Reach level 25", Icon: "💫",
		Category: "level", Condition: AchievementCondition{Type: ConditionLevel, Value: 25},
		Reward: AchievementReward{Exp: 250}, Rarity: "rare"},
	{ID: "level_50", Name: "Half-Century Wisdom", Description: "Reach level 50", Icon: "🌠",
		Category: "level", Condition: AchievementCondition{Type: ConditionLevel, Value: 50},
		Reward: AchievementReward{Exp: 500, Title: "Sage"}, Rarity: "epic"},
	{ID: "level_100", Name: "The Summit", Description: "Reach level 100", Icon: "✨",
		Category: "level", Condition: AchievementCondition{Type: ConditionLevel, Value: 100},
		Reward: AchievementReward{Exp: 1000, Title: "Legendary Storyteller"}, Rarity: "legendary"},

	// Collection (tag mastery over the proverb track)
	{ID: "effort_master", Name: "Master of Effort", Description: "Learn every proverb tagged effort", Icon: "💪",
		Category: "collection", Condition: AchievementCondition{Type: ConditionTagMastery, Value: 5, Tag: "effort"},
		Reward: AchievementReward{Exp: 100, Title: "Hard Worker"}, Rarity: "rare"},
	{ID: "wisdom_keeper", Name: "Keeper of Wisdom", Description: "Learn every proverb tagged wisdom", Icon: "🧠",
		Category: "collection", Condition: AchievementCondition{Type: ConditionTagMastery, Value: 5, Tag: "wisdom"},
		Reward: AchievementReward{Exp: 100, Title: "Wisdom Keeper"}, Rarity: "rare"},

	// Special
	{ID: "exp_1000", Name: "A Thousand Experiences", Description: "Earn 1,000 lifetime exp", Icon: "💎",
		Category: "special", Condition: AchievementCondition{Type: ConditionTotalExp, Value: 1000},
		Reward: AchievementReward{Exp: 100}, Rarity: "rare"},
	{ID: "exp_10000", Name: "Ten Thousand Experiences", Description: "Earn 10,000 lifetime exp", Icon: "💠",
		Category: "special", Condition: AchievementCondition{Type: ConditionTotalExp, Value: 10000},
		Reward: AchievementReward{Exp: 500, Title: "Tower of Experience"}, Rarity: "epic"},
}

// AchievementByID looks up a catalog entry.
func AchievementByID(id string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// ── Level Rewards ─────────────────────────────────────────

// LevelReward is a sparse table entry — most levels have none.
type LevelReward struct {
	Level          int    `json:"level"`
	Title          string `json:"title,omitempty"`
	BonusExp       int    `json:"bonus_exp,omitempty"`
	UnlocksFeature string `json:"unlocks_feature,omitempty"`
	Message        string `json:"message"`
}

var LevelRewards = []LevelReward{
	{Level: 5, Title: "Beginner", BonusExp: 25, Message: "Level 5! You've earned the Beginner title."},
	{Level: 10, Title: "Seeker of Learning", BonusExp: 50, Message: "Level 10 — recognized as a Seeker."},
	{Level: 15, BonusExp: 75, Message: "Steady growth. Keep it up."},
	{Level: 20, Title: "Phrase Handler", BonusExp: 100, Message: "Level 20! A proper learner now."},
	{Level: 25, BonusExp: 125, UnlocksFeature: "advanced_phrases", Message: "Advanced proverbs unlocked."},
	{Level: 30, Title: "Proverb Doctor", BonusExp: 150, Message: "Level 30! The doctorate is yours."},
	{Level: 40, Title: "Master of Words", BonusExp: 200, Message: "Level 40 — now you guide others."},
	{Level: 50, Title: "Japanese Adept", BonusExp: 300, UnlocksFeature: "master_challenges", Message: "Level 50. The adept's domain."},
	{Level: 75, BonusExp: 400, Message: "Level 75 — a true scholar."},
	{Level: 100, Title: "Legendary Storyteller", BonusExp: 1000, Message: "Level 100. You are legend."},
}

// LevelRewardFor returns the reward for an exact level, or nil.
func LevelRewardFor(level int) *LevelReward {
	for i := range LevelRewards {
		if LevelRewards[i].Level == level {
			return &LevelRewards[i]
		}
	}
	return nil
}

// ── Streak Bonuses ────────────────────────────────────────

// StreakBonus maps a consecutive-day threshold to an exp multiplier.
// The highest threshold met wins.
type StreakBonus struct {
	Days       int     `json:"days"`
	Multiplier float64 `json:"multiplier"`
	BonusExp   int     `json:"bonus_exp"`
	Message    string  `json:"message"`
}

// StreakBonuses is ordered by ascending threshold.
var StreakBonuses = []StreakBonus{
	{Days: 3, Multiplier: 1.1, BonusExp: 5, Message: "3 days straight — on a roll!"},
	{Days: 7, Multiplier: 1.2, BonusExp: 20, Message: "A full week!"},
	{Days: 14, Multiplier: 1.3, BonusExp: 50, Message: "Two weeks — persistence pays."},
	{Days: 30, Multiplier: 1.5, BonusExp: 100, Message: "A whole month. The real deal."},
	{Days: 100, Multiplier: 2.0, BonusExp: 500, Message: "100 days. Legendary."},
}

// ── Daily Mission Templates ───────────────────────────────

const (
	MissionLearnCount    = "learn_count"
	MissionLearnTag      = "learn_tag"
	MissionLearnCategory = "learn_category"
)

type MissionReward struct {
	Exp int `json:"exp"`
}

type MissionTemplate struct {
	ID          string        `json:"id"`
	Type        string        `json:"type"`
	Description string        `json:"description"`
	Target      int           `json:"target"`
	Tag         string        `json:"tag,omitempty"`
	Category    string        `json:"category,omitempty"`
	Reward      MissionReward `json:"reward"`
}

var MissionTemplates = []MissionTemplate{
	{ID: "learn_3", Type: MissionLearnCount, Description: "Learn 3 new items today", Target: 3, Reward: MissionReward{Exp: 30}},
	{ID: "learn_5", Type: MissionLearnCount, Description: "Learn 5 new items today", Target: 5, Reward: MissionReward{Exp: 50}},
	{ID: "cat_furniture", Type: MissionLearnCategory, Description: "Learn a furniture word", Target: 1, Category: "furniture", Reward: MissionReward{Exp: 20}},
	{ID: "cat_food", Type: MissionLearnCategory, Description: "Learn a food word", Target: 1, Category: "food", Reward: MissionReward{Exp: 20}},
	{ID: "cat_animals", Type: MissionLearnCategory, Description: "Learn an animal word", Target: 1, Category: "animals", Reward: MissionReward{Exp: 20}},
	{ID: "cat_clothes", Type: MissionLearnCategory, Description: "Learn a clothing word", Target: 1, Category: "clothes", Reward: MissionReward{Exp: 20}},
	{ID: "cat_body", Type: MissionLearnCategory, Description: "Learn a body-part word", Target: 1, Category: "body", Reward: MissionReward{Exp: 20}},
	{ID: "cat_kitchen", Type: MissionLearnCategory, Description: "Learn a kitchen word", Target: 1, Category: "kitchen", Reward: MissionReward{Exp: 20}},
	{ID: "cat_nature", Type: MissionLearnCategory, Description: "Learn a nature word", Target: 1, Category: "nature", Reward: MissionReward{Exp: 20}},
	{ID: "cat_transport", Type: MissionLearnCategory, Description: "Learn a transport word", Target: 1, Category: "transport", Reward: MissionReward{Exp: 20}},
	{ID: "cat_buildings", Type: MissionLearnCategory, Description: "Learn a building word", Target: 1, Category: "buildings", Reward: MissionReward{Exp: 20}},
	{ID: "tag_effort", Type: MissionLearnTag, Description: "Learn a proverb about effort", Target: 1, Tag: "effort", Reward: MissionReward{Exp: 20}},
}

// MissionTemplateByID looks up a mission template.
func MissionTemplateByID(id string) (MissionTemplate, bool) {
	for _, t := range MissionTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return MissionTemplate{}, false
}

// Package progression implements the gamification rules: experience
// and leveling, daily streaks, achievements, daily missions, and the
// orchestrated learning transition that ties them together. Engine
// functions are pure — they take explicit state and an explicit clock
// value and return results; only Service touches storage.
package progression

import (
	"errors"

	"github.com/kotoba-learn/backend/internal/catalog"
	"github.com/kotoba-learn/backend/internal/models"
)

// BaseLearnExp is the pre-bonus award for learning a new item.
const BaseLearnExp = 10

var ErrNegativeExp = errors.New("experience amount must be non-negative")

// RequiredExp returns the experience needed to advance from level to
// level+1. The curve is linear: level N needs N*100.
func RequiredExp(level int) int {
	return level * 100
}

// GainExperience applies an already-final experience amount to a
// level/experience pair, carrying overflow across as many level-ups as
// the amount covers. Leftover experience stays on the new level.
func GainExperience(level, experience, amount int) (models.ExperienceResult, error) {
	if amount < 0 {
		return models.ExperienceResult{}, ErrNegativeExp
	}

	newLevel := level
	newExp := experience + amount
	for newExp >= RequiredExp(newLevel) {
		newExp -= RequiredExp(newLevel)
		newLevel++
	}

	return models.ExperienceResult{
		NewExperience:    newExp,
		NewLevel:         newLevel,
		LeveledUp:        newLevel > level,
		ExperienceGained: amount,
		StreakMultiplier: 1.0,
	}, nil
}

// ApplyStreakBonus scales a base award by the streak multiplier.
// The highest threshold the streak meets wins; below every threshold
// the award passes through unchanged. The final amount is floored, and
// the bonus is the difference from the base.
func ApplyStreakBonus(baseExp, streak int) (finalExp, bonusExp int, multiplier float64) {
	multiplier = 1.0
	for _, b := range catalog.StreakBonuses {
		if streak >= b.Days {
			multiplier = b.Multiplier
		}
	}
	finalExp = int(float64(baseExp) * multiplier)
	return finalExp, finalExp - baseExp, multiplier
}

// NextStreakMilestone returns the lowest streak-bonus threshold the
// streak has not reached yet, or nil past the last one.
func NextStreakMilestone(streak int) *catalog.StreakBonus {
	for i := range catalog.StreakBonuses {
		if streak < catalog.StreakBonuses[i].Days {
			return &catalog.StreakBonuses[i]
		}
	}
	return nil
}

// Progress renders the within-level progress bar. The percentage is
// rounded to the nearest whole point and capped at 100.
func Progress(level, experience int) models.ExpProgress {
	required := RequiredExp(level)
	pct := 0
	if required > 0 {
		pct = (experience*100 + required/2) / required
	}
	if pct > 100 {
		pct = 100
	}
	return models.ExpProgress{
		Current:    experience,
		Required:   required,
		Percentage: pct,
	}
}

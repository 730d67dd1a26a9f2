package progression

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/kotoba-learn/backend/internal/catalog"
	"github.com/kotoba-learn/backend/internal/models"
)

// StateStore is the persistence collaborator. Profile state is an
// opaque blob to the store; all rules live in this package.
type StateStore interface {
	CreateProfile(ctx context.Context, state models.ProfileState) (uuid.UUID, error)
	Load(ctx context.Context, id uuid.UUID) (models.ProfileState, error)
	Save(ctx context.Context, id uuid.UUID, state models.ProfileState) error
}

var ErrTitleLocked = errors.New("title has not been unlocked")

// Service wires the pure engines to storage and a clock. The clock and
// rng are injectable so tests can pin time and shuffle order.
type Service struct {
	store StateStore
	now   func() time.Time
	rng   *rand.Rand
}

func NewService(store StateStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithClock replaces the service clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithRand replaces the mission-selection rng.
func (s *Service) WithRand(rng *rand.Rand) *Service {
	s.rng = rng
	return s
}

// ClaimResult is the outcome of claiming one mission reward.
type ClaimResult struct {
	Success          bool                    `json:"success"`
	ExpEarned        int                     `json:"exp_earned"`
	ExperienceResult models.ExperienceResult `json:"experience_result"`
	NewAchievements  []catalog.Achievement   `json:"new_achievements,omitempty"`
	State            models.ProfileState     `json:"state"`
}

// CreateProfile makes a fresh profile with the documented initial state.
func (s *Service) CreateProfile(ctx context.Context) (uuid.UUID, models.ProfileState, error) {
	state := models.InitialProfileState()
	id, err := s.store.CreateProfile(ctx, state)
	if err != nil {
		return uuid.Nil, models.ProfileState{}, fmt.Errorf("creating profile: %w", err)
	}
	log.Printf("[progression] created profile %s", id)
	return id, state, nil
}

// GetProfile loads a profile's current state.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (models.ProfileState, error) {
	return s.store.Load(ctx, id)
}

// Learn marks an item learned and persists the transition. A failed
// save is reported through Success=false on the result rather than an
// error, so the caller still sees the computed state.
func (s *Service) Learn(ctx context.Context, id uuid.UUID, itemID int) (models.LearningResult, error) {
	state, err := s.store.Load(ctx, id)
	if err != nil {
		return models.LearningResult{}, err
	}

	result, err := Learn(&state, itemID, s.now(), s.rng)
	if err != nil {
		return models.LearningResult{}, err
	}

	if err := s.store.Save(ctx, id, state); err != nil {
		log.Printf("[progression] save failed for profile %s: %v", id, err)
		result.Success = false
	}
	return result, nil
}

// Unlearn removes an item from the learned set.
func (s *Service) Unlearn(ctx context.Context, id uuid.UUID, itemID int) (models.ProfileState, bool, error) {
	state, err := s.store.Load(ctx, id)
	if err != nil {
		return models.ProfileState{}, false, err
	}
	removed := Unlearn(&state, itemID)
	if removed {
		if err := s.store.Save(ctx, id, state); err != nil {
			return state, true, fmt.Errorf("saving profile %s: %w", id, err)
		}
	}
	return state, removed, nil
}

// Missions returns today's mission set, rolling over from a previous
// day if needed. A rollover is persisted immediately.
func (s *Service) Missions(ctx context.Context, id uuid.UUID) ([]models.MissionStatus, error) {
	state, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	today := DateKey(s.now())
	before := state.User.DailyMissions
	state.User.DailyMissions = EnsureTodayMissions(before, today, s.rng)
	if state.User.DailyMissions != before {
		if err := s.store.Save(ctx, id, state); err != nil {
			return nil, fmt.Errorf("saving profile %s: %w", id, err)
		}
	}
	return MissionStatuses(state.User.DailyMissions), nil
}

// ClaimMission pays out a completed mission slot. The reward runs
// through the experience engine, and any achievements that newly
// qualify (total-exp or level conditions) unlock in the same call.
func (s *Service) ClaimMission(ctx context.Context, id uuid.UUID, slot int) (ClaimResult, error) {
	state, err := s.store.Load(ctx, id)
	if err != nil {
		return ClaimResult{}, err
	}
	now := s.now()
	u := &state.User
	u.DailyMissions = EnsureTodayMissions(u.DailyMissions, DateKey(now), s.rng)

	exp, err := ClaimMission(u.DailyMissions, slot, now)
	if err != nil {
		return ClaimResult{}, err
	}

	expRes, err := GainExperience(u.Level, u.Experience, exp)
	if err != nil {
		return ClaimResult{}, err
	}
	u.Level = expRes.NewLevel
	u.Experience = expRes.NewExperience
	u.TotalExp += exp

	newAchievements := UnlockAchievements(u, now)
	rewardExp := 0
	for _, a := range newAchievements {
		rewardExp += a.Reward.Exp
	}
	if rewardExp > 0 {
		bonusRes, err := GainExperience(u.Level, u.Experience, rewardExp)
		if err != nil {
			return ClaimResult{}, err
		}
		u.Level = bonusRes.NewLevel
		u.Experience = bonusRes.NewExperience
		u.TotalExp += rewardExp
		expRes.NewLevel = bonusRes.NewLevel
		expRes.NewExperience = bonusRes.NewExperience
		expRes.LeveledUp = expRes.LeveledUp || bonusRes.LeveledUp
		expRes.ExperienceGained += rewardExp
	}

	result := ClaimResult{
		Success:          true,
		ExpEarned:        exp,
		ExperienceResult: expRes,
		NewAchievements:  newAchievements,
		State:            state,
	}
	if err := s.store.Save(ctx, id, state); err != nil {
		log.Printf("[progression] save failed for profile %s: %v", id, err)
		result.Success = false
	}
	return result, nil
}

// PendingAchievements lists unlocked-but-unseen achievements.
func (s *Service) PendingAchievements(ctx context.Context, id uuid.UUID) ([]catalog.Achievement, error) {
	state, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return PendingNotifications(&state.User), nil
}

// MarkAchievementsNotified flags achievements as seen and persists.
func (s *Service) MarkAchievementsNotified(ctx context.Context, id uuid.UUID, ids []string) (int, error) {
	state, err := s.store.Load(ctx, id)
	if err != nil {
		return 0, err
	}
	changed := MarkNotified(&state.User, ids)
	if changed > 0 {
		if err := s.store.Save(ctx, id, state); err != nil {
			return 0, fmt.Errorf("saving profile %s: %w", id, err)
		}
	}
	return changed, nil
}

// Upcoming lists the nearest locked achievements.
func (s *Service) Upcoming(ctx context.Context, id uuid.UUID, limit int) ([]models.UpcomingAchievement, error) {
	state, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return UpcomingAchievements(&state.User, limit), nil
}

// Summary tallies achievement completion for the profile screen.
func (s *Service) Summary(ctx context.Context, id uuid.UUID) (models.AchievementSummary, error) {
	state, err := s.store.Load(ctx, id)
	if err != nil {
		return models.AchievementSummary{}, err
	}
	return AchievementSummary(&state.User), nil
}

// SelectTitle switches the displayed title to any already-unlocked one.
func (s *Service) SelectTitle(ctx context.Context, id uuid.UUID, title string) (models.ProfileState, error) {
	state, err := s.store.Load(ctx, id)
	if err != nil {
		return models.ProfileState{}, err
	}
	if !state.User.HasTitle(title) {
		return models.ProfileState{}, ErrTitleLocked
	}
	state.User.CurrentTitle = title
	if err := s.store.Save(ctx, id, state); err != nil {
		return models.ProfileState{}, fmt.Errorf("saving profile %s: %w", id, err)
	}
	return state, nil
}

package quiz

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kotoba-learn/backend/internal/catalog"
	"github.com/kotoba-learn/backend/internal/models"
	"github.com/kotoba-learn/backend/internal/progression"
)

// sessionTTL bounds how long an abandoned session lingers in memory.
const sessionTTL = time.Hour

var ErrSessionNotFound = errors.New("quiz session not found")

// Service owns the in-memory session registry and applies completed
// quiz outcomes to persisted profile state.
type Service struct {
	store progression.StateStore
	now   func() time.Time
	rng   *rand.Rand

	mu       sync.Mutex
	sessions map[uuid.UUID]*models.QuizSession
}

func NewService(store progression.StateStore) *Service {
	return &Service{
		store:    store,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		sessions: make(map[uuid.UUID]*models.QuizSession),
	}
}

// WithClock replaces the service clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithRand replaces the shuffle rng.
func (s *Service) WithRand(rng *rand.Rand) *Service {
	s.rng = rng
	return s
}

// CompletedQuiz is the full outcome of finishing a session: the scored
// result plus the profile-state consequences of applying it.
type CompletedQuiz struct {
	Success          bool                    `json:"success"`
	Result           models.QuizResult       `json:"result"`
	ExperienceResult models.ExperienceResult `json:"experience_result"`
	NewAchievements  []catalog.Achievement   `json:"new_achievements,omitempty"`
	State            models.ProfileState     `json:"state"`
}

// Start validates eligibility and registers a new session.
func (s *Service) Start(ctx context.Context, profileID uuid.UUID, rank int) (*models.QuizSession, error) {
	state, err := s.store.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if err := CanAttemptQuiz(&state, rank); err != nil {
		return nil, err
	}

	now := s.now()
	session, err := NewSession(profileID, rank, s.rng, now)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.pruneLocked(now)
	s.sessions[session.ID] = session
	s.mu.Unlock()

	log.Printf("[quiz] started session %s for profile %s rank %d", session.ID, profileID, rank)
	return session, nil
}

// Get returns a live session.
func (s *Service) Get(sessionID uuid.UUID) (*models.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Answer grades the current question. The returned next question is nil
// once the session is complete.
func (s *Service) Answer(sessionID uuid.UUID, selected string) (models.QuizAnswer, *models.QuizQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return models.QuizAnswer{}, nil, ErrSessionNotFound
	}
	answer, err := RecordAnswer(session, selected, s.now())
	if err != nil {
		return models.QuizAnswer{}, nil, err
	}
	return answer, session.CurrentQuestion(), nil
}

// Finish scores a completed session, folds the outcome into the profile
// (rank ladder, exp, achievements), persists, and drops the session.
// A failed save surfaces as Success=false with the computed state
// still returned.
func (s *Service) Finish(ctx context.Context, sessionID uuid.UUID) (CompletedQuiz, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return CompletedQuiz{}, ErrSessionNotFound
	}

	state, err := s.store.Load(ctx, session.ProfileID)
	if err != nil {
		return CompletedQuiz{}, err
	}

	result, err := ScoreSession(session, &state.Ranks)
	if err != nil {
		return CompletedQuiz{}, err
	}
	UpdateRankProgress(&state.Ranks, result)

	u := &state.User
	expRes, err := progression.GainExperience(u.Level, u.Experience, result.ExpEarned)
	if err != nil {
		return CompletedQuiz{}, err
	}
	u.Level = expRes.NewLevel
	u.Experience = expRes.NewExperience
	u.TotalExp += result.ExpEarned

	newAchievements := progression.UnlockAchievements(u, s.now())
	rewardExp := 0
	for _, a := range newAchievements {
		rewardExp += a.Reward.Exp
	}
	if rewardExp > 0 {
		bonusRes, err := progression.GainExperience(u.Level, u.Experience, rewardExp)
		if err != nil {
			return CompletedQuiz{}, err
		}
		u.Level = bonusRes.NewLevel
		u.Experience = bonusRes.NewExperience
		u.TotalExp += rewardExp
		expRes.NewLevel = bonusRes.NewLevel
		expRes.NewExperience = bonusRes.NewExperience
		expRes.LeveledUp = expRes.LeveledUp || bonusRes.LeveledUp
		expRes.ExperienceGained += rewardExp
	}

	completed := CompletedQuiz{
		Success:          true,
		Result:           result,
		ExperienceResult: expRes,
		NewAchievements:  newAchievements,
		State:            state,
	}
	if err := s.store.Save(ctx, session.ProfileID, state); err != nil {
		log.Printf("[quiz] save failed for profile %s: %v", session.ProfileID, err)
		completed.Success = false
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	return completed, nil
}

// pruneLocked drops sessions past their TTL. Caller holds s.mu.
func (s *Service) pruneLocked(now time.Time) {
	for id, session := range s.sessions {
		if now.Sub(session.StartedAt) > sessionTTL {
			delete(s.sessions, id)
		}
	}
}

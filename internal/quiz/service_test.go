package quiz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kotoba-learn/backend/internal/catalog"
	"github.com/kotoba-learn/backend/internal/models"
)

type memStore struct {
	states map[uuid.UUID]models.ProfileState
}

func newMemStore() *memStore {
	return &memStore{states: map[uuid.UUID]models.ProfileState{}}
}

func (m *memStore) CreateProfile(ctx context.Context, state models.ProfileState) (uuid.UUID, error) {
	id := uuid.New()
	m.states[id] = state
	return id, nil
}

func (m *memStore) Load(ctx context.Context, id uuid.UUID) (models.ProfileState, error) {
	if state, ok := m.states[id]; ok {
		return state, nil
	}
	return models.InitialProfileState(), nil
}

func (m *memStore) Save(ctx context.Context, id uuid.UUID, state models.ProfileState) error {
	m.states[id] = state
	return nil
}

// seedProfile creates a profile with every rank-1 item learned.
func seedProfile(t *testing.T, store *memStore) uuid.UUID {
	t.Helper()
	state := models.InitialProfileState()
	for _, it := range catalog.ItemsByRank(1) {
		state.User.LearnedItemIDs = append(state.User.LearnedItemIDs, it.ID)
	}
	id, err := store.CreateProfile(context.Background(), state)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestService_FullQuizFlow(t *testing.T) {
	store := newMemStore()
	svc := NewService(store).WithRand(testRng())
	profileID := seedProfile(t, store)

	session, err := svc.Start(context.Background(), profileID, 1)
	if err != nil {
		t.Fatalf("expected start to succeed, got: %v", err)
	}

	// Answer everything correctly through the service.
	for {
		current, err := svc.Get(session.ID)
		if err != nil {
			t.Fatal(err)
		}
		q := current.CurrentQuestion()
		if q == nil {
			break
		}
		if _, _, err := svc.Answer(session.ID, q.CorrectAnswer); err != nil {
			t.Fatal(err)
		}
	}

	completed, err := svc.Finish(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("expected finish to succeed, got: %v", err)
	}
	if completed.Result.Score != 100 || !completed.Result.Passed {
		t.Errorf("expected perfect pass, got %+v", completed.Result)
	}
	if !completed.Result.NewRankUnlocked {
		t.Error("expected rank 2 unlock")
	}

	// Outcome persisted: ladder advanced and exp awarded.
	state, _ := store.Load(context.Background(), profileID)
	if state.Ranks.HighestUnlockedRank != 2 {
		t.Errorf("expected highest rank 2, got %d", state.Ranks.HighestUnlockedRank)
	}
	wantExp := len(session.Questions)*ExpPerCorrect + PassBonusExp
	if state.User.TotalExp < wantExp {
		t.Errorf("expected at least %d exp, got %d", wantExp, state.User.TotalExp)
	}

	// The session is gone once finished.
	if _, err := svc.Get(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected session dropped after finish, got %v", err)
	}
}

func TestService_StartRequiresLearnedItems(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)

	id, err := store.CreateProfile(context.Background(), models.InitialProfileState())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Start(context.Background(), id, 1); !errors.Is(err, ErrItemsNotLearned) {
		t.Errorf("expected ErrItemsNotLearned, got %v", err)
	}
	if _, err := svc.Start(context.Background(), id, 3); !errors.Is(err, ErrRankLocked) {
		t.Errorf("expected ErrRankLocked, got %v", err)
	}
}

func TestService_FinishIncompleteSessionFails(t *testing.T) {
	store := newMemStore()
	svc := NewService(store).WithRand(testRng())
	profileID := seedProfile(t, store)

	session, err := svc.Start(context.Background(), profileID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Finish(context.Background(), session.ID); err == nil {
		t.Error("expected finishing an incomplete session to fail")
	}
}

func TestService_SessionExpiry(t *testing.T) {
	store := newMemStore()
	now := time.Now()
	svc := NewService(store).WithRand(testRng())
	profileID := seedProfile(t, store)

	svc.WithClock(func() time.Time { return now })
	session, err := svc.Start(context.Background(), profileID, 1)
	if err != nil {
		t.Fatal(err)
	}

	// A later Start past the TTL prunes the stale session.
	svc.WithClock(func() time.Time { return now.Add(2 * time.Hour) })
	if _, err := svc.Start(context.Background(), profileID, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected stale session pruned, got %v", err)
	}
}

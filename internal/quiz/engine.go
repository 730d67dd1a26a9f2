// Package quiz generates rank-unlock quizzes from the vocabulary
// catalog, scores them, and advances the rank ladder. Sessions are
// in-memory only; rank progress lives on the persisted profile state.
package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/kotoba-learn/backend/internal/catalog"
	"github.com/kotoba-learn/backend/internal/models"
)

const (
	// ExpPerCorrect is awarded per correct answer, PassBonusExp once on
	// a passing score.
	ExpPerCorrect = 10
	PassBonusExp  = 50

	optionCount = 4
)

var (
	ErrRankLocked      = errors.New("rank is not unlocked yet")
	ErrItemsNotLearned = errors.New("not all items of this rank are learned")
	ErrNoContent       = errors.New("rank has no quiz content")
	ErrSessionComplete = errors.New("quiz session is already complete")
	ErrUnknownRank     = errors.New("unknown rank")
)

// IsRankUnlocked reports whether the ladder allows quizzing this rank.
func IsRankUnlocked(rp *models.RankProgress, rank int) bool {
	return rank >= 1 && rank <= rp.HighestUnlockedRank
}

// CanAttemptQuiz gates a quiz start: the rank must exist, be unlocked,
// and every one of its items must already be learned.
func CanAttemptQuiz(state *models.ProfileState, rank int) error {
	if _, ok := catalog.RankByLevel(rank); !ok {
		return ErrUnknownRank
	}
	if !IsRankUnlocked(&state.Ranks, rank) {
		return ErrRankLocked
	}
	items := catalog.ItemsByRank(rank)
	if len(items) == 0 {
		return ErrNoContent
	}
	for _, it := range items {
		if !state.User.HasLearned(it.ID) {
			return ErrItemsNotLearned
		}
	}
	return nil
}

// questionType rotates modalities over the rank's items in catalog
// order, before the question order is shuffled.
func questionType(index int) string {
	switch index % 3 {
	case 0:
		return models.QuizTypeImageToWord
	case 1:
		return models.QuizTypeWordToImage
	default:
		return models.QuizTypeReading
	}
}

// answerFor extracts the answer text for a modality.
func answerFor(qType string, item catalog.VocabularyItem) string {
	switch qType {
	case models.QuizTypeImageToWord:
		return item.Word
	case models.QuizTypeWordToImage:
		return item.Image
	default:
		return item.Reading
	}
}

// buildQuestion assembles one question: the correct answer plus three
// distractors drawn without replacement from the rank's other items,
// then a shuffle of the options.
func buildQuestion(qType string, item catalog.VocabularyItem, pool []catalog.VocabularyItem, rng *rand.Rand) models.QuizQuestion {
	q := models.QuizQuestion{
		ID:            fmt.Sprintf("q-%d-%s", item.ID, qType),
		Type:          qType,
		VocabularyID:  item.ID,
		CorrectAnswer: answerFor(qType, item),
	}
	switch qType {
	case models.QuizTypeImageToWord:
		q.Prompt = item.Meaning
		q.Image = item.Image
	case models.QuizTypeWordToImage:
		q.Prompt = item.Word
	default:
		q.Prompt = item.Word
		q.Image = item.Image
	}

	var others []catalog.VocabularyItem
	for _, o := range pool {
		if o.ID != item.ID {
			others = append(others, o)
		}
	}
	rng.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })

	options := []string{q.CorrectAnswer}
	for _, o := range others {
		if len(options) == optionCount {
			break
		}
		candidate := answerFor(qType, o)
		dup := false
		for _, existing := range options {
			if existing == candidate {
				dup = true
				break
			}
		}
		if !dup {
			options = append(options, candidate)
		}
	}
	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	q.Options = options
	return q
}

// NewSession builds a full quiz over every item of the rank: one
// question per item, modality rotating in catalog order, question order
// shuffled afterwards.
func NewSession(profileID uuid.UUID, rank int, rng *rand.Rand, now time.Time) (*models.QuizSession, error) {
	items := catalog.ItemsByRank(rank)
	if len(items) == 0 {
		return nil, ErrNoContent
	}

	questions := make([]models.QuizQuestion, 0, len(items))
	for i, item := range items {
		questions = append(questions, buildQuestion(questionType(i), item, items, rng))
	}
	rng.Shuffle(len(questions), func(i, j int) { questions[i], questions[j] = questions[j], questions[i] })

	return &models.QuizSession{
		ID:        uuid.New(),
		ProfileID: profileID,
		RankLevel: rank,
		Questions: questions,
		StartedAt: now,
	}, nil
}

// RecordAnswer grades the current question and advances the session.
func RecordAnswer(s *models.QuizSession, selected string, now time.Time) (models.QuizAnswer, error) {
	q := s.CurrentQuestion()
	if q == nil {
		return models.QuizAnswer{}, ErrSessionComplete
	}
	answer := models.QuizAnswer{
		QuestionID: q.ID,
		Selected:   selected,
		Correct:    selected == q.CorrectAnswer,
	}
	s.Answers = append(s.Answers, answer)
	s.CurrentIndex++
	if s.Complete() {
		completed := now
		s.CompletedAt = &completed
	}
	return answer, nil
}

// Score rounds to the nearest whole percentage.
func Score(correct, total int) int {
	if total == 0 {
		return 0
	}
	return (100*correct + total/2) / total
}

// ScoreSession turns a completed session into a result against the
// rank's required score. NewRankUnlocked means a pass on the current
// frontier; the ladder cap is applied when the result is folded in.
func ScoreSession(s *models.QuizSession, rp *models.RankProgress) (models.QuizResult, error) {
	if !s.Complete() {
		return models.QuizResult{}, errors.New("quiz session is not complete")
	}
	rank, ok := catalog.RankByLevel(s.RankLevel)
	if !ok {
		return models.QuizResult{}, ErrUnknownRank
	}

	correct := 0
	for _, a := range s.Answers {
		if a.Correct {
			correct++
		}
	}
	score := Score(correct, len(s.Questions))
	passed := score >= rank.RequiredScore

	exp := correct * ExpPerCorrect
	if passed {
		exp += PassBonusExp
	}

	return models.QuizResult{
		RankLevel:       s.RankLevel,
		TotalQuestions:  len(s.Questions),
		CorrectAnswers:  correct,
		Score:           score,
		Passed:          passed,
		ExpEarned:       exp,
		NewRankUnlocked: passed && s.RankLevel == rp.HighestUnlockedRank,
	}, nil
}

// UpdateRankProgress folds a result into the ladder. Scores keep the
// best attempt; only a pass on the frontier advances the unlock, capped
// at the ladder top.
func UpdateRankProgress(rp *models.RankProgress, result models.QuizResult) {
	if rp.RankScores == nil {
		rp.RankScores = map[int]int{}
	}
	if rp.QuizAttempts == nil {
		rp.QuizAttempts = map[int]int{}
	}
	rp.QuizAttempts[result.RankLevel]++
	if result.Score > rp.RankScores[result.RankLevel] {
		rp.RankScores[result.RankLevel] = result.Score
	}
	if result.NewRankUnlocked {
		rp.HighestUnlockedRank = result.RankLevel + 1
		if rp.HighestUnlockedRank > catalog.MaxRank {
			rp.HighestUnlockedRank = catalog.MaxRank
		}
	}
}

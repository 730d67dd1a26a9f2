package models

import (
	"time"

	"github.com/google/uuid"
)

// Quiz question modalities. Listening is reserved for a future audio
// feature and never generated today.
const (
	QuizTypeImageToWord = "image_to_word"
	QuizTypeWordToImage = "word_to_image"
	QuizTypeReading     = "reading"
)

// QuizQuestion is one generated question. The correct answer stays
// server-side; clients only ever see the shuffled options.
type QuizQuestion struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	VocabularyID  int      `json:"vocabulary_id"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	Image         string   `json:"image,omitempty"`
	CorrectAnswer string   `json:"-"`
}

type QuizAnswer struct {
	QuestionID string `json:"question_id"`
	Selected   string `json:"selected"`
	Correct    bool   `json:"correct"`
}

// QuizSession is ephemeral: it lives in memory for the duration of one
// quiz attempt and is never persisted. Once every question has an answer
// the session is immutable.
type QuizSession struct {
	ID           uuid.UUID      `json:"id"`
	ProfileID    uuid.UUID      `json:"profile_id"`
	RankLevel    int            `json:"rank_level"`
	Questions    []QuizQuestion `json:"questions"`
	CurrentIndex int            `json:"current_index"`
	Answers      []QuizAnswer   `json:"answers"`
	StartedAt    time.Time      `json:"started_at"`
	CompletedAt  *time.Time     `json:"completed_at"`
}

// Complete reports whether every question has been answered.
func (s *QuizSession) Complete() bool {
	return len(s.Answers) >= len(s.Questions)
}

// CurrentQuestion returns the question awaiting an answer, or nil once
// the session is complete.
func (s *QuizSession) CurrentQuestion() *QuizQuestion {
	if s.CurrentIndex >= len(s.Questions) || s.Complete() {
		return nil
	}
	return &s.Questions[s.CurrentIndex]
}

// QuizResult is the scored outcome of a completed session.
type QuizResult struct {
	RankLevel       int  `json:"rank_level"`
	TotalQuestions  int  `json:"total_questions"`
	CorrectAnswers  int  `json:"correct_answers"`
	Score           int  `json:"score"`
	Passed          bool `json:"passed"`
	ExpEarned       int  `json:"exp_earned"`
	NewRankUnlocked bool `json:"new_rank_unlocked"`
}

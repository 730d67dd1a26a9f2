package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/kotoba-learn/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// sessionView strips answers-in-progress down to what the client needs.
type sessionView struct {
	ID              uuid.UUID            `json:"id"`
	RankLevel       int                  `json:"rank_level"`
	TotalQuestions  int                  `json:"total_questions"`
	CurrentIndex    int                  `json:"current_index"`
	CurrentQuestion *models.QuizQuestion `json:"current_question,omitempty"`
}

func viewOf(s *models.QuizSession) sessionView {
	return sessionView{
		ID:              s.ID,
		RankLevel:       s.RankLevel,
		TotalQuestions:  len(s.Questions),
		CurrentIndex:    s.CurrentIndex,
		CurrentQuestion: s.CurrentQuestion(),
	}
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid profile id"})
		return
	}
	var req models.StartQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	session, err := h.service.Start(r.Context(), profileID, req.RankLevel)
	switch {
	case errors.Is(err, ErrUnknownRank), errors.Is(err, ErrNoContent):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, ErrRankLocked), errors.Is(err, ErrItemsNotLearned):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to start quiz"})
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(session))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(mux.Vars(r)["sessionId"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid session id"})
		return
	}
	session, err := h.service.Get(sessionID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, viewOf(session))
}

func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(mux.Vars(r)["sessionId"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid session id"})
		return
	}
	var req models.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	answer, next, err := h.service.Answer(sessionID, req.Selected)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, ErrSessionComplete):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record answer"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"answer":        answer,
		"next_question": next,
		"finished":      next == nil,
	})
}

func (h *Handler) Result(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(mux.Vars(r)["sessionId"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid session id"})
		return
	}

	completed, err := h.service.Finish(r.Context(), sessionID)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, completed)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

package progression

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/kotoba-learn/backend/internal/catalog"
	"github.com/kotoba-learn/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func profileID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	return id, err == nil
}

// ProfileResponse is the GET profile payload: raw state plus the
// derived fields the client renders directly.
type ProfileResponse struct {
	ID            uuid.UUID            `json:"id"`
	State         models.ProfileState  `json:"state"`
	ExpProgress   models.ExpProgress   `json:"exp_progress"`
	NextMilestone *catalog.StreakBonus `json:"next_streak_milestone,omitempty"`
}

// ── Profiles ────────────────────────────────────────────

func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	id, state, err := h.service.CreateProfile(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create profile"})
		return
	}
	writeJSON(w, http.StatusCreated, ProfileResponse{
		ID:          id,
		State:       state,
		ExpProgress: Progress(state.User.Level, state.User.Experience),
	})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid profile id"})
		return
	}
	state, err := h.service.GetProfile(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load profile"})
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{
		ID:            id,
		State:         state,
		ExpProgress:   Progress(state.User.Level, state.User.Experience),
		NextMilestone: NextStreakMilestone(state.User.Streak),
	})
}

// ── Learning ────────────────────────────────────────────

func (h *Handler) Learn(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid profile id"})
		return
	}
	var req models.LearnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	result, err := h.service.Learn(r.Context(), id, req.ItemID)
	if errors.Is(err, ErrUnknownItem) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record learning"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) Unlearn(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid profile id"})
		return
	}
	var req models.LearnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	state, removed, err := h.service.Unlearn(r.Context(), id, req.ItemID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update profile"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"removed": removed,
		"state":   state,
	})
}

// ── Daily Missions ──────────────────────────────────────

func (h *Handler) Missions(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid profile id"})
		return
	}
	missions, err := h.service.Missions(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load missions"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"missions": missions})
}

func (h *Handler) ClaimMission(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid profile id"})
		return
	}
	var req models.ClaimMissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	result, err := h.service.ClaimMission(r.Context(), id, req.Slot)
	switch {
	case errors.Is(err, ErrMissionNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, ErrMissionIncomplete), errors.Is(err, ErrMissionClaimed):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to claim mission"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ── Achievements ────────────────────────────────────────

func (h *Handler) PendingAchievements(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid profile id"})
		return
	}
	pending, err := h.service.PendingAchievements(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load achievements"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"achievements": pending})
}

func (h *Handler) MarkNotified(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid profile id"})
		return
	}
	var req struct {
		AchievementIDs []string `json:"achievement_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	changed, err := h.service.MarkAchievementsNotified(r.Context(), id, req.AchievementIDs)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update achievements"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"marked": changed})
}

func (h *Handler) UpcomingAchievements(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid profile id"})
		return
	}
	limit := 5
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	upcoming, err := h.service.Upcoming(r.Context(), id, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load achievements"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"upcoming": upcoming})
}

func (h *Handler) AchievementSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid profile id"})
		return
	}
	summary, err := h.service.Summary(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load achievements"})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// ── Titles ──────────────────────────────────────────────

func (h *Handler) SelectTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid profile id"})
		return
	}
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	state, err := h.service.SelectTitle(r.Context(), id, req.Title)
	if errors.Is(err, ErrTitleLocked) {
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update title"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"state": state})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

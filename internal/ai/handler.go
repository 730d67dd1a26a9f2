package ai

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kotoba-learn/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GenerateExamples(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateExamplesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Phrase) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "phrase is required"})
		return
	}
	writeJSON(w, http.StatusOK, h.service.GenerateExamples(r.Context(), req))
}

func (h *Handler) ExplainPhrase(w http.ResponseWriter, r *http.Request) {
	var req models.ExplainPhraseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Phrase) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "phrase is required"})
		return
	}
	writeJSON(w, http.StatusOK, h.service.ExplainPhrase(r.Context(), req))
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

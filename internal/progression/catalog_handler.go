package progression

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kotoba-learn/backend/internal/catalog"
	"github.com/kotoba-learn/backend/internal/models"
)

// CatalogHandler serves the static content: vocabulary, the rank
// ladder, and the reward tables. Everything here is read-only.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// Vocabulary lists items, optionally filtered to what a learner level
// can see (?level=N) or to one rank (?rank=N).
func (h *CatalogHandler) Vocabulary(w http.ResponseWriter, r *http.Request) {
	if v := r.URL.Query().Get("rank"); v != "" {
		rank, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid rank"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"items": catalog.ItemsByRank(rank)})
		return
	}

	items := catalog.AllItems()
	if v := r.URL.Query().Get("level"); v != "" {
		level, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid level"})
			return
		}
		items = catalog.AccessibleItems(level)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// Item returns one vocabulary entry.
func (h *CatalogHandler) Item(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["itemId"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid item id"})
		return
	}
	item, ok := catalog.ItemByID(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Item not found"})
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *CatalogHandler) Ranks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"ranks": catalog.Ranks})
}

func (h *CatalogHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"achievements": catalog.Achievements})
}

func (h *CatalogHandler) LevelRewards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"level_rewards": catalog.LevelRewards})
}

func (h *CatalogHandler) StreakBonuses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"streak_bonuses": catalog.StreakBonuses})
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"watchlist/internal/repository"
	"watchlist/internal/repository/sqlite"
	"watchlist/internal/types"
	"watchlist/internal/utils"
)

// SharedWatchlistHandler serves the legacy single-table demo. It predates
// the per-user watchlists and has no authentication.
type SharedWatchlistHandler struct {
	shared *sqlite.SharedWatchlistRepository
}

func NewSharedWatchlistHandler(shared *sqlite.SharedWatchlistRepository) *SharedWatchlistHandler {
	return &SharedWatchlistHandler{shared: shared}
}

func (h *SharedWatchlistHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.shared.List()
	if err != nil {
		utils.RespondError(w, "Failed to list watchlist", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, map[string]interface{}{"watchlist": entries}, http.StatusOK)
}

func (h *SharedWatchlistHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	var req types.AddSharedEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.Year == 0 {
		utils.RespondError(w, "Title or Year missing!", http.StatusBadRequest)
		return
	}

	entry, err := h.shared.Add(req.Title, req.Year, "User")
	if err != nil {
		utils.RespondError(w, "Failed to add entry", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, entry, http.StatusCreated)
}

func (h *SharedWatchlistHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := utils.GetPathParamInt(r, "id")
	if err != nil {
		utils.RespondError(w, "Invalid entry id", http.StatusBadRequest)
		return
	}

	err = h.shared.Delete(id)
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondError(w, "Entry not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.RespondError(w, "Failed to delete entry", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"watchlist/internal/auth"
	"watchlist/internal/repository"
	"watchlist/internal/types"
	"watchlist/internal/utils"
)

type WatchlistHandler struct {
	watchlists repository.WatchlistRepository
}

func NewWatchlistHandler(watchlists repository.WatchlistRepository) *WatchlistHandler {
	return &WatchlistHandler{watchlists: watchlists}
}

func (h *WatchlistHandler) GetWatchlists(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	watchlists, err := h.watchlists.GetAll(r.Context(), identity.Userinfo.Sub)
	if err != nil {
		utils.RespondError(w, "Failed to list watchlists", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, map[string]interface{}{"watchlists": watchlists}, http.StatusOK)
}

func (h *WatchlistHandler) CreateWatchlist(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req types.CreateWatchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		utils.RespondError(w, "Watchlist name is required", http.StatusBadRequest)
		return
	}

	watchlist, err := h.watchlists.Create(r.Context(), identity.Userinfo.Sub, &types.Watchlist{Name: req.Name})
	if err != nil {
		utils.RespondError(w, "Failed to create watchlist", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, watchlist, http.StatusCreated)
}

func (h *WatchlistHandler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	id := utils.GetPathParam(r, "id")

	watchlist, err := h.watchlists.GetByID(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondError(w, "Watchlist not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.RespondError(w, "Failed to get watchlist", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, watchlist, http.StatusOK)
}

func (h *WatchlistHandler) DeleteWatchlist(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id := utils.GetPathParam(r, "id")
	err = h.watchlists.Remove(r.Context(), identity.Userinfo.Sub, id)
	if errors.Is(err, repository.ErrNotFound) {
		// Missing and not-owned are indistinguishable here.
		utils.RespondError(w, "Watchlist not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.RespondError(w, "Failed to delete watchlist", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WatchlistHandler) AddCollaborator(w http.ResponseWriter, r *http.Request) {
	id := utils.GetPathParam(r, "id")

	var req types.AddCollaboratorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.CollaboratorID == "" {
		utils.RespondError(w, "Collaborator id is required", http.StatusBadRequest)
		return
	}

	err := h.watchlists.AddCollaborator(r.Context(), id, req.CollaboratorID, req.Permission)
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondError(w, "Watchlist not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.RespondError(w, "Failed to add collaborator", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WatchlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id := utils.GetPathParam(r, "id")
	movieID, err := utils.GetPathParamInt(r, "movieId")
	if err != nil {
		utils.RespondError(w, "Invalid movie id", http.StatusBadRequest)
		return
	}

	err = h.watchlists.AddItem(r.Context(), id, movieID)
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondError(w, "Watchlist not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.RespondError(w, "Failed to add item", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WatchlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := utils.GetPathParam(r, "id")
	movieID, err := utils.GetPathParamInt(r, "movieId")
	if err != nil {
		utils.RespondError(w, "Invalid movie id", http.StatusBadRequest)
		return
	}

	err = h.watchlists.RemoveItem(r.Context(), id, movieID)
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondError(w, "Watchlist not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.RespondError(w, "Failed to remove item", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WatchlistHandler) MarkItemWatched(w http.ResponseWriter, r *http.Request) {
	id := utils.GetPathParam(r, "id")
	movieID, err := utils.GetPathParamInt(r, "movieId")
	if err != nil {
		utils.RespondError(w, "Invalid movie id", http.StatusBadRequest)
		return
	}

	err = h.watchlists.MarkWatched(r.Context(), id, movieID)
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondError(w, "Item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.RespondError(w, "Failed to mark item watched", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WatchlistHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id := utils.GetPathParam(r, "id")
	movieID, err := utils.GetPathParamInt(r, "movieId")
	if err != nil {
		utils.RespondError(w, "Invalid movie id", http.StatusBadRequest)
		return
	}

	item, err := h.watchlists.GetItem(r.Context(), id, movieID)
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondError(w, "Item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.RespondError(w, "Failed to get item", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, item, http.StatusOK)
}

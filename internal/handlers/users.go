package handlers

import (
	"errors"
	"net/http"

	"watchlist/internal/auth"
	"watchlist/internal/repository"
	"watchlist/internal/types"
	"watchlist/internal/utils"
)

type UserHandler struct {
	users repository.UserRepository
}

func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// GetCurrentUser returns the logged-in user, creating the record on first
// login from the identity assertion.
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.users.Get(r.Context(), identity.Userinfo.Sub)
	if errors.Is(err, repository.ErrNotFound) {
		user, err = types.UserFromIdentity(*identity)
		if err != nil {
			utils.RespondError(w, "Invalid identity", http.StatusBadRequest)
			return
		}
		if err := h.users.Add(r.Context(), user); err != nil && !errors.Is(err, repository.ErrAlreadyExists) {
			utils.RespondError(w, "Failed to create user", http.StatusInternalServerError)
			return
		}
	} else if err != nil {
		utils.RespondError(w, "Failed to get user", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, user, http.StatusOK)
}

func (h *UserHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	text := utils.GetQueryParam(r, "q", "")

	users, err := h.users.Search(r.Context(), text)
	if err != nil {
		utils.RespondError(w, "Failed to search users", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, map[string]interface{}{"results": users}, http.StatusOK)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := utils.GetPathParam(r, "id")

	user, err := h.users.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondError(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.RespondError(w, "Failed to get user", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, user, http.StatusOK)
}

func (h *UserHandler) RemoveCurrentUser(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	deleted, err := h.users.Remove(r.Context(), identity.Userinfo.Sub)
	if err != nil {
		utils.RespondError(w, "Failed to remove user", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, map[string]bool{"deleted": deleted}, http.StatusOK)
}

func (h *UserHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	friendID := utils.GetPathParam(r, "id")
	err = h.users.AddFriend(r.Context(), identity.Userinfo.Sub, friendID)
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondError(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.RespondError(w, "Failed to add friend", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	friendID := utils.GetPathParam(r, "id")
	if err := h.users.RemoveFriend(r.Context(), identity.Userinfo.Sub, friendID); err != nil {
		utils.RespondError(w, "Failed to remove friend", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) GetFriends(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	friends, err := h.users.GetFriends(r.Context(), identity.Userinfo.Sub)
	if err != nil {
		utils.RespondError(w, "Failed to get friends", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, map[string]interface{}{"friends": friends}, http.StatusOK)
}

package handlers

import (
	"errors"
	"net/http"

	"watchlist/internal/repository"
	"watchlist/internal/utils"
)

type MovieHandler struct {
	movies repository.MovieRepository
}

func NewMovieHandler(movies repository.MovieRepository) *MovieHandler {
	return &MovieHandler{movies: movies}
}

func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.movies.GetAll(r.Context())
	if err != nil {
		utils.RespondError(w, "Failed to list movies", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, map[string]interface{}{"results": movies}, http.StatusOK)
}

func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := utils.GetPathParamInt(r, "id")
	if err != nil {
		utils.RespondError(w, "Invalid movie id", http.StatusBadRequest)
		return
	}

	movie, err := h.movies.GetByID(r.Context(), id)
	if err != nil {
		utils.RespondError(w, "Failed to get movie", http.StatusInternalServerError)
		return
	}
	if movie == nil {
		utils.RespondError(w, "Movie not found", http.StatusNotFound)
		return
	}

	utils.RespondJSON(w, movie, http.StatusOK)
}

func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := utils.GetPathParamInt(r, "id")
	if err != nil {
		utils.RespondError(w, "Invalid movie id", http.StatusBadRequest)
		return
	}

	err = h.movies.Delete(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		utils.RespondError(w, "Movie not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.RespondError(w, "Failed to delete movie", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SearchMovie resolves a title against the external catalog, caching the
// top match.
func (h *MovieHandler) SearchMovie(w http.ResponseWriter, r *http.Request) {
	title := utils.GetQueryParam(r, "title", "")
	if title == "" {
		utils.RespondError(w, "Missing title", http.StatusBadRequest)
		return
	}

	movie, err := h.movies.SearchAndCache(r.Context(), title)
	if err != nil {
		utils.RespondError(w, "Failed to search movie", http.StatusInternalServerError)
		return
	}
	if movie == nil {
		utils.RespondError(w, "Movie not found", http.StatusNotFound)
		return
	}

	utils.RespondJSON(w, movie, http.StatusOK)
}

func (h *MovieHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	title := utils.GetQueryParam(r, "title", "")
	if title == "" {
		utils.RespondError(w, "Missing title", http.StatusBadRequest)
		return
	}

	movies, err := h.movies.FetchRecommendations(r.Context(), title)
	if err != nil {
		utils.RespondError(w, "Failed to fetch recommendations", http.StatusInternalServerError)
		return
	}
	if movies == nil {
		utils.RespondError(w, "Movie not found", http.StatusNotFound)
		return
	}

	utils.RespondJSON(w, map[string]interface{}{"results": movies}, http.StatusOK)
}

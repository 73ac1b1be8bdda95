package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *TMDBClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewTMDBClient("test-key")
	client.BaseURL = server.URL
	return client
}

func TestSearchMovies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "Inception", r.URL.Query().Get("query"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		json.NewEncoder(w).Encode(TMDBSearchResponse{
			Page:         1,
			Results:      []TMDBMovie{{ID: 27205, Title: "Inception"}},
			TotalResults: 1,
		})
	})

	resp, err := client.SearchMovies("Inception", 1)
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 27205, resp.Results[0].ID)
	assert.Equal(t, "Inception", resp.Results[0].Title)
}

func TestGetMovieDetails(t *testing.T) {
	poster := "/inception.jpg"
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/27205", r.URL.Path)

		json.NewEncoder(w).Encode(TMDBMovieDetails{
			TMDBMovie: TMDBMovie{
				ID:          27205,
				Title:       "Inception",
				Overview:    "A thief who steals corporate secrets.",
				ReleaseDate: "2010-07-16",
				PosterPath:  &poster,
			},
			Runtime: 148,
		})
	})

	details, err := client.GetMovieDetails(27205)
	require.NoError(t, err)
	assert.Equal(t, 27205, details.ID)
	assert.Equal(t, "2010-07-16", details.ReleaseDate)
	assert.Equal(t, 148, details.Runtime)
	require.NotNil(t, details.PosterPath)
	assert.Equal(t, "/inception.jpg", *details.PosterPath)
}

func TestGetRecommendations(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/27205/recommendations", r.URL.Path)

		json.NewEncoder(w).Encode(TMDBSearchResponse{
			Results: []TMDBMovie{
				{ID: 155, Title: "The Dark Knight"},
				{ID: 157336, Title: "Interstellar"},
			},
		})
	})

	resp, err := client.GetRecommendations(27205)
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "The Dark Knight", resp.Results[0].Title)
}

func TestMakeRequest_ErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetMovieDetails(999999999)
	assert.Error(t, err)
}

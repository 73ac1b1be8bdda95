package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type TMDBClient struct {
	APIKey  string
	BaseURL string
	client  *http.Client
}

// TMDB API Response Types
type TMDBSearchResponse struct {
	Page         int         `json:"page"`
	Results      []TMDBMovie `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

type TMDBMovie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	PosterPath       *string `json:"poster_path"`
	OriginalLanguage string  `json:"original_language"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
}

type TMDBMovieDetails struct {
	TMDBMovie
	Runtime int     `json:"runtime"`
	Genres  []Genre `json:"genres"`
	Status  string  `json:"status"`
	Tagline string  `json:"tagline"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func NewTMDBClient(apiKey string) *TMDBClient {
	return &TMDBClient{
		APIKey:  apiKey,
		BaseURL: "https://api.themoviedb.org/3",
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *TMDBClient) makeRequest(endpoint string, params map[string]string) (*http.Response, error) {
	u, err := url.Parse(c.BaseURL + endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	query := u.Query()
	query.Set("api_key", c.APIKey)

	for key, value := range params {
		query.Set(key, value)
	}

	u.RawQuery = query.Encode()

	req, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	return resp, nil
}

// SearchMovies searches for movies by query string
func (c *TMDBClient) SearchMovies(query string, page int) (*TMDBSearchResponse, error) {
	if page <= 0 {
		page = 1
	}

	params := map[string]string{
		"query": query,
		"page":  strconv.Itoa(page),
	}

	resp, err := c.makeRequest("/search/movie", params)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	var searchResp TMDBSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return &searchResp, nil
}

// GetMovieDetails gets detailed information about a specific movie
func (c *TMDBClient) GetMovieDetails(tmdbID int) (*TMDBMovieDetails, error) {
	endpoint := fmt.Sprintf("/movie/%d", tmdbID)

	resp, err := c.makeRequest(endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("movie details request failed: %w", err)
	}
	defer resp.Body.Close()

	var movie TMDBMovieDetails
	if err := json.NewDecoder(resp.Body).Decode(&movie); err != nil {
		return nil, fmt.Errorf("failed to decode movie details: %w", err)
	}

	return &movie, nil
}

// GetRecommendations gets the movies TMDB recommends alongside a movie
func (c *TMDBClient) GetRecommendations(tmdbID int) (*TMDBSearchResponse, error) {
	endpoint := fmt.Sprintf("/movie/%d/recommendations", tmdbID)

	resp, err := c.makeRequest(endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("recommendations request failed: %w", err)
	}
	defer resp.Body.Close()

	var searchResp TMDBSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations response: %w", err)
	}

	return &searchResp, nil
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchlist/internal/auth"
	"watchlist/internal/repository"
	"watchlist/internal/types"
)

// --- fakes ---

type fakeUserRepo struct {
	users map[string]*types.User
	added []*types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*types.User{}}
}

func (f *fakeUserRepo) Search(ctx context.Context, text string) ([]types.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Get(ctx context.Context, id string) (*types.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Add(ctx context.Context, user *types.User) error {
	if _, ok := f.users[user.ID]; ok {
		return repository.ErrAlreadyExists
	}
	f.users[user.ID] = user
	f.added = append(f.added, user)
	return nil
}

func (f *fakeUserRepo) Remove(ctx context.Context, id string) (bool, error) {
	_, ok := f.users[id]
	delete(f.users, id)
	return ok, nil
}

func (f *fakeUserRepo) AddFriend(ctx context.Context, id, friendID string) error {
	user, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.Friends = append(user.Friends, friendID)
	return nil
}

func (f *fakeUserRepo) RemoveFriend(ctx context.Context, id, friendID string) error {
	return nil
}

func (f *fakeUserRepo) GetFriends(ctx context.Context, id string) ([]types.User, error) {
	return []types.User{}, nil
}

type fakeMovieRepo struct {
	movies map[int]*types.Movie
	cached map[string]*types.Movie
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{movies: map[int]*types.Movie{}, cached: map[string]*types.Movie{}}
}

func (f *fakeMovieRepo) GetAll(ctx context.Context) ([]types.Movie, error) {
	var movies []types.Movie
	for _, m := range f.movies {
		movies = append(movies, *m)
	}
	return movies, nil
}

func (f *fakeMovieRepo) GetByID(ctx context.Context, id int) (*types.Movie, error) {
	return f.movies[id], nil
}

func (f *fakeMovieRepo) Add(ctx context.Context, movie *types.Movie) error {
	if _, ok := f.movies[movie.ID]; ok {
		return nil
	}
	f.movies[movie.ID] = movie
	return nil
}

func (f *fakeMovieRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.movies[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.movies, id)
	return nil
}

func (f *fakeMovieRepo) SearchAndCache(ctx context.Context, title string) (*types.Movie, error) {
	return f.cached[title], nil
}

func (f *fakeMovieRepo) FetchRecommendations(ctx context.Context, title string) ([]types.Movie, error) {
	if f.cached[title] == nil {
		return nil, nil
	}
	return []types.Movie{}, nil
}

type fakeWatchlistRepo struct {
	createdOwner string
	created      *types.Watchlist
	removeErr    error
}

func (f *fakeWatchlistRepo) GetAll(ctx context.Context, ownerID string) ([]types.Watchlist, error) {
	return []types.Watchlist{}, nil
}

func (f *fakeWatchlistRepo) GetByID(ctx context.Context, id string) (*types.Watchlist, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeWatchlistRepo) Create(ctx context.Context, ownerID string, watchlist *types.Watchlist) (*types.Watchlist, error) {
	f.createdOwner = ownerID
	watchlist.OwnerID = ownerID
	f.created = watchlist
	return watchlist, nil
}

func (f *fakeWatchlistRepo) Remove(ctx context.Context, ownerID, id string) error {
	return f.removeErr
}

func (f *fakeWatchlistRepo) AddCollaborator(ctx context.Context, id, collaboratorID, permission string) error {
	return nil
}

func (f *fakeWatchlistRepo) AddItem(ctx context.Context, id string, movieID int) error {
	return nil
}

func (f *fakeWatchlistRepo) RemoveItem(ctx context.Context, id string, movieID int) error {
	return nil
}

func (f *fakeWatchlistRepo) MarkWatched(ctx context.Context, id string, movieID int) error {
	return nil
}

func (f *fakeWatchlistRepo) GetItem(ctx context.Context, id string, movieID int) (*types.WatchlistItem, error) {
	return nil, repository.ErrNotFound
}

// --- helpers ---

// authedRequest builds a request carrying validated token claims the way
// the JWT middleware would.
func authedRequest(method, target, userID string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	claims := &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: userID},
		CustomClaims: &auth.CustomClaims{
			Name:  "Test User",
			Email: "test@example.com",
		},
	}
	return req.WithContext(context.WithValue(req.Context(), jwtmiddleware.ContextKey{}, claims))
}

// --- tests ---

func TestGetCurrentUser_CreatesOnFirstLogin(t *testing.T) {
	users := newFakeUserRepo()
	handler := NewUserHandler(users)

	rec := httptest.NewRecorder()
	handler.GetCurrentUser(rec, authedRequest(http.MethodGet, "/api/me", "u1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, users.added, 1)
	assert.Equal(t, "u1", users.added[0].ID)
	assert.Equal(t, "test@example.com", users.added[0].Email)

	// Second call finds the stored record instead of creating again.
	rec = httptest.NewRecorder()
	handler.GetCurrentUser(rec, authedRequest(http.MethodGet, "/api/me", "u1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, users.added, 1)
}

func TestGetCurrentUser_Unauthorized(t *testing.T) {
	handler := NewUserHandler(newFakeUserRepo())

	rec := httptest.NewRecorder()
	handler.GetCurrentUser(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddFriend_MissingUser(t *testing.T) {
	handler := NewUserHandler(newFakeUserRepo())

	req := authedRequest(http.MethodPost, "/api/me/friends/u2", "ghost", nil)
	req.SetPathValue("id", "u2")

	rec := httptest.NewRecorder()
	handler.AddFriend(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMovie_NotFound(t *testing.T) {
	handler := NewMovieHandler(newFakeMovieRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/movies/603", nil)
	req.SetPathValue("id", "603")

	rec := httptest.NewRecorder()
	handler.GetMovie(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMovie_Found(t *testing.T) {
	movies := newFakeMovieRepo()
	movies.movies[603] = &types.Movie{ID: 603, Title: "The Matrix"}
	handler := NewMovieHandler(movies)

	req := httptest.NewRequest(http.MethodGet, "/api/movies/603", nil)
	req.SetPathValue("id", "603")

	rec := httptest.NewRecorder()
	handler.GetMovie(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var movie types.Movie
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &movie))
	assert.Equal(t, "The Matrix", movie.Title)
}

func TestSearchMovie_MissingTitle(t *testing.T) {
	handler := NewMovieHandler(newFakeMovieRepo())

	rec := httptest.NewRecorder()
	handler.SearchMovie(rec, httptest.NewRequest(http.MethodGet, "/api/movies/search", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchMovie_NoCatalogMatch(t *testing.T) {
	handler := NewMovieHandler(newFakeMovieRepo())

	rec := httptest.NewRecorder()
	handler.SearchMovie(rec, httptest.NewRequest(http.MethodGet, "/api/movies/search?title=Nothing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRecommendations_ResolvedWithoutRecommendations(t *testing.T) {
	movies := newFakeMovieRepo()
	movies.cached["Inception"] = &types.Movie{ID: 27205, Title: "Inception"}
	handler := NewMovieHandler(movies)

	rec := httptest.NewRecorder()
	handler.GetRecommendations(rec, httptest.NewRequest(http.MethodGet, "/api/movies/recommendations?title=Inception", nil))

	// An empty recommendation list for a resolved title is not a 404.
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetRecommendations_UnresolvedTitle(t *testing.T) {
	handler := NewMovieHandler(newFakeMovieRepo())

	rec := httptest.NewRecorder()
	handler.GetRecommendations(rec, httptest.NewRequest(http.MethodGet, "/api/movies/recommendations?title=Nothing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateWatchlist_OwnerFromToken(t *testing.T) {
	watchlists := &fakeWatchlistRepo{}
	handler := NewWatchlistHandler(watchlists)

	body, _ := json.Marshal(types.CreateWatchlistRequest{Name: "Weekend"})
	rec := httptest.NewRecorder()
	handler.CreateWatchlist(rec, authedRequest(http.MethodPost, "/api/watchlists", "u1", body))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "u1", watchlists.createdOwner)
	require.NotNil(t, watchlists.created)
	assert.Equal(t, "Weekend", watchlists.created.Name)
}

func TestCreateWatchlist_MissingName(t *testing.T) {
	handler := NewWatchlistHandler(&fakeWatchlistRepo{})

	body, _ := json.Marshal(types.CreateWatchlistRequest{})
	rec := httptest.NewRecorder()
	handler.CreateWatchlist(rec, authedRequest(http.MethodPost, "/api/watchlists", "u1", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteWatchlist_NotOwned(t *testing.T) {
	watchlists := &fakeWatchlistRepo{removeErr: repository.ErrNotFound}
	handler := NewWatchlistHandler(watchlists)

	req := authedRequest(http.MethodDelete, "/api/watchlists/abc", "u1", nil)
	req.SetPathValue("id", "abc")

	rec := httptest.NewRecorder()
	handler.DeleteWatchlist(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"watchlist/internal/repository"
	"watchlist/internal/services"
	"watchlist/internal/types"
)

// MetadataClient is the part of the TMDB client the movie cache needs.
type MetadataClient interface {
	SearchMovies(query string, page int) (*services.TMDBSearchResponse, error)
	GetMovieDetails(tmdbID int) (*services.TMDBMovieDetails, error)
	GetRecommendations(tmdbID int) (*services.TMDBSearchResponse, error)
}

// MovieRepository caches external catalog entries in the movie collection.
type MovieRepository struct {
	collection *mongo.Collection
	metadata   MetadataClient
}

func NewMovieRepository(db *mongo.Database, metadata MetadataClient) *MovieRepository {
	return &MovieRepository{
		collection: db.Collection("movie"),
		metadata:   metadata,
	}
}

func (r *MovieRepository) GetAll(ctx context.Context) ([]types.Movie, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	var movies []types.Movie
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, fmt.Errorf("failed to decode movies: %w", err)
	}
	return movies, nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id int) (*types.Movie, error) {
	var movie types.Movie
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&movie)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return &movie, nil
}

func (r *MovieRepository) Add(ctx context.Context, movie *types.Movie) error {
	if err := movie.Validate(); err != nil {
		return err
	}

	_, err := r.collection.InsertOne(ctx, movie)
	if mongo.IsDuplicateKeyError(err) {
		// Already cached. Unlike users, a duplicate movie insert is not
		// an error.
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to add movie: %w", err)
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id int) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MovieRepository) SearchAndCache(ctx context.Context, title string) (*types.Movie, error) {
	searchResp, err := r.metadata.SearchMovies(title, 1)
	if err != nil {
		return nil, fmt.Errorf("metadata search failed: %w", err)
	}
	if len(searchResp.Results) == 0 {
		return nil, nil
	}

	// Take the top-ranked result as the catalog ordered it.
	top := searchResp.Results[0]

	cached, err := r.GetByID(ctx, top.ID)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	details, err := r.metadata.GetMovieDetails(top.ID)
	if err != nil {
		return nil, fmt.Errorf("metadata details failed: %w", err)
	}
	if details == nil {
		// The catalog listed the id in search but has no detail record
		// for it; treat it like any other miss.
		return nil, nil
	}

	movie := movieFromDetails(details)
	if err := r.Add(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

func (r *MovieRepository) FetchRecommendations(ctx context.Context, title string) ([]types.Movie, error) {
	movie, err := r.SearchAndCache(ctx, title)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, nil
	}

	recResp, err := r.metadata.GetRecommendations(movie.ID)
	if err != nil {
		return nil, fmt.Errorf("metadata recommendations failed: %w", err)
	}

	// The title resolved, so the result is a (possibly empty) list, never
	// the absent-marker.
	movies := []types.Movie{}
	for _, rec := range recResp.Results {
		// Each recommendation is re-resolved by a fresh title search, so
		// a title collision can cache a different movie than the one the
		// catalog recommended.
		cached, err := r.SearchAndCache(ctx, rec.Title)
		if err != nil {
			return nil, err
		}
		if cached == nil {
			continue
		}
		movies = append(movies, *cached)
	}
	return movies, nil
}

func movieFromDetails(details *services.TMDBMovieDetails) *types.Movie {
	movie := &types.Movie{
		ID:    details.ID,
		Title: details.Title,
	}
	if details.Overview != "" {
		overview := details.Overview
		movie.Overview = &overview
	}
	if details.ReleaseDate != "" {
		if released, err := time.Parse("2006-01-02", details.ReleaseDate); err == nil {
			movie.ReleaseDate = &released
		} else {
			log.Printf("Dropping unparseable release date %q for movie %d", details.ReleaseDate, details.ID)
		}
	}
	if details.PosterPath != nil && *details.PosterPath != "" {
		poster := types.NormalizePosterPath(*details.PosterPath)
		movie.PosterPath = &poster
	}
	return movie
}

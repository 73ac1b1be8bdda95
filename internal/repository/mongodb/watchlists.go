package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"watchlist/internal/repository"
	"watchlist/internal/types"
)

type WatchlistRepository struct {
	collection *mongo.Collection
}

func NewWatchlistRepository(db *mongo.Database) *WatchlistRepository {
	return &WatchlistRepository{collection: db.Collection("watchlist")}
}

// watchlistID parses the hex form of a store-generated id. An id that
// cannot be parsed cannot exist, so it maps to ErrNotFound.
func watchlistID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrNotFound
	}
	return oid, nil
}

func (r *WatchlistRepository) GetAll(ctx context.Context, ownerID string) ([]types.Watchlist, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlists: %w", err)
	}

	var watchlists []types.Watchlist
	if err := cursor.All(ctx, &watchlists); err != nil {
		return nil, fmt.Errorf("failed to decode watchlists: %w", err)
	}
	return watchlists, nil
}

func (r *WatchlistRepository) GetByID(ctx context.Context, id string) (*types.Watchlist, error) {
	oid, err := watchlistID(id)
	if err != nil {
		return nil, err
	}

	var watchlist types.Watchlist
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&watchlist)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get watchlist: %w", err)
	}
	return &watchlist, nil
}

func (r *WatchlistRepository) Create(ctx context.Context, ownerID string, watchlist *types.Watchlist) (*types.Watchlist, error) {
	watchlist.ID = primitive.NewObjectID()
	// The caller's owner field is never trusted.
	watchlist.OwnerID = ownerID
	if watchlist.Collaborators == nil {
		watchlist.Collaborators = []string{}
	}
	if watchlist.Items == nil {
		watchlist.Items = []types.WatchlistItem{}
	}

	if _, err := r.collection.InsertOne(ctx, watchlist); err != nil {
		return nil, fmt.Errorf("failed to create watchlist: %w", err)
	}
	return watchlist, nil
}

func (r *WatchlistRepository) Remove(ctx context.Context, ownerID, id string) error {
	oid, err := watchlistID(id)
	if err != nil {
		return err
	}

	// Authorization is the compound filter itself: a non-owner gets the
	// same ErrNotFound as a missing id.
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("failed to remove watchlist: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *WatchlistRepository) AddCollaborator(ctx context.Context, id, collaboratorID, permission string) error {
	oid, err := watchlistID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$addToSet": bson.M{"collaborators": collaboratorID}},
	)
	if err != nil {
		return fmt.Errorf("failed to add collaborator: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *WatchlistRepository) AddItem(ctx context.Context, id string, movieID int) error {
	oid, err := watchlistID(id)
	if err != nil {
		return err
	}

	// Guarded push keyed by movie id: an $addToSet would re-add the item
	// once its watched flag differs.
	item := types.WatchlistItem{MovieID: movieID}
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "items.movie_id": bson.M{"$ne": movieID}},
		bson.M{"$push": bson.M{"items": item}},
	)
	if err != nil {
		return fmt.Errorf("failed to add item: %w", err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	// Zero matches is either a missing watchlist or an item already
	// present; only the former is an error.
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to check watchlist: %w", err)
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *WatchlistRepository) RemoveItem(ctx context.Context, id string, movieID int) error {
	oid, err := watchlistID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$pull": bson.M{"items": bson.M{"movie_id": movieID}}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *WatchlistRepository) MarkWatched(ctx context.Context, id string, movieID int) error {
	oid, err := watchlistID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "items.movie_id": movieID},
		bson.M{"$set": bson.M{"items.$.watched": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark item watched: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *WatchlistRepository) GetItem(ctx context.Context, id string, movieID int) (*types.WatchlistItem, error) {
	watchlist, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, item := range watchlist.Items {
		if item.MovieID == movieID {
			return &item, nil
		}
	}
	return nil, repository.ErrNotFound
}

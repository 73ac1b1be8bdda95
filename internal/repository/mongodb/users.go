// Package mongodb implements the repository contracts against a MongoDB
// database. Every mutation is a single atomic document update; there are
// no read-modify-write cycles and no multi-document transactions.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"watchlist/internal/repository"
	"watchlist/internal/types"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection("users")}
}

func (r *UserRepository) Search(ctx context.Context, text string) ([]types.User, error) {
	// Quoting keeps the match a literal "contains", not a user-supplied
	// regular expression. The empty pattern matches every document.
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"given_name": pattern},
		bson.M{"family_name": pattern},
		bson.M{"nickname": pattern},
		bson.M{"email": pattern},
	}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	var users []types.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Get(ctx context.Context, id string) (*types.User, error) {
	var user types.User
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) Add(ctx context.Context, user *types.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	// The unique index on id makes the duplicate check atomic.
	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to add user: %w", err)
	}
	return nil
}

func (r *UserRepository) Remove(ctx context.Context, id string) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("failed to remove user: %w", err)
	}
	return result.DeletedCount > 0, nil
}

func (r *UserRepository) AddFriend(ctx context.Context, id, friendID string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$addToSet": bson.M{"friends": friendID}},
	)
	if err != nil {
		return fmt.Errorf("failed to add friend: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) RemoveFriend(ctx context.Context, id, friendID string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$pull": bson.M{"friends": friendID}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	return nil
}

func (r *UserRepository) GetFriends(ctx context.Context, id string) ([]types.User, error) {
	var user types.User
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []types.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if len(user.Friends) == 0 {
		return []types.User{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"id": bson.M{"$in": user.Friends}})
	if err != nil {
		return nil, fmt.Errorf("failed to get friends: %w", err)
	}

	var friends []types.User
	if err := cursor.All(ctx, &friends); err != nil {
		return nil, fmt.Errorf("failed to decode friends: %w", err)
	}
	return friends, nil
}

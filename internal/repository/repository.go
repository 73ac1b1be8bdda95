// Package repository defines the storage contracts for the watchlist
// domain. Callers depend on these interfaces only; concrete adapters live
// in the subpackages and translate each operation into store-specific
// queries.
package repository

import (
	"context"
	"errors"

	"watchlist/internal/types"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

type UserRepository interface {
	// Search matches text case-insensitively against name, given name,
	// family name, nickname and email. Empty text matches every user.
	Search(ctx context.Context, text string) ([]types.User, error)
	// Get returns ErrNotFound if no user has the id.
	Get(ctx context.Context, id string) (*types.User, error)
	// Add returns ErrAlreadyExists if a user with the same id is stored.
	Add(ctx context.Context, user *types.User) error
	// Remove reports whether a record was deleted. Absent ids are not an
	// error.
	Remove(ctx context.Context, id string) (bool, error)
	// AddFriend adds friendID to the user's friend set, a no-op when
	// already present. Returns ErrNotFound if the user does not exist.
	AddFriend(ctx context.Context, id, friendID string) error
	RemoveFriend(ctx context.Context, id, friendID string) error
	// GetFriends resolves the friend set to full user records. An absent
	// user or an empty set yields an empty slice, not an error.
	GetFriends(ctx context.Context, id string) ([]types.User, error)
}

type MovieRepository interface {
	GetAll(ctx context.Context) ([]types.Movie, error)
	// GetByID returns (nil, nil) when the movie is not cached.
	GetByID(ctx context.Context, id int) (*types.Movie, error)
	// Add is idempotent: inserting an id that already exists succeeds as
	// a no-op.
	Add(ctx context.Context, movie *types.Movie) error
	// Delete returns ErrNotFound if no movie has the id.
	Delete(ctx context.Context, id int) error
	// SearchAndCache resolves a title against the external catalog,
	// caches the top result and returns it. (nil, nil) means the catalog
	// had no match.
	SearchAndCache(ctx context.Context, title string) (*types.Movie, error)
	// FetchRecommendations resolves the title, then materializes the
	// catalog's recommendations for it through SearchAndCache.
	FetchRecommendations(ctx context.Context, title string) ([]types.Movie, error)
}

type WatchlistRepository interface {
	// GetAll returns watchlists owned by ownerID. Lists shared with the
	// user as a collaborator are not included.
	GetAll(ctx context.Context, ownerID string) ([]types.Watchlist, error)
	GetByID(ctx context.Context, id string) (*types.Watchlist, error)
	// Create stores the watchlist with its owner forced to ownerID,
	// whatever the input carries.
	Create(ctx context.Context, ownerID string, watchlist *types.Watchlist) (*types.Watchlist, error)
	// Remove deletes only when both id and owner match; zero matches is
	// ErrNotFound whether the list is missing or owned by someone else.
	Remove(ctx context.Context, ownerID, id string) error
	// AddCollaborator adds to the collaborator set. The permission is
	// accepted for API compatibility but not persisted per collaborator.
	AddCollaborator(ctx context.Context, id, collaboratorID, permission string) error
	// AddItem adds the movie as an unwatched item, a no-op when an item
	// with the movie id is already present.
	AddItem(ctx context.Context, id string, movieID int) error
	RemoveItem(ctx context.Context, id string, movieID int) error
	// MarkWatched sets watched=true on the matching item.
	MarkWatched(ctx context.Context, id string, movieID int) error
	GetItem(ctx context.Context, id string, movieID int) (*types.WatchlistItem, error)
}

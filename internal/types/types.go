package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PosterBaseURL is prepended to relative poster paths coming from the
// external catalog.
const PosterBaseURL = "https://image.tmdb.org/t/p/w500/"

var validate = validator.New()

type User struct {
	ID         string   `bson:"id" json:"id" validate:"required"`
	GivenName  string   `bson:"given_name" json:"given_name"`
	FamilyName string   `bson:"family_name" json:"family_name"`
	Nickname   string   `bson:"nickname" json:"nickname"`
	Name       string   `bson:"name" json:"name"`
	Email      string   `bson:"email" json:"email" validate:"required,email"`
	AvatarURL  *string  `bson:"avatar_url,omitempty" json:"avatar_url,omitempty" validate:"omitempty,url"`
	Friends    []string `bson:"friends,omitempty" json:"friends,omitempty"`
}

func (u *User) Validate() error {
	if err := validate.Struct(u); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}
	return nil
}

// Movie is a cached copy of an external catalog entry. ID is the catalog's
// numeric id, never one we invented ourselves.
type Movie struct {
	ID          int        `bson:"id" json:"id" validate:"required"`
	Title       string     `bson:"title" json:"title" validate:"required"`
	Overview    *string    `bson:"overview,omitempty" json:"overview,omitempty"`
	ReleaseDate *time.Time `bson:"release_date,omitempty" json:"release_date,omitempty"`
	PosterPath  *string    `bson:"poster_path,omitempty" json:"poster_path,omitempty" validate:"omitempty,url"`
}

func (m *Movie) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("invalid movie: %w", err)
	}
	if m.ReleaseDate != nil && m.ReleaseDate.After(time.Now()) {
		return fmt.Errorf("invalid movie: release date %s is in the future", m.ReleaseDate.Format("2006-01-02"))
	}
	return nil
}

// NormalizePosterPath turns a relative poster path into a full image URL.
// Paths that already carry the base URL pass through unchanged.
func NormalizePosterPath(path string) string {
	if strings.HasPrefix(path, PosterBaseURL) {
		return path
	}
	return PosterBaseURL + strings.TrimPrefix(path, "/")
}

type WatchlistItem struct {
	MovieID int  `bson:"movie_id" json:"movie_id"`
	Watched bool `bson:"watched" json:"watched"`
}

type Watchlist struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name" validate:"required"`
	OwnerID       string             `bson:"owner_id" json:"owner_id"`
	Collaborators []string           `bson:"collaborators" json:"collaborators"`
	Items         []WatchlistItem    `bson:"items" json:"items"`
}

// Request/Response types
type CreateWatchlistRequest struct {
	Name string `json:"name"`
}

type AddCollaboratorRequest struct {
	CollaboratorID string `json:"collaborator_id"`
	Permission     string `json:"permission"`
}

type AddSharedEntryRequest struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
}

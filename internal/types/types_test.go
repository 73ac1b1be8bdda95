package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserFromIdentity(t *testing.T) {
	assertion := IdentityAssertion{
		Userinfo: Userinfo{
			Sub:        "google-oauth2|103384461793700128197",
			GivenName:  "Bence",
			FamilyName: "Peter",
			Nickname:   "ecneb2000",
			Name:       "Bence Peter",
			Email:      "ecneb2000@gmail.com",
			Picture:    "https://lh3.googleusercontent.com/a/avatar=s96-c",
		},
	}

	user, err := UserFromIdentity(assertion)
	require.NoError(t, err)

	assert.Equal(t, "google-oauth2|103384461793700128197", user.ID)
	assert.Equal(t, "Bence", user.GivenName)
	assert.Equal(t, "Peter", user.FamilyName)
	assert.Equal(t, "ecneb2000", user.Nickname)
	assert.Equal(t, "ecneb2000@gmail.com", user.Email)
	require.NotNil(t, user.AvatarURL)
	assert.Equal(t, "https://lh3.googleusercontent.com/a/avatar=s96-c", *user.AvatarURL)
}

func TestUserFromIdentity_MissingPicture(t *testing.T) {
	assertion := IdentityAssertion{
		Userinfo: Userinfo{
			Sub:   "auth0|abc123",
			Name:  "No Avatar",
			Email: "noavatar@example.com",
		},
	}

	user, err := UserFromIdentity(assertion)
	require.NoError(t, err)
	assert.Nil(t, user.AvatarURL)
	assert.Empty(t, user.GivenName)
	assert.Empty(t, user.Nickname)
}

func TestUserFromIdentity_InvalidEmail(t *testing.T) {
	assertion := IdentityAssertion{
		Userinfo: Userinfo{
			Sub:   "auth0|abc123",
			Email: "not-an-email",
		},
	}

	_, err := UserFromIdentity(assertion)
	assert.Error(t, err)
}

func TestNormalizePosterPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"leading slash", "/abc123.jpg", PosterBaseURL + "abc123.jpg"},
		{"bare path", "abc123.jpg", PosterBaseURL + "abc123.jpg"},
		{"already absolute", PosterBaseURL + "abc123.jpg", PosterBaseURL + "abc123.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePosterPath(tt.in))
		})
	}
}

func TestMovieValidate(t *testing.T) {
	released := time.Date(1999, time.March, 31, 0, 0, 0, 0, time.UTC)
	movie := Movie{ID: 603, Title: "The Matrix", ReleaseDate: &released}
	assert.NoError(t, movie.Validate())
}

func TestMovieValidate_NoReleaseDate(t *testing.T) {
	movie := Movie{ID: 27205, Title: "Inception"}
	assert.NoError(t, movie.Validate())
}

func TestMovieValidate_FutureReleaseDate(t *testing.T) {
	future := time.Now().AddDate(1, 0, 0)
	movie := Movie{ID: 1, Title: "Unreleased", ReleaseDate: &future}
	assert.Error(t, movie.Validate())
}

func TestMovieValidate_MissingTitle(t *testing.T) {
	movie := Movie{ID: 1}
	assert.Error(t, movie.Validate())
}

package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"

	"watchlist/internal/types"
)

// CustomClaims carries the profile claims we read from the token.
type CustomClaims struct {
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Nickname   string `json:"nickname"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Picture    string `json:"picture"`
}

// Validate satisfies the validator.CustomClaims interface; there is
// nothing extra to check.
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

func NewMiddleware(domain, audience string) (*jwtmiddleware.JWTMiddleware, error) {
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		return nil, fmt.Errorf("failed to parse the issuer url: %w", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &CustomClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT validator: %w", err)
	}

	return jwtmiddleware.New(jwtValidator.ValidateToken), nil
}

// IdentityFromContext rebuilds the identity assertion from the validated
// token claims. The subject claim is the user id.
func IdentityFromContext(ctx context.Context) (*types.IdentityAssertion, error) {
	claims, ok := ctx.Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !ok {
		return nil, fmt.Errorf("no claims found in context")
	}

	customClaims, ok := claims.CustomClaims.(*CustomClaims)
	if !ok {
		return nil, fmt.Errorf("invalid custom claims format")
	}

	return &types.IdentityAssertion{
		Userinfo: types.Userinfo{
			Sub:        claims.RegisteredClaims.Subject,
			GivenName:  customClaims.GivenName,
			FamilyName: customClaims.FamilyName,
			Nickname:   customClaims.Nickname,
			Name:       customClaims.Name,
			Email:      customClaims.Email,
			Picture:    customClaims.Picture,
		},
	}, nil
}

func RequireAuth(middleware *jwtmiddleware.JWTMiddleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return middleware.CheckJWT(next)
	}
}

package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/article-publishing-api/internal/apperrors"
)

// tokenClaims is the internal claims type used for JWT parsing.
type tokenClaims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// TokenVerifier maps bearer tokens to users. Tokens are HMAC-signed JWTs
// whose subject is the user id and whose "roles" claim lists role names.
type TokenVerifier struct {
	secret []byte
	now    func() time.Time
}

// NewTokenVerifier creates a verifier for HS256-signed tokens.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), now: time.Now}
}

// Verify parses and validates a bearer token and returns the user it names.
func (v *TokenVerifier) Verify(token string) (User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return User{}, apperrors.New(apperrors.KindUnauthenticated, "bearer token is required")
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return User{}, &apperrors.Error{
			Kind:    apperrors.KindUnauthenticated,
			Message: "invalid bearer token",
			Cause:   err,
		}
	}
	if claims.Subject == "" {
		return User{}, apperrors.New(apperrors.KindUnauthenticated, "token has no subject")
	}

	return User{ID: claims.Subject, Roles: claims.Roles}, nil
}

// IssueToken signs a token for the given user. Used by tests and local
// tooling; production tokens come from the identity provider.
func (v *TokenVerifier) IssueToken(user User, ttl time.Duration) (string, error) {
	now := v.now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Roles: user.Roles,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

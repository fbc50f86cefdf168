package auth

import (
	"context"

	"github.com/article-publishing-api/internal/apperrors"
)

// UserContext resolves the caller attached to the current invocation.
type UserContext interface {
	// AuthenticatedUserOrNil returns the current user, or nil when the
	// invocation carries no authenticated caller.
	AuthenticatedUserOrNil(ctx context.Context) *User
}

// AuthenticatedUser resolves the current user or fails with an
// unauthenticated error.
func AuthenticatedUser(ctx context.Context, uc UserContext) (User, error) {
	user := uc.AuthenticatedUserOrNil(ctx)
	if user == nil {
		return User{}, apperrors.New(apperrors.KindUnauthenticated, "current user is unauthenticated")
	}
	return *user, nil
}

// CurrentJournalist resolves the current user and narrows them to the
// journalist role.
func CurrentJournalist(ctx context.Context, uc UserContext) (Journalist, error) {
	user, err := AuthenticatedUser(ctx, uc)
	if err != nil {
		return Journalist{}, err
	}
	return user.AsJournalist()
}

// CurrentCopywriter resolves the current user and narrows them to the
// copywriter role.
func CurrentCopywriter(ctx context.Context, uc UserContext) (Copywriter, error) {
	user, err := AuthenticatedUser(ctx, uc)
	if err != nil {
		return Copywriter{}, err
	}
	return user.AsCopywriter()
}

type userContextKey struct{}

// WithUser returns a context carrying the authenticated user. The HTTP
// middleware attaches the user after verifying the request token.
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// RequestUserContext reads the authenticated user from the request context.
type RequestUserContext struct{}

// AuthenticatedUserOrNil implements UserContext.
func (RequestUserContext) AuthenticatedUserOrNil(ctx context.Context) *User {
	user, ok := ctx.Value(userContextKey{}).(User)
	if !ok {
		return nil
	}
	return &user
}

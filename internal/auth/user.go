// Package auth provides the role-bearing current-user abstraction consumed
// by the use-case facade, plus the JWT-to-user mapping used at the edge.
package auth

import (
	"strings"

	"github.com/article-publishing-api/internal/apperrors"
)

// Role names recognized by the system. Matching is case-insensitive.
const (
	RoleJournalist = "journalist"
	RoleCopywriter = "copywriter"
)

// User is an authenticated caller with zero or more roles.
type User struct {
	ID    string
	Roles []string
}

// HasRole reports whether the user holds the given role.
func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

// Journalist is a user narrowed to the journalist role.
type Journalist struct {
	UserID string
}

// Copywriter is a user narrowed to the copywriter role.
type Copywriter struct {
	UserID string
}

// AsJournalist narrows the user to the journalist role.
func (u User) AsJournalist() (Journalist, error) {
	if !u.HasRole(RoleJournalist) {
		return Journalist{}, apperrors.Newf(apperrors.KindMissingRole, "user %s has no role %s", u.ID, RoleJournalist)
	}
	return Journalist{UserID: u.ID}, nil
}

// AsCopywriter narrows the user to the copywriter role.
func (u User) AsCopywriter() (Copywriter, error) {
	if !u.HasRole(RoleCopywriter) {
		return Copywriter{}, apperrors.Newf(apperrors.KindMissingRole, "user %s has no role %s", u.ID, RoleCopywriter)
	}
	return Copywriter{UserID: u.ID}, nil
}

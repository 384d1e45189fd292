// Package session persists the authenticated session (bearer token plus
// user profile) across client restarts. It is a pure credential cache: no
// validation, no network.
package session

import (
	"context"

	"github.com/dmitrijs2005/newscheck/internal/client/models"
)

// Session is the stored credential pair.
type Session struct {
	Token string
	User  models.UserProfile
}

type Repository interface {
	// Get returns the stored session, or (nil, nil) when none exists.
	Get(ctx context.Context) (*Session, error)

	// Set replaces the stored session.
	Set(ctx context.Context, s *Session) error

	// Clear removes the stored session. Clearing an empty store succeeds.
	Clear(ctx context.Context) error
}

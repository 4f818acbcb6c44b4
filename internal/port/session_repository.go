package port

import (
	"context"
	"time"

	"github.com/moodify-shop/moodify/internal/core/domain"
)

type SessionRepository interface {
	// PutSession stores the user under a session token with a TTL.
	PutSession(ctx context.Context, token string, user domain.User, ttl time.Duration) error

	// GetSession returns the user for a live token, or ErrNotFound.
	GetSession(ctx context.Context, token string) (domain.User, error)

	// DeleteSession invalidates the token. Unknown tokens are not an error.
	DeleteSession(ctx context.Context, token string) error

	// PutUser stores the shopper profile keyed by email. Profiles outlive
	// sessions so a returning email keeps its identity.
	PutUser(ctx context.Context, user domain.User) error

	// GetUserByEmail returns the stored profile, or ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}

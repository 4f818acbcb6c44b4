package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/moodify-shop/moodify/internal/core/domain"
	"github.com/moodify-shop/moodify/internal/port"
)

var ErrMissingEmail = errors.New("email required")

// DefaultSessionTTL matches a casual-shopper session lifetime.
const DefaultSessionTTL = 24 * time.Hour

// AuthService is the demo "backend" behind sign-in: no credential check,
// sessions are bearer tokens in the key-value store. Profiles are stored by
// email, so a returning email keeps its identity; only an unknown email
// mints a profile from the email's local part.
type AuthService struct {
	sessions port.SessionRepository
	sink     port.NotificationSink
	ttl      time.Duration
}

func NewAuthService(sessions port.SessionRepository, sink port.NotificationSink, ttl time.Duration) *AuthService {
	if sessions == nil {
		panic("auth: service created without a session repository")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{sessions: sessions, sink: sink, ttl: ttl}
}

// SignUp registers a shopper and opens a session. The password is accepted
// for form parity and discarded.
func (a *AuthService) SignUp(ctx context.Context, first, last, email, _ string) (domain.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.User{}, "", ErrMissingEmail
	}
	user := domain.User{
		ID:    uuid.NewString(),
		First: strings.TrimSpace(first),
		Last:  strings.TrimSpace(last),
		Email: email,
	}
	if err := a.sessions.PutUser(ctx, user); err != nil {
		return domain.User{}, "", fmt.Errorf("store profile: %w", err)
	}
	token := uuid.NewString()
	if err := a.sessions.PutSession(ctx, token, user, a.ttl); err != nil {
		return domain.User{}, "", fmt.Errorf("open session: %w", err)
	}
	a.notify(ctx, fmt.Sprintf("Welcome, %s!", user.First))
	return user, token, nil
}

// SignIn opens a session for email. There is no password check; a stored
// profile is returned as-is, an unknown email gets a demo profile derived
// from it.
func (a *AuthService) SignIn(ctx context.Context, email string) (domain.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.User{}, "", ErrMissingEmail
	}
	user, err := a.sessions.GetUserByEmail(ctx, email)
	if errors.Is(err, port.ErrNotFound) {
		first := email
		if i := strings.IndexByte(email, '@'); i > 0 {
			first = email[:i]
		}
		user = domain.User{ID: uuid.NewString(), First: first, Email: email}
		if err := a.sessions.PutUser(ctx, user); err != nil {
			return domain.User{}, "", fmt.Errorf("store profile: %w", err)
		}
	} else if err != nil {
		return domain.User{}, "", fmt.Errorf("look up profile: %w", err)
	}
	token := uuid.NewString()
	if err := a.sessions.PutSession(ctx, token, user, a.ttl); err != nil {
		return domain.User{}, "", fmt.Errorf("open session: %w", err)
	}
	a.notify(ctx, fmt.Sprintf("Signed in as %s", email))
	return user, token, nil
}

// Current resolves the user behind a session token, port.ErrNotFound when
// the token is unknown or expired.
func (a *AuthService) Current(ctx context.Context, token string) (domain.User, error) {
	return a.sessions.GetSession(ctx, token)
}

func (a *AuthService) SignOut(ctx context.Context, token string) error {
	if err := a.sessions.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}

func (a *AuthService) notify(ctx context.Context, msg string) {
	if a.sink == nil {
		return
	}
	if err := a.sink.Publish(ctx, domain.Notification{Message: msg, Kind: domain.NotifyInfo}); err != nil {
		log.Printf("auth: notification dropped: %v", err)
	}
}

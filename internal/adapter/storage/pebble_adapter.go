package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/cockroachdb/pebble"

	"github.com/moodify-shop/moodify/internal/core/domain"
	"github.com/moodify-shop/moodify/internal/port"
)

// PebbleAdapter is the embedded fallback when no Redis is configured: cart
// slots and sessions live in a local Pebble directory, the server-side
// equivalent of the browser's local storage.
type PebbleAdapter struct {
	db *pebble.DB
}

func NewPebbleAdapter(dir string) (*PebbleAdapter, error) {
	db, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &PebbleAdapter{db: db}, nil
}

func (p *PebbleAdapter) Close() error { return p.db.Close() }

func (p *PebbleAdapter) Load(ctx context.Context, key string) ([]byte, error) {
	v, closer, err := p.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	out := append([]byte(nil), v...)
	_ = closer.Close()
	return out, nil
}

func (p *PebbleAdapter) Save(ctx context.Context, key string, payload []byte) error {
	return p.db.Set([]byte(key), payload, pebble.Sync)
}

func (p *PebbleAdapter) Delete(ctx context.Context, key string) error {
	return p.db.Delete([]byte(key), pebble.Sync)
}

// sessionRecord carries its own expiry; Pebble has no TTL, so stale records
// are dropped on read.
type sessionRecord struct {
	User      domain.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func (p *PebbleAdapter) PutSession(ctx context.Context, token string, user domain.User, ttl time.Duration) error {
	b, err := json.Marshal(sessionRecord{User: user, ExpiresAt: time.Now().Add(ttl)})
	if err != nil {
		return err
	}
	return p.db.Set([]byte(sessionKeyPrefix+token), b, pebble.Sync)
}

func (p *PebbleAdapter) GetSession(ctx context.Context, token string) (domain.User, error) {
	key := []byte(sessionKeyPrefix + token)
	v, closer, err := p.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return domain.User{}, port.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	raw := append([]byte(nil), v...)
	_ = closer.Close()

	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.User{}, port.ErrNotFound
	}
	if time.Now().After(rec.ExpiresAt) {
		_ = p.db.Delete(key, pebble.NoSync)
		return domain.User{}, port.ErrNotFound
	}
	return rec.User, nil
}

func (p *PebbleAdapter) DeleteSession(ctx context.Context, token string) error {
	return p.db.Delete([]byte(sessionKeyPrefix+token), pebble.Sync)
}

func (p *PebbleAdapter) PutUser(ctx context.Context, user domain.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return p.db.Set([]byte(userKeyPrefix+user.Email), b, pebble.Sync)
}

func (p *PebbleAdapter) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	v, closer, err := p.db.Get([]byte(userKeyPrefix + email))
	if errors.Is(err, pebble.ErrNotFound) {
		return domain.User{}, port.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	raw := append([]byte(nil), v...)
	_ = closer.Close()

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return domain.User{}, port.ErrNotFound
	}
	return user, nil
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/moodify-shop/moodify/internal/core/domain"
	"github.com/moodify-shop/moodify/internal/port"
)

const (
	sessionKeyPrefix = "moodify:session:"
	userKeyPrefix    = "moodify:user:"
)

// RedisAdapter backs both the cart slots and the auth sessions. Cart keys
// arrive fully namespaced from the store; only session keys are prefixed
// here.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) Load(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *RedisAdapter) Save(ctx context.Context, key string, payload []byte) error {
	return r.client.Set(ctx, key, payload, 0).Err()
}

func (r *RedisAdapter) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisAdapter) PutSession(ctx context.Context, token string, user domain.User, ttl time.Duration) error {
	b, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKeyPrefix+token, b, ttl).Err()
}

func (r *RedisAdapter) GetSession(ctx context.Context, token string) (domain.User, error) {
	b, err := r.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.User{}, port.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	var user domain.User
	if err := json.Unmarshal(b, &user); err != nil {
		return domain.User{}, port.ErrNotFound
	}
	return user, nil
}

func (r *RedisAdapter) DeleteSession(ctx context.Context, token string) error {
	return r.client.Del(ctx, sessionKeyPrefix+token).Err()
}

func (r *RedisAdapter) PutUser(ctx context.Context, user domain.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, userKeyPrefix+user.Email, b, 0).Err()
}

func (r *RedisAdapter) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	b, err := r.client.Get(ctx, userKeyPrefix+email).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.User{}, port.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	var user domain.User
	if err := json.Unmarshal(b, &user); err != nil {
		return domain.User{}, port.ErrNotFound
	}
	return user, nil
}

package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/moodify-shop/moodify/internal/core/domain"
)

// ToastChannel is where UI processes subscribe for toast events.
const ToastChannel = "moodify:toasts"

// RedisSink broadcasts toasts over Redis pub/sub. Delivery is fire-and-
// forget; subscribers that miss a toast just miss it.
type RedisSink struct {
	client  *redis.Client
	channel string
}

func NewRedisSink(client *redis.Client) *RedisSink {
	return &RedisSink{client: client, channel: ToastChannel}
}

func (s *RedisSink) Publish(ctx context.Context, n domain.Notification) error {
	b, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return s.client.Publish(ctx, s.channel, b).Err()
}

package port

import (
	"context"

	"github.com/moodify-shop/moodify/internal/core/domain"
)

// NotificationSink receives user-facing toasts. Producers treat delivery as
// best-effort; a failed publish never fails the operation that raised it.
type NotificationSink interface {
	Publish(ctx context.Context, n domain.Notification) error
}

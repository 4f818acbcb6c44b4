package port

import (
	"context"

	"github.com/moodify-shop/moodify/internal/core/domain"
)

type OrderRepository interface {
	// CreateOrder persists an order together with its lines.
	CreateOrder(ctx context.Context, order domain.Order) error
}

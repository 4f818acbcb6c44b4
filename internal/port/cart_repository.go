package port

import (
	"context"
	"errors"
)

// ErrNotFound reports an absent durable slot.
var ErrNotFound = errors.New("not found")

// CartRepository is the durable key-value slot behind a cart store.
//
// The cart store is the only writer to its own key; callers get
// last-write-wins semantics and nothing stronger.
type CartRepository interface {
	// Load returns the payload stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the payload stored under key.
	Save(ctx context.Context, key string, payload []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Package session stores each caller's cart value by session id. The cart is
// never shared across sessions, so no cross-request coordination is needed
// beyond the store's own map locking.
package session

import (
	"context"

	"github.com/yakotaki/chuanghua-shop/internal/domain"
)

type Store interface {
	// Get returns the cart for a session id. An unknown session yields a
	// fresh empty cart, never an error.
	Get(ctx context.Context, sessionID string) (domain.Cart, error)

	// Put replaces the stored cart for a session id.
	Put(ctx context.Context, sessionID string, cart domain.Cart) error

	// Delete drops the session's cart.
	Delete(ctx context.Context, sessionID string) error
}

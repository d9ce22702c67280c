// Package cart provides session-scoped cart storage. Carts are keyed
// by session ID and bounded by a TTL; values are JSON at the storage
// boundary. Two drivers exist: an in-process memory store and a Redis
// store for multi-node deployments.
//
// Concurrent mutation of the same session's cart is last-write-wins;
// carts are scoped to one session, so this is a best-effort surface,
// not a consistency guarantee.
package cart

import (
	"context"

	"github.com/el-receso/cafeteria-service/internal/models"
)

// Store persists carts between requests of one session.
type Store interface {
	// Get returns the cart for a session. A session with no cart yet
	// gets an empty cart, not an error.
	Get(ctx context.Context, sessionID string) (*models.Cart, error)

	// Save writes the cart for a session and refreshes its TTL.
	Save(ctx context.Context, sessionID string, c *models.Cart) error

	// Delete removes a session's cart. Deleting an absent cart is a no-op.
	Delete(ctx context.Context, sessionID string) error
}

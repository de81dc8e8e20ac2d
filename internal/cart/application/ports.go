package application

import (
	"context"

	"github.com/essenza-labs/storefront/internal/cart/domain"
)

// SnapshotStore persists the full line collection under the session key.
// Save must replace the whole snapshot atomically; Load returns an empty cart
// when no snapshot exists.
type SnapshotStore interface {
	Save(ctx context.Context, sessionID string, cart domain.Cart) error
	Load(ctx context.Context, sessionID string) (domain.Cart, error)
	Delete(ctx context.Context, sessionID string) error
}

package application

import (
	"context"

	"github.com/essenza-labs/storefront/internal/identity/domain"
)

// IdentityClient talks to the hosted identity service.
type IdentityClient interface {
	SignUp(ctx context.Context, email, password, name string) (domain.Identity, error)
	UserFromToken(ctx context.Context, token string) (domain.Identity, error)
}

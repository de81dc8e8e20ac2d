package application

import (
	"context"
	"log/slog"
	"strings"

	"github.com/essenza-labs/storefront/internal/apperr"
	"github.com/essenza-labs/storefront/internal/identity/domain"
)

type Service struct {
	log    *slog.Logger
	client IdentityClient
}

func NewService(log *slog.Logger, client IdentityClient) *Service {
	return &Service{log: log, client: client}
}

// Current resolves a bearer token into a session. An empty token is an
// unauthenticated session, not an error; an invalid token is treated the
// same way so stale credentials degrade to signed-out instead of failing
// the page.
func (s *Service) Current(ctx context.Context, token string) domain.Session {
	if token == "" {
		return domain.Unauthenticated()
	}
	id, err := s.client.UserFromToken(ctx, token)
	if err != nil {
		s.log.Debug("token lookup failed", "err", err)
		return domain.Unauthenticated()
	}
	return domain.Authenticated(id)
}

func (s *Service) SignUp(ctx context.Context, email, password, name string) (domain.Identity, error) {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return domain.Identity{}, apperr.Validation("email", "invalid address")
	}
	if len(password) < 8 {
		return domain.Identity{}, apperr.Validation("password", "must be at least 8 characters")
	}
	if strings.TrimSpace(name) == "" {
		return domain.Identity{}, apperr.Validation("name", "required")
	}

	id, err := s.client.SignUp(ctx, email, password, name)
	if err != nil {
		return domain.Identity{}, apperr.Collaborator("identity", err)
	}
	return id, nil
}

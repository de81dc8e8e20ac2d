package application

import (
	"context"
	"log/slog"
	"sync"

	"github.com/essenza-labs/storefront/internal/apperr"
	"github.com/essenza-labs/storefront/internal/cart/domain"
)

// Service owns cart state for every active session. Mutations for one session
// are serialized in call order and every mutation persists the full snapshot
// before returning. When the snapshot write fails the in-memory cart stays
// authoritative for the rest of the session and the caller gets
// apperr.ErrCartNotPersisted alongside the updated cart.
type Service struct {
	log   *slog.Logger
	store SnapshotStore

	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func NewService(log *slog.Logger, store SnapshotStore) *Service {
	return &Service{
		log:   log,
		store: store,
		carts: make(map[string]*domain.Cart),
	}
}

// Get returns the session's cart, rehydrating from the snapshot store when
// this process has not seen the session yet.
func (s *Service) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.cartLocked(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}
	return *c, nil
}

func (s *Service) AddItem(ctx context.Context, sessionID string, line domain.Line) (domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Cart) { c.AddLine(line) })
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Cart) { c.SetQuantity(productID, quantity) })
}

func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Cart) { c.Remove(productID) })
}

func (s *Service) Clear(ctx context.Context, sessionID string) (domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Cart) { c.Clear() })
}

func (s *Service) mutate(ctx context.Context, sessionID string, fn func(*domain.Cart)) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.cartLocked(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}
	fn(c)

	if err := s.store.Save(ctx, sessionID, *c); err != nil {
		s.log.Warn("cart snapshot write failed, keeping in-memory state",
			"session_id", sessionID, "err", err)
		return *c, apperr.ErrCartNotPersisted
	}
	return *c, nil
}

func (s *Service) cartLocked(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if c, ok := s.carts[sessionID]; ok {
		return c, nil
	}
	loaded, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, apperr.Collaborator("cart store", err)
	}
	c := &loaded
	s.carts[sessionID] = c
	return c, nil
}

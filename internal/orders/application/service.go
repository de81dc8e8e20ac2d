package application

import (
	"context"
	"log/slog"

	"github.com/essenza-labs/storefront/internal/apperr"
	checkoutdomain "github.com/essenza-labs/storefront/internal/checkout/domain"
	"github.com/essenza-labs/storefront/internal/orders/domain"
)

type Service struct {
	log  *slog.Logger
	repo OrderRepository
}

func NewService(log *slog.Logger, repo OrderRepository) *Service {
	return &Service{log: log, repo: repo}
}

// Project materializes an order row from a placed-order event. New orders
// start pending; fulfilment moves them along later.
func (s *Service) Project(ctx context.Context, event checkoutdomain.OrderPlaced) error {
	items := make([]domain.Item, 0, len(event.Lines))
	for _, l := range event.Lines {
		items = append(items, domain.Item{
			ProductID:  l.ProductID,
			Name:       l.Name,
			PriceCents: l.PriceCents,
			Quantity:   l.Quantity,
		})
	}
	return s.repo.InsertOrder(ctx, domain.Order{
		ID:               event.OrderID,
		UserID:           event.UserID,
		Status:           domain.StatusPending,
		TotalCents:       event.TotalCents,
		PaymentReference: event.PaymentReference,
		CreatedAt:        event.PlacedAt,
		Items:            items,
	})
}

// History returns the user's orders, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, apperr.ErrNotAuthenticated
	}
	orders, err := s.repo.OrdersByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Collaborator("orders", err)
	}
	return orders, nil
}

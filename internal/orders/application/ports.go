package application

import (
	"context"

	"github.com/essenza-labs/storefront/internal/orders/domain"
)

type OrderRepository interface {
	InsertOrder(ctx context.Context, o domain.Order) error
	OrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

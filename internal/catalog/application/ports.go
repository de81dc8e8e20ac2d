package application

import (
	"context"

	"github.com/essenza-labs/storefront/internal/catalog/domain"
)

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	FeaturedProducts(ctx context.Context, limit int) ([]domain.Product, error)
}

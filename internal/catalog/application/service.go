package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/essenza-labs/storefront/internal/apperr"
	"github.com/essenza-labs/storefront/internal/catalog/domain"
)

// Source distinguishes live catalog data from the placeholder fallback that
// keeps the storefront browsable when the backend is unreachable.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

type Listing struct {
	Products []domain.Product
	Source   Source
}

type Service struct {
	log  *slog.Logger
	repo ProductRepository
}

func NewService(log *slog.Logger, repo ProductRepository) *Service {
	return &Service{log: log, repo: repo}
}

// Browse fetches the full product set ordered by name and applies the view.
// On repository failure it degrades to the flagged placeholder set so the
// listing stays usable.
func (s *Service) Browse(ctx context.Context, view domain.View) (Listing, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.log.Warn("catalog fetch failed, serving fallback set", "err", err)
		return Listing{
			Products: domain.ApplyView(fallbackProducts(), view),
			Source:   SourceFallback,
		}, nil
	}
	return Listing{
		Products: domain.ApplyView(products, view),
		Source:   SourceLive,
	}, nil
}

func (s *Service) Product(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *Service) Featured(ctx context.Context, limit int) ([]domain.Product, error) {
	products, err := s.repo.FeaturedProducts(ctx, limit)
	if err != nil {
		return nil, apperr.Collaborator("catalog", err)
	}
	return products, nil
}

// fallbackProducts synthesizes a deterministic placeholder catalog. The fixed
// seed data keeps tests and degraded responses reproducible.
func fallbackProducts() []domain.Product {
	notes := [][]string{
		{"Rose", "Sandalwood"},
		{"Vanilla", "Bergamot"},
		{"Amber", "Cedar", "Musk"},
		{"Neroli", "Vetiver"},
	}
	categories := []string{"Floral", "Woody", "Fresh", "Oriental"}
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	products := make([]domain.Product, 0, 24)
	for i := 0; i < 24; i++ {
		products = append(products, domain.Product{
			ID:          fmt.Sprintf("placeholder-%d", i+1),
			Name:        fmt.Sprintf("Atelier No. %02d", i+1),
			Description: "A placeholder listing shown while the catalog is unavailable.",
			PriceCents:  int64(10000 + (i%8)*2500),
			Category:    categories[i%len(categories)],
			ScentNotes:  notes[i%len(notes)],
			Rating:      4.0 + float64(i%10)/10,
			Stock:       10 + i,
			Images:      []string{fmt.Sprintf("/placeholder.svg?text=Atelier+%d", i+1)},
			CreatedAt:   created.AddDate(0, 0, i),
			UpdatedAt:   created.AddDate(0, 0, i),
		})
	}
	return products
}

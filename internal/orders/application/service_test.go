package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/essenza-labs/storefront/internal/apperr"
	checkoutdomain "github.com/essenza-labs/storefront/internal/checkout/domain"
	"github.com/essenza-labs/storefront/internal/orders/domain"
)

type fakeRepo struct {
	inserted []domain.Order
	byUser   map[string][]domain.Order
	err      error
}

func (f *fakeRepo) InsertOrder(_ context.Context, o domain.Order) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, o)
	return nil
}

func (f *fakeRepo) OrdersByUser(_ context.Context, userID string) ([]domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byUser[userID], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProject(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{}
	svc := NewService(testLogger(), repo)

	placedAt := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	err := svc.Project(context.Background(), checkoutdomain.OrderPlaced{
		OrderID:          "o1",
		UserID:           "u1",
		PaymentReference: "pi_1",
		TotalCents:       21600,
		PlacedAt:         placedAt,
		Lines: []checkoutdomain.PlacedLine{
			{ProductID: "p1", Name: "Amber Veil", PriceCents: 10000, Quantity: 1},
			{ProductID: "p2", Name: "Cedar Line", PriceCents: 5000, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	if len(repo.inserted) != 1 {
		t.Fatalf("expected 1 order, got %d", len(repo.inserted))
	}
	o := repo.inserted[0]
	if o.Status != domain.StatusPending {
		t.Errorf("status = %s, want pending", o.Status)
	}
	if o.TotalCents != 21600 || len(o.Items) != 2 {
		t.Errorf("order = %+v", o)
	}
	// Snapshot prices, not live references.
	if o.Items[0].PriceCents != 10000 || o.Items[0].Name != "Amber Veil" {
		t.Errorf("item snapshot = %+v", o.Items[0])
	}
}

func TestHistory_RequiresUser(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), &fakeRepo{})
	_, err := svc.History(context.Background(), "")
	if !errors.Is(err, apperr.ErrNotAuthenticated) {
		t.Errorf("expected not-authenticated, got %v", err)
	}
}

func TestHistory_RepositoryFailure(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), &fakeRepo{err: errors.New("down")})
	_, err := svc.History(context.Background(), "u1")
	if !errors.Is(err, apperr.ErrCollaborator) {
		t.Errorf("expected collaborator error, got %v", err)
	}
}

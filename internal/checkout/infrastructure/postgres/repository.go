package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/essenza-labs/storefront/internal/checkout/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// SavePaymentWithOutbox writes the payment row and its OrderPlaced event in
// one transaction so the order projection can never observe a paid checkout
// without an event, or the reverse.
func (r *Repository) SavePaymentWithOutbox(ctx context.Context, p domain.Payment, eventType string, payload []byte, headers map[string]string, traceparent string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `INSERT INTO payments (reference, order_id, user_id, amount_cents, status, created_at)
			VALUES ($1,$2,$3,$4,$5,$6)
			ON CONFLICT (reference) DO UPDATE SET status=$5`,
		p.Reference, p.OrderID, p.UserID, p.AmountCents, p.Status, p.CreatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, headers, traceparent, status)
			VALUES ($1,$2,$3,$4,$5,$6,'pending')`,
		"order", p.OrderID, eventType, payload, headers, traceparent)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

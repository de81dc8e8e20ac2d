package domain

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Order is the history read model materialized from OrderPlaced events.
type Order struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Status           Status    `json:"status"`
	TotalCents       int64     `json:"total_cents"`
	PaymentReference string    `json:"payment_reference"`
	CreatedAt        time.Time `json:"created_at"`
	Items            []Item    `json:"order_items"`
}

// Item carries the product snapshot as priced at order time. Catalog prices
// may change later; these do not.
type Item struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

package domain

import "time"

// State is the checkout machine's position. Blocked and Succeeded are the
// only states that navigate away; the rest render in place.
type State string

const (
	StateBlocked               State = "blocked"
	StateAwaitingAuthorization State = "awaiting_authorization"
	StateCollectingDetails     State = "collecting_details"
	StateSubmitting            State = "submitting"
	StateSucceeded             State = "succeeded"
	StateFailed                State = "failed"
)

type BlockReason string

const (
	BlockNotAuthenticated BlockReason = "not_authenticated"
	BlockEmptyCart        BlockReason = "empty_cart"
)

// Authorization is the opaque handle the payment service issues before any
// payment details are collected.
type Authorization struct {
	Handle       string
	ClientSecret string
}

type ConfirmationStatus string

const (
	ConfirmationSucceeded ConfirmationStatus = "succeeded"
	ConfirmationFailed    ConfirmationStatus = "failed"
)

// Confirmation is the payment service's verdict on a submission.
type Confirmation struct {
	Status    ConfirmationStatus
	Reference string
	Message   string
}

type ShippingDetails struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code"`
	Country  string `json:"country"`
}

type BillingDetails struct {
	SameAsShipping bool   `json:"same_as_shipping"`
	FullName       string `json:"full_name"`
}

// BillingName is the name handed to the payment service. With same-as-shipping
// the shipping full name is used and separate billing fields are not collected.
func BillingName(shipping ShippingDetails, billing BillingDetails) string {
	if billing.SameAsShipping {
		return shipping.FullName
	}
	return billing.FullName
}

type PaymentStatus string

const (
	PaymentSucceeded PaymentStatus = "succeeded"
)

// Payment is the record of a confirmed charge, written alongside the
// OrderPlaced outbox event in one transaction.
type Payment struct {
	Reference   string
	OrderID     string
	UserID      string
	AmountCents int64
	Status      PaymentStatus
	CreatedAt   time.Time
}

// OrderPlaced is published after a successful confirmation. The orders
// projection materializes the order row from it; line snapshots carry the
// price paid, not a live product reference.
type OrderPlaced struct {
	OrderID          string       `json:"order_id"`
	UserID           string       `json:"user_id"`
	PaymentReference string       `json:"payment_reference"`
	SubtotalCents    int64        `json:"subtotal_cents"`
	TaxCents         int64        `json:"tax_cents"`
	TotalCents       int64        `json:"total_cents"`
	Lines            []PlacedLine `json:"lines"`
	PlacedAt         time.Time    `json:"placed_at"`
}

type PlacedLine struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

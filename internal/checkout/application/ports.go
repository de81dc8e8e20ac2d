package application

import (
	"context"

	cartdomain "github.com/essenza-labs/storefront/internal/cart/domain"
	"github.com/essenza-labs/storefront/internal/checkout/domain"
)

// PaymentClient is the external payment service. Card data never reaches
// this application; the embedded payment UI produces the method reference.
type PaymentClient interface {
	CreateAuthorization(ctx context.Context, amountCents int64, currency string) (domain.Authorization, error)
	Confirm(ctx context.Context, handle, paymentMethodRef, billingName, email string) (domain.Confirmation, error)
}

// CartGateway is the slice of the cart service checkout needs. Clear sits on
// the success branch only.
type CartGateway interface {
	Get(ctx context.Context, sessionID string) (cartdomain.Cart, error)
	Clear(ctx context.Context, sessionID string) (cartdomain.Cart, error)
}

// Repository persists the payment row together with the OrderPlaced outbox
// event in one transaction.
type Repository interface {
	SavePaymentWithOutbox(ctx context.Context, p domain.Payment, eventType string, payload []byte, headers map[string]string, traceparent string) error
}

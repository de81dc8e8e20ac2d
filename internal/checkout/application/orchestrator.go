package application

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/essenza-labs/storefront/internal/apperr"
	cartdomain "github.com/essenza-labs/storefront/internal/cart/domain"
	"github.com/essenza-labs/storefront/internal/checkout/domain"
	identitydomain "github.com/essenza-labs/storefront/internal/identity/domain"
)

// Orchestrator drives the checkout state machine. Every transition that
// crosses an I/O boundary is awaited before the next state is reported;
// nothing here clears the cart except the success branch of Submit.
type Orchestrator struct {
	log     *slog.Logger
	payment PaymentClient
	cart    CartGateway
	repo    Repository
	now     func() time.Time
}

func NewOrchestrator(log *slog.Logger, payment PaymentClient, cart CartGateway, repo Repository) *Orchestrator {
	return &Orchestrator{
		log:     log,
		payment: payment,
		cart:    cart,
		repo:    repo,
		now:     time.Now,
	}
}

// BeginResult is the orchestrator's answer to checkout entry. Blocked states
// carry a redirect; otherwise the authorization handle and prefill are set
// and the machine sits in CollectingDetails.
type BeginResult struct {
	State         domain.State         `json:"state"`
	BlockReason   domain.BlockReason   `json:"block_reason,omitempty"`
	RedirectTo    string               `json:"redirect_to,omitempty"`
	Authorization domain.Authorization `json:"-"`
	ClientSecret  string               `json:"client_secret,omitempty"`
	PrefillName   string               `json:"prefill_name,omitempty"`
	PrefillEmail  string               `json:"prefill_email,omitempty"`
	Totals        cartdomain.Totals    `json:"totals"`
}

// Begin runs the entry guards and requests the payment authorization. The
// handle is a prerequisite for collecting details, never a side effect of
// submission.
func (o *Orchestrator) Begin(ctx context.Context, sessionID string, session identitydomain.Session) (BeginResult, error) {
	if blocked, res := o.guard(ctx, sessionID, session); blocked {
		return res, nil
	}

	cart, err := o.cart.Get(ctx, sessionID)
	if err != nil {
		return BeginResult{}, err
	}
	totals := cart.ComputeTotals()

	// AwaitingAuthorization: the amount is already in minor units.
	auth, err := o.payment.CreateAuthorization(ctx, totals.GrandCents, "usd")
	if err != nil {
		return BeginResult{}, apperr.Collaborator("payment", err)
	}

	return BeginResult{
		State:         domain.StateCollectingDetails,
		Authorization: auth,
		ClientSecret:  auth.ClientSecret,
		PrefillName:   session.Identity.Name,
		PrefillEmail:  session.Identity.Email,
		Totals:        totals,
	}, nil
}

type SubmitInput struct {
	SessionID        string
	Session          identitydomain.Session
	Handle           string
	PaymentMethodRef string
	Shipping         domain.ShippingDetails
	Billing          domain.BillingDetails
}

func (in SubmitInput) validate() error {
	if in.Handle == "" {
		return apperr.Validation("handle", "missing authorization handle")
	}
	if in.PaymentMethodRef == "" {
		return apperr.Validation("payment_method", "required")
	}
	if strings.TrimSpace(in.Shipping.FullName) == "" {
		return apperr.Validation("full_name", "required")
	}
	if strings.TrimSpace(in.Shipping.Email) == "" {
		return apperr.Validation("email", "required")
	}
	if strings.TrimSpace(in.Shipping.Address) == "" {
		return apperr.Validation("address", "required")
	}
	if !in.Billing.SameAsShipping && strings.TrimSpace(in.Billing.FullName) == "" {
		return apperr.Validation("billing_name", "required")
	}
	return nil
}

// SubmitResult reports either success (with navigation) or a recoverable
// failure that returns the machine to CollectingDetails for resubmission.
type SubmitResult struct {
	State            domain.State       `json:"state"`
	BlockReason      domain.BlockReason `json:"block_reason,omitempty"`
	RedirectTo       string             `json:"redirect_to,omitempty"`
	FailureMessage   string             `json:"failure_message,omitempty"`
	PaymentReference string             `json:"payment_reference,omitempty"`
	OrderNumber      string             `json:"order_number,omitempty"`
	CartWarning      string             `json:"cart_warning,omitempty"`
}

// Submit confirms the payment. Failure keeps the cart intact and lands back
// in CollectingDetails; success records the payment with its OrderPlaced
// event and only then clears the cart.
func (o *Orchestrator) Submit(ctx context.Context, in SubmitInput) (SubmitResult, error) {
	if blocked, res := o.guard(ctx, in.SessionID, in.Session); blocked {
		return SubmitResult{
			State:       res.State,
			BlockReason: res.BlockReason,
			RedirectTo:  res.RedirectTo,
		}, nil
	}
	if err := in.validate(); err != nil {
		return SubmitResult{}, err
	}

	cart, err := o.cart.Get(ctx, in.SessionID)
	if err != nil {
		return SubmitResult{}, err
	}
	totals := cart.ComputeTotals()

	billingName := domain.BillingName(in.Shipping, in.Billing)
	conf, err := o.payment.Confirm(ctx, in.Handle, in.PaymentMethodRef, billingName, in.Shipping.Email)
	if err != nil {
		return SubmitResult{}, apperr.Collaborator("payment", err)
	}

	if conf.Status != domain.ConfirmationSucceeded {
		// Recoverable: the visitor stays on the form and may retry.
		o.log.Info("payment confirmation failed",
			"session_id", in.SessionID, "message", conf.Message)
		return SubmitResult{
			State:          domain.StateCollectingDetails,
			FailureMessage: conf.Message,
		}, nil
	}

	orderID := uuid.NewString()
	placedAt := o.now().UTC()
	event := domain.OrderPlaced{
		OrderID:          orderID,
		UserID:           in.Session.Identity.UserID,
		PaymentReference: conf.Reference,
		SubtotalCents:    totals.SubtotalCents,
		TaxCents:         totals.TaxCents,
		TotalCents:       totals.GrandCents,
		Lines:            placedLines(cart),
		PlacedAt:         placedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return SubmitResult{}, err
	}

	payment := domain.Payment{
		Reference:   conf.Reference,
		OrderID:     orderID,
		UserID:      in.Session.Identity.UserID,
		AmountCents: totals.GrandCents,
		Status:      domain.PaymentSucceeded,
		CreatedAt:   placedAt,
	}
	headers := map[string]string{"source": "checkout"}
	if err := o.repo.SavePaymentWithOutbox(ctx, payment, "OrderPlaced", payload, headers, traceparentFrom(ctx)); err != nil {
		return SubmitResult{}, err
	}

	result := SubmitResult{
		State:            domain.StateSucceeded,
		PaymentReference: conf.Reference,
		OrderNumber:      orderNumber(conf.Reference),
		RedirectTo:       "/checkout/success?payment_intent=" + conf.Reference,
	}
	if _, err := o.cart.Clear(ctx, in.SessionID); err != nil {
		if !errors.Is(err, apperr.ErrCartNotPersisted) {
			return SubmitResult{}, err
		}
		result.CartWarning = apperr.Kind(err)
	}
	return result, nil
}

// guard applies the entry preconditions shared by Begin and Submit.
func (o *Orchestrator) guard(ctx context.Context, sessionID string, session identitydomain.Session) (bool, BeginResult) {
	if !session.Authenticated {
		return true, BeginResult{
			State:       domain.StateBlocked,
			BlockReason: domain.BlockNotAuthenticated,
			RedirectTo:  "/auth/signin?return_to=%2Fcheckout",
		}
	}
	cart, err := o.cart.Get(ctx, sessionID)
	if err == nil && cart.Empty() {
		return true, BeginResult{
			State:       domain.StateBlocked,
			BlockReason: domain.BlockEmptyCart,
			RedirectTo:  "/cart",
		}
	}
	return false, BeginResult{}
}

func placedLines(cart cartdomain.Cart) []domain.PlacedLine {
	lines := make([]domain.PlacedLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, domain.PlacedLine{
			ProductID:  l.ProductID,
			Name:       l.Name,
			PriceCents: l.PriceCents,
			Quantity:   l.Quantity,
		})
	}
	return lines
}

// orderNumber derives the display number shown on the confirmation view from
// the payment reference.
func orderNumber(reference string) string {
	ref := strings.ToUpper(strings.TrimPrefix(reference, "pi_"))
	if len(ref) > 8 {
		ref = ref[:8]
	}
	return "ES-" + ref
}

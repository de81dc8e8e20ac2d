package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cartdomain "github.com/essenza-labs/storefront/internal/cart/domain"
	"github.com/essenza-labs/storefront/internal/checkout/application"
	"github.com/essenza-labs/storefront/internal/checkout/domain"
	identitydomain "github.com/essenza-labs/storefront/internal/identity/domain"
	identityhttp "github.com/essenza-labs/storefront/internal/identity/infrastructure/http"
)

type stubPayment struct {
	conf domain.Confirmation
}

func (s *stubPayment) CreateAuthorization(context.Context, int64, string) (domain.Authorization, error) {
	return domain.Authorization{Handle: "pi_1", ClientSecret: "cs_1"}, nil
}

func (s *stubPayment) Confirm(context.Context, string, string, string, string) (domain.Confirmation, error) {
	return s.conf, nil
}

type stubCart struct {
	cart   cartdomain.Cart
	clears int
}

func (s *stubCart) Get(context.Context, string) (cartdomain.Cart, error) { return s.cart, nil }
func (s *stubCart) Clear(context.Context, string) (cartdomain.Cart, error) {
	s.clears++
	s.cart = cartdomain.Cart{}
	return s.cart, nil
}

type stubRepo struct{}

func (stubRepo) SavePaymentWithOutbox(context.Context, domain.Payment, string, []byte, map[string]string, string) error {
	return nil
}

func newHandler(payment *stubPayment, cart *stubCart) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	o := application.NewOrchestrator(log, payment, cart, stubRepo{})
	return NewHandler(log, o).Routes()
}

func request(h http.Handler, path, body string, session identitydomain.Session) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(http.MethodPost, path, rdr)
	req.Header.Set("X-Session-ID", "s1")
	req = req.WithContext(identityhttp.WithSession(req.Context(), session))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func stockedCart() cartdomain.Cart {
	var c cartdomain.Cart
	c.AddLine(cartdomain.Line{ProductID: "p1", Name: "Amber Veil", PriceCents: 10000, Quantity: 1})
	return c
}

func signedIn() identitydomain.Session {
	return identitydomain.Authenticated(identitydomain.Identity{
		UserID: "u1", Name: "Iris", Email: "iris@example.com",
	})
}

func TestBegin_UnauthenticatedRedirects(t *testing.T) {
	t.Parallel()

	h := newHandler(&stubPayment{}, &stubCart{cart: stockedCart()})
	rec := request(h, "/begin", "", identitydomain.Unauthenticated())

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/auth/signin") || !strings.Contains(loc, "return_to") {
		t.Errorf("location = %q", loc)
	}
}

func TestBegin_EmptyCartRedirects(t *testing.T) {
	t.Parallel()

	h := newHandler(&stubPayment{}, &stubCart{})
	rec := request(h, "/begin", "", signedIn())

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/cart" {
		t.Errorf("location = %q", loc)
	}
}

func TestBegin_RendersCollectingDetails(t *testing.T) {
	t.Parallel()

	h := newHandler(&stubPayment{}, &stubCart{cart: stockedCart()})
	rec := request(h, "/begin", "", signedIn())

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var res application.BeginResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.State != domain.StateCollectingDetails || res.ClientSecret != "cs_1" {
		t.Errorf("result = %+v", res)
	}
}

const submitBody = `{
	"handle": "pi_1",
	"payment_method": "pm_card",
	"shipping": {"full_name":"Iris Vale","email":"iris@example.com","address":"12 Rue des Fleurs","city":"Lyon","zip_code":"69001","country":"FR"},
	"billing": {"same_as_shipping": true}
}`

func TestSubmit_FailureRendersInPlace(t *testing.T) {
	t.Parallel()

	payment := &stubPayment{conf: domain.Confirmation{
		Status: domain.ConfirmationFailed, Message: "Insufficient funds.",
	}}
	cart := &stubCart{cart: stockedCart()}
	h := newHandler(payment, cart)

	rec := request(h, "/submit", submitBody, signedIn())
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var res application.SubmitResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.State != domain.StateCollectingDetails || res.FailureMessage != "Insufficient funds." {
		t.Errorf("result = %+v", res)
	}
	if cart.clears != 0 {
		t.Error("cart cleared on failure")
	}
}

func TestSubmit_SuccessCarriesPaymentReference(t *testing.T) {
	t.Parallel()

	payment := &stubPayment{conf: domain.Confirmation{
		Status: domain.ConfirmationSucceeded, Reference: "pi_done",
	}}
	cart := &stubCart{cart: stockedCart()}
	h := newHandler(payment, cart)

	rec := request(h, "/submit", submitBody, signedIn())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var res application.SubmitResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.State != domain.StateSucceeded {
		t.Errorf("state = %s", res.State)
	}
	if !strings.Contains(res.RedirectTo, "payment_intent=pi_done") {
		t.Errorf("redirect = %q", res.RedirectTo)
	}
	if cart.clears != 1 {
		t.Errorf("clears = %d", cart.clears)
	}
}

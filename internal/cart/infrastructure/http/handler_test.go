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

	"github.com/essenza-labs/storefront/internal/cart/application"
	"github.com/essenza-labs/storefront/internal/cart/domain"
)

type memStore struct {
	snapshots map[string]domain.Cart
}

func (m *memStore) Save(_ context.Context, sid string, cart domain.Cart) error {
	m.snapshots[sid] = domain.Cart{Lines: append([]domain.Line(nil), cart.Lines...)}
	return nil
}

func (m *memStore) Load(_ context.Context, sid string) (domain.Cart, error) {
	return m.snapshots[sid], nil
}

func (m *memStore) Delete(_ context.Context, sid string) error {
	delete(m.snapshots, sid)
	return nil
}

func newTestHandler() http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := application.NewService(log, &memStore{snapshots: make(map[string]domain.Cart)})
	return NewHandler(log, svc).Routes()
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("X-Session-ID", "test-session")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return resp
}

func TestHandler_AddThenGet(t *testing.T) {
	t.Parallel()

	h := newTestHandler()
	rec := doJSON(t, h, http.MethodPost, "/items",
		`{"product_id":"p1","name":"Santal Dusk","price_cents":12500,"quantity":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/", "")
	resp := decodeCart(t, rec)
	if len(resp.Cart.Lines) != 1 || resp.Cart.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected cart: %+v", resp.Cart.Lines)
	}
	if resp.Totals.SubtotalCents != 25000 || resp.Totals.GrandCents != 27000 {
		t.Errorf("unexpected totals: %+v", resp.Totals)
	}
}

func TestHandler_AddValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"missing product id", `{"name":"x","price_cents":100}`},
		{"missing name", `{"product_id":"p1","price_cents":100}`},
		{"negative price", `{"product_id":"p1","name":"x","price_cents":-1}`},
		{"zero quantity", `{"product_id":"p1","name":"x","price_cents":100,"quantity":0}`},
		{"bad json", `{`},
	}
	h := newTestHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/items", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandler_UpdateZeroRemovesLine(t *testing.T) {
	t.Parallel()

	h := newTestHandler()
	doJSON(t, h, http.MethodPost, "/items",
		`{"product_id":"p1","name":"Noir","price_cents":9000}`)

	rec := doJSON(t, h, http.MethodPut, "/items/p1", `{"quantity":0}`)
	resp := decodeCart(t, rec)
	if len(resp.Cart.Lines) != 0 {
		t.Errorf("expected empty cart, got %+v", resp.Cart.Lines)
	}
}

func TestHandler_ClearIsIdempotent(t *testing.T) {
	t.Parallel()

	h := newTestHandler()
	doJSON(t, h, http.MethodPost, "/items",
		`{"product_id":"p1","name":"Noir","price_cents":9000}`)

	for i := 0; i < 2; i++ {
		rec := doJSON(t, h, http.MethodDelete, "/", "")
		resp := decodeCart(t, rec)
		if len(resp.Cart.Lines) != 0 || resp.Totals.SubtotalCents != 0 {
			t.Fatalf("clear #%d: %+v %+v", i+1, resp.Cart.Lines, resp.Totals)
		}
	}
}

func TestHandler_MissingSessionRejected(t *testing.T) {
	t.Parallel()

	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

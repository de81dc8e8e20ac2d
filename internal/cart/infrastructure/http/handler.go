package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/essenza-labs/storefront/internal/apperr"
	"github.com/essenza-labs/storefront/internal/cart/application"
	"github.com/essenza-labs/storefront/internal/cart/domain"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("cart-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.getCart)
	r.Post("/items", h.addItem)
	r.Put("/items/{productID}", h.updateQuantity)
	r.Delete("/items/{productID}", h.removeItem)
	r.Delete("/", h.clearCart)

	return r
}

// SessionID resolves the shopping-session key from the X-Session-ID header or
// the sid cookie. An empty result means the caller sent neither.
func SessionID(r *http.Request) string {
	if sid := r.Header.Get("X-Session-ID"); sid != "" {
		return sid
	}
	if c, err := r.Cookie("sid"); err == nil {
		return c.Value
	}
	return ""
}

type cartResponse struct {
	Cart    domain.Cart   `json:"cart"`
	Totals  domain.Totals `json:"totals"`
	Warning string        `json:"warning,omitempty"`
}

func (h *Handler) respond(w http.ResponseWriter, cart domain.Cart, err error) {
	resp := cartResponse{Cart: cart, Totals: cart.ComputeTotals()}
	if errors.Is(err, apperr.ErrCartNotPersisted) {
		// The mutation took effect; the snapshot write did not.
		resp.Warning = apperr.Kind(err)
		err = nil
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperr.HTTPStatus(err))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
		"kind":  apperr.Kind(err),
	})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetCart")
	defer span.End()

	sid := SessionID(r)
	if sid == "" {
		h.writeError(w, apperr.Validation("session", "missing session id"))
		return
	}
	cart, err := h.service.Get(ctx, sid)
	h.respond(w, cart, err)
}

type addItemReq struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Image      string `json:"image"`
	Quantity   *int   `json:"quantity"`
}

func (r addItemReq) validate() error {
	if r.ProductID == "" {
		return apperr.Validation("product_id", "required")
	}
	if r.Name == "" {
		return apperr.Validation("name", "required")
	}
	if r.PriceCents < 0 {
		return apperr.Validation("price_cents", "must not be negative")
	}
	if r.Quantity != nil && *r.Quantity < 1 {
		return apperr.Validation("quantity", "must be at least 1")
	}
	return nil
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AddCartItem")
	defer span.End()

	sid := SessionID(r)
	if sid == "" {
		h.writeError(w, apperr.Validation("session", "missing session id"))
		return
	}

	var req addItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperr.Validation("body", "invalid json"))
		return
	}
	if err := req.validate(); err != nil {
		h.writeError(w, err)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	cart, err := h.service.AddItem(ctx, sid, domain.Line{
		ProductID:  req.ProductID,
		Name:       req.Name,
		PriceCents: req.PriceCents,
		Image:      req.Image,
		Quantity:   quantity,
	})
	h.respond(w, cart, err)
}

type updateQuantityReq struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateCartQuantity")
	defer span.End()

	sid := SessionID(r)
	if sid == "" {
		h.writeError(w, apperr.Validation("session", "missing session id"))
		return
	}

	var req updateQuantityReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperr.Validation("body", "invalid json"))
		return
	}

	cart, err := h.service.UpdateQuantity(ctx, sid, chi.URLParam(r, "productID"), req.Quantity)
	h.respond(w, cart, err)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RemoveCartItem")
	defer span.End()

	sid := SessionID(r)
	if sid == "" {
		h.writeError(w, apperr.Validation("session", "missing session id"))
		return
	}

	cart, err := h.service.RemoveItem(ctx, sid, chi.URLParam(r, "productID"))
	h.respond(w, cart, err)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ClearCart")
	defer span.End()

	sid := SessionID(r)
	if sid == "" {
		h.writeError(w, apperr.Validation("session", "missing session id"))
		return
	}

	cart, err := h.service.Clear(ctx, sid)
	h.respond(w, cart, err)
}

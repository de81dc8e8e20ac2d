package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/essenza-labs/storefront/internal/apperr"
	carthttp "github.com/essenza-labs/storefront/internal/cart/infrastructure/http"
	"github.com/essenza-labs/storefront/internal/checkout/application"
	"github.com/essenza-labs/storefront/internal/checkout/domain"
	identityhttp "github.com/essenza-labs/storefront/internal/identity/infrastructure/http"
)

type Handler struct {
	log          *slog.Logger
	orchestrator *application.Orchestrator
	tracer       trace.Tracer
}

func NewHandler(log *slog.Logger, orchestrator *application.Orchestrator) *Handler {
	return &Handler{
		log:          log,
		orchestrator: orchestrator,
		tracer:       otel.Tracer("checkout-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/begin", h.begin)
	r.Post("/submit", h.submit)

	return r
}

func (h *Handler) begin(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "BeginCheckout")
	defer span.End()

	sid := carthttp.SessionID(r)
	if sid == "" {
		h.writeError(w, apperr.Validation("session", "missing session id"))
		return
	}

	res, err := h.orchestrator.Begin(ctx, sid, identityhttp.SessionFrom(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if res.State == domain.StateBlocked {
		// Blocked is the only entry state that navigates.
		http.Redirect(w, r, res.RedirectTo, http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(res)
}

type submitReq struct {
	Handle           string                 `json:"handle"`
	PaymentMethodRef string                 `json:"payment_method"`
	Shipping         domain.ShippingDetails `json:"shipping"`
	Billing          domain.BillingDetails  `json:"billing"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "SubmitCheckout")
	defer span.End()

	sid := carthttp.SessionID(r)
	if sid == "" {
		h.writeError(w, apperr.Validation("session", "missing session id"))
		return
	}

	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperr.Validation("body", "invalid json"))
		return
	}

	res, err := h.orchestrator.Submit(ctx, application.SubmitInput{
		SessionID:        sid,
		Session:          identityhttp.SessionFrom(r.Context()),
		Handle:           req.Handle,
		PaymentMethodRef: req.PaymentMethodRef,
		Shipping:         req.Shipping,
		Billing:          req.Billing,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	switch res.State {
	case domain.StateBlocked:
		http.Redirect(w, r, res.RedirectTo, http.StatusSeeOther)
	case domain.StateCollectingDetails:
		// Recoverable confirmation failure; the form renders in place.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(res)
	default:
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperr.HTTPStatus(err))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
		"kind":  apperr.Kind(err),
	})
}

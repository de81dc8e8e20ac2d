package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/essenza-labs/storefront/internal/apperr"
	"github.com/essenza-labs/storefront/internal/catalog/application"
	"github.com/essenza-labs/storefront/internal/catalog/domain"
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
		tracer:  otel.Tracer("catalog-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/products", h.listProducts)
	r.Get("/products/{id}", h.getProduct)
	r.Get("/featured", h.featured)

	return r
}

func viewFromQuery(r *http.Request) domain.View {
	q := r.URL.Query()
	view := domain.View{
		SearchQuery: q.Get("q"),
		Category:    q.Get("category"),
		Sort:        domain.SortKey(q.Get("sort")),
	}
	if v, err := strconv.ParseInt(q.Get("min_price"), 10, 64); err == nil {
		view.MinPriceCents = v
	}
	if v, err := strconv.ParseInt(q.Get("max_price"), 10, 64); err == nil {
		view.MaxPriceCents = v
	}
	if v, err := strconv.ParseFloat(q.Get("min_rating"), 64); err == nil {
		view.MinRating = v
	}
	if v, err := strconv.ParseBool(q.Get("in_stock")); err == nil {
		view.InStockOnly = v
	}
	return view
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListProducts")
	defer span.End()

	listing, err := h.service.Browse(ctx, viewFromQuery(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"products": listing.Products,
		"source":   listing.Source,
	})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetProduct")
	defer span.End()

	p, err := h.service.Product(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

func (h *Handler) featured(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "FeaturedProducts")
	defer span.End()

	products, err := h.service.Featured(ctx, 8)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"products": products})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperr.HTTPStatus(err))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
		"kind":  apperr.Kind(err),
	})
}

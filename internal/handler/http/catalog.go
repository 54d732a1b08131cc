package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tiffanyadora/storefront/internal/catalog"
	"github.com/tiffanyadora/storefront/pkg/httputil"
	"github.com/tiffanyadora/storefront/pkg/pagination"
)

// CatalogHandler handles HTTP requests for product browsing.
type CatalogHandler struct {
	service *catalog.Service
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *catalog.Service, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// ListProducts handles GET /storefront/products with page and per_page
// parameters. The store API returns the full catalog; the page is cut here.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	params := pagination.FromRequest(r)
	page := products[min(params.Offset, len(products)):min(params.Offset+params.PerPage, len(products))]

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: pagination.NewResult(page, len(products), params),
	})
}

// GetProduct handles GET /storefront/products/{productID}. The response is
// the product enriched with Pokemon data and a weather-based shipping
// estimate when available.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	if productID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "productID is required"},
		})
		return
	}

	detail, err := h.service.GetProductDetail(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: detail})
}

package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tiffanyadora/storefront/internal/catalog"
	"github.com/tiffanyadora/storefront/pkg/httputil"
	"github.com/tiffanyadora/storefront/pkg/validator"
)

// AdminHandler handles HTTP requests for catalog administration: product
// CRUD, review moderation, and CSV imports. All writes go through the store
// API; the storefront holds no catalog state of its own.
type AdminHandler struct {
	service  *catalog.Service
	importer *catalog.Importer
	logger   *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(svc *catalog.Service, importer *catalog.Importer, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		service:  svc,
		importer: importer,
		logger:   logger,
	}
}

// CreateProduct handles POST /storefront/admin/products
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var form catalog.ProductForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	product, err := h.service.CreateProduct(r.Context(), form)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// UpdateProduct handles PUT /storefront/admin/products/{productID}
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var form catalog.ProductForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := h.service.UpdateProduct(r.Context(), productID, form); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "updated"}})
}

// DeleteProduct handles DELETE /storefront/admin/products/{productID}.
// Deletion is destructive and irreversible, so the request must carry
// confirm=true; there is no blocking dialog to fall back on.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	if r.URL.Query().Get("confirm") != "true" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "CONFIRMATION_REQUIRED", Message: "resend with confirm=true to delete the product"},
		})
		return
	}

	if err := h.service.DeleteProduct(r.Context(), productID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

// ImportProducts handles POST /storefront/admin/products/import. The body is
// a product CSV export; bad rows are reported, not fatal.
func (h *AdminHandler) ImportProducts(w http.ResponseWriter, r *http.Request) {
	report, err := h.importer.ImportProducts(r.Context(), r.Body)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()},
		})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: report})
}

// AddReview handles POST /storefront/reviews
func (h *AdminHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	var form catalog.ReviewForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	review, err := h.service.AddReview(r.Context(), form)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: review})
}

// UpdateReview handles PUT /storefront/reviews/{reviewID}
func (h *AdminHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewID")

	var form catalog.ReviewForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := h.service.UpdateReview(r.Context(), reviewID, form); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "updated"}})
}

// DeleteReview handles DELETE /storefront/reviews/{reviewID}?username=...
// The store checks that the username matches the review's author.
func (h *AdminHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewID")
	username := r.URL.Query().Get("username")

	if err := h.service.DeleteReview(r.Context(), reviewID, username); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

// writeServiceError routes validation failures to the field-level writer and
// everything else to the shared error writer.
func (h *AdminHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		httputil.WriteValidationError(w, err)
		return
	}
	httputil.WriteError(w, r, err, h.logger)
}

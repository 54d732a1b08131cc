package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tiffanyadora/storefront/internal/favorites"
	"github.com/tiffanyadora/storefront/pkg/httputil"
)

// FavoritesHandler handles HTTP requests for per-session liked products.
type FavoritesHandler struct {
	store  *favorites.Store
	logger *slog.Logger
}

// NewFavoritesHandler creates a new favorites HTTP handler.
func NewFavoritesHandler(store *favorites.Store, logger *slog.Logger) *FavoritesHandler {
	return &FavoritesHandler{
		store:  store,
		logger: logger,
	}
}

// Toggle handles POST /storefront/favorites/{productID}/toggle and returns
// the new liked state.
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "session ID is required"},
		})
		return
	}

	productID := chi.URLParam(r, "productID")
	liked, err := h.store.Toggle(r.Context(), sid, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"product_id": productID,
		"liked":      liked,
	}})
}

// Status handles GET /storefront/favorites/{productID}, reporting whether
// the session has liked the product.
func (h *FavoritesHandler) Status(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "session ID is required"},
		})
		return
	}

	productID := chi.URLParam(r, "productID")
	liked, err := h.store.IsLiked(r.Context(), sid, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"product_id": productID,
		"liked":      liked,
	}})
}

// List handles GET /storefront/favorites
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "session ID is required"},
		})
		return
	}

	ids, err := h.store.List(r.Context(), sid)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string][]string{"product_ids": ids}})
}

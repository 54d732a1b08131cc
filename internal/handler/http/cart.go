package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tiffanyadora/storefront/internal/cart"
	"github.com/tiffanyadora/storefront/internal/domain"
	"github.com/tiffanyadora/storefront/internal/storeapi"
	"github.com/tiffanyadora/storefront/internal/view"
	"github.com/tiffanyadora/storefront/pkg/httputil"
	"github.com/tiffanyadora/storefront/pkg/validator"
)

// CartHandler handles HTTP requests for cart and checkout endpoints. Each
// request resolves its session's synchronizer through the registry.
type CartHandler struct {
	sessions *cart.Registry
	logger   *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(sessions *cart.Registry, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding a product to the cart.
// Quantity defaults to one when omitted.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
	Size      string `json:"size"`
}

// UpdateQuantityRequest is the JSON request body for setting a line's
// absolute quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// cartResponse carries the authoritative cart state together with the view
// projections rebuilt from it.
type cartResponse struct {
	Cart domain.CartState `json:"cart"`
	View view.Model       `json:"view"`
}

// --- Handlers ---

// GetCart handles GET /storefront/cart. It refreshes the mirror from the
// store and returns the rendered projections. A fetch failure degrades
// silently: the last known state is served instead.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionFromContext(r.Context())
	if !ok {
		h.writeMissingSession(w)
		return
	}

	sess := h.sessions.Get(sid)
	// Load already logs and keeps the previous state on failure.
	_ = sess.Sync.Load(r.Context())

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartResponse{
		Cart: sess.Sync.Snapshot(),
		View: sess.Renderer.Current(),
	}})
}

// AddItem handles POST /storefront/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionFromContext(r.Context())
	if !ok {
		h.writeMissingSession(w)
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	sess := h.sessions.Get(sid)
	if err := sess.Sync.Add(r.Context(), req.ProductID, req.Quantity, req.Size); err != nil {
		h.writeCartError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartResponse{
		Cart: sess.Sync.Snapshot(),
		View: sess.Renderer.Current(),
	}})
}

// UpdateItem handles PUT /storefront/cart/items/{itemID}.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionFromContext(r.Context())
	if !ok {
		h.writeMissingSession(w)
		return
	}

	itemID := chi.URLParam(r, "itemID")
	if itemID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "itemID is required"},
		})
		return
	}

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	sess := h.sessions.Get(sid)
	if err := sess.Sync.UpdateItem(r.Context(), itemID, req.Quantity); err != nil {
		h.writeCartError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartResponse{
		Cart: sess.Sync.Snapshot(),
		View: sess.Renderer.Current(),
	}})
}

// RemoveItem handles DELETE /storefront/cart/items/{itemID}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionFromContext(r.Context())
	if !ok {
		h.writeMissingSession(w)
		return
	}

	itemID := chi.URLParam(r, "itemID")
	if itemID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "itemID is required"},
		})
		return
	}

	sess := h.sessions.Get(sid)
	if err := sess.Sync.Remove(r.Context(), itemID); err != nil {
		h.writeCartError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartResponse{
		Cart: sess.Sync.Snapshot(),
		View: sess.Renderer.Current(),
	}})
}

// Checkout handles POST /storefront/checkout. A declined order is a 200 with
// an unsuccessful result, not an error status; only transport failures reach
// the error path.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionFromContext(r.Context())
	if !ok {
		h.writeMissingSession(w)
		return
	}

	var info domain.CustomerInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}
	if err := validator.Validate(info); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	sess := h.sessions.Get(sid)
	result, err := sess.Sync.Checkout(r.Context(), info)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// --- Helpers ---

// writeCartError maps a failed cart mutation to a response. The store's own
// rejections come back as 422 with the server's message; everything else is
// a transport problem handled by the shared error writer.
func (h *CartHandler) writeCartError(w http.ResponseWriter, r *http.Request, err error) {
	if serverErr, ok := storeapi.AsServerError(err); ok {
		httputil.WriteJSON(w, http.StatusUnprocessableEntity, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "STORE_REJECTED", Message: serverErr.Message},
		})
		return
	}
	httputil.WriteError(w, r, err, h.logger)
}

func (h *CartHandler) writeMissingSession(w http.ResponseWriter) {
	httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
		Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "session ID is required"},
	})
}

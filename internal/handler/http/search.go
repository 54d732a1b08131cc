package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/tiffanyadora/storefront/internal/domain"
	"github.com/tiffanyadora/storefront/internal/search"
	"github.com/tiffanyadora/storefront/internal/storeapi"
	"github.com/tiffanyadora/storefront/pkg/httputil"
)

// SearchHandler handles HTTP requests for catalog search.
type SearchHandler struct {
	service *search.Service
	logger  *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *search.Service, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: svc,
		logger:  logger,
	}
}

// searchResponse is the JSON shape for search results. Suggestions carry
// "did you mean" alternatives when the query matched nothing.
type searchResponse struct {
	Products    []domain.Product `json:"products"`
	Suggestions []string         `json:"suggestions,omitempty"`
}

// suggestResponse is the JSON shape for type-ahead results. Superseded means
// a newer keystroke cancelled this one before the quiet period ended.
type suggestResponse struct {
	Superseded  bool             `json:"superseded"`
	Products    []domain.Product `json:"products,omitempty"`
	Suggestions []string         `json:"suggestions,omitempty"`
}

func queryFromRequest(r *http.Request) storeapi.SearchQuery {
	params := r.URL.Query()
	q := storeapi.SearchQuery{
		Query:    params.Get("query"),
		Category: params.Get("category"),
	}
	if v, err := strconv.ParseFloat(params.Get("min_price"), 64); err == nil {
		q.MinPrice = v
	}
	if v, err := strconv.ParseFloat(params.Get("max_price"), 64); err == nil {
		q.MaxPrice = v
	}
	if v, err := strconv.ParseFloat(params.Get("min_rating"), 64); err == nil {
		q.MinRating = v
	}
	return q
}

// Search handles GET /storefront/search with query, category, min_price,
// max_price, min_rating, and sort parameters.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "session ID is required"},
		})
		return
	}

	result, err := h.service.Search(r.Context(), sid, queryFromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	search.SortProducts(result.Products, r.URL.Query().Get("sort"))

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: searchResponse{
		Products:    result.Products,
		Suggestions: result.Suggestions,
	}})
}

// Suggest handles GET /storefront/search/suggest?query=... for type-ahead.
// Calls superseded by a newer keystroke return superseded=true with no
// results.
func (h *SearchHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "session ID is required"},
		})
		return
	}

	result, ran, err := h.service.Suggest(r.Context(), sid, r.URL.Query().Get("query"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: suggestResponse{
		Superseded:  !ran,
		Products:    result.Products,
		Suggestions: result.Suggestions,
	}})
}

// Recent handles GET /storefront/search/recent, returning the session's
// latest queries newest first.
func (h *SearchHandler) Recent(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "session ID is required"},
		})
		return
	}

	queries, err := h.service.RecentSearches(r.Context(), sid)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string][]string{"queries": queries}})
}

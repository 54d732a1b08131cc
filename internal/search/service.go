package search

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/tiffanyadora/storefront/internal/storeapi"
	apperrors "github.com/tiffanyadora/storefront/pkg/errors"
)

// MinQueryLength is the shortest text query the storefront will send
// upstream. Filter-only searches (category, price, rating) have no minimum.
const MinQueryLength = 2

// API is the slice of the store API the search service needs.
type API interface {
	Search(ctx context.Context, q storeapi.SearchQuery) (storeapi.SearchResult, error)
}

// Events publishes search analytics events.
type Events interface {
	PublishSearchPerformed(ctx context.Context, sessionID, query string, resultCount int) error
}

// Service runs catalog searches for storefront sessions, recording recent
// queries and emitting analytics events.
type Service struct {
	api      API
	recent   *RecentStore
	events   Events
	debounce *Debouncer
	logger   *slog.Logger
}

// NewService creates the search service.
func NewService(api API, recent *RecentStore, events Events, debounce *Debouncer, logger *slog.Logger) *Service {
	return &Service{
		api:      api,
		recent:   recent,
		events:   events,
		debounce: debounce,
		logger:   logger,
	}
}

// Search runs a full search with filters. The query, when present, must meet
// the minimum length. Successful text searches are added to the session's
// recent history.
func (s *Service) Search(ctx context.Context, sessionID string, q storeapi.SearchQuery) (storeapi.SearchResult, error) {
	q.Query = strings.TrimSpace(q.Query)
	if q.Query != "" && utf8.RuneCountInString(q.Query) < MinQueryLength {
		return storeapi.SearchResult{}, apperrors.InvalidInput("search query must be at least 2 characters")
	}

	result, err := s.api.Search(ctx, q)
	if err != nil {
		return storeapi.SearchResult{}, err
	}

	if q.Query != "" {
		if err := s.recent.Add(ctx, sessionID, q.Query); err != nil {
			s.logger.WarnContext(ctx, "failed to record recent search",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		}
		if err := s.events.PublishSearchPerformed(ctx, sessionID, q.Query, len(result.Products)); err != nil {
			s.logger.DebugContext(ctx, "failed to publish search.performed event",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		}
	}

	return result, nil
}

// Suggest runs a debounced live search for type-ahead. Keystrokes arriving
// within the quiet period supersede earlier ones: a superseded call returns
// ok=false with no result and no error. Suggestions do not touch the
// session's recent history.
func (s *Service) Suggest(ctx context.Context, sessionID, query string) (storeapi.SearchResult, bool, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return storeapi.SearchResult{}, false, apperrors.InvalidInput("search query must be at least 2 characters")
	}

	type outcome struct {
		result storeapi.SearchResult
		err    error
	}
	done := make(chan outcome, 1)

	superseded := s.debounce.Do(sessionID, func() {
		// Detached from the request context: the caller may already be gone
		// when the quiet period ends.
		result, err := s.api.Search(context.WithoutCancel(ctx), storeapi.SearchQuery{Query: query})
		done <- outcome{result: result, err: err}
	})

	select {
	case out := <-done:
		return out.result, out.err == nil, out.err
	case <-superseded:
		return storeapi.SearchResult{}, false, nil
	case <-ctx.Done():
		return storeapi.SearchResult{}, false, ctx.Err()
	}
}

// RecentSearches returns the session's most recent queries, newest first.
func (s *Service) RecentSearches(ctx context.Context, sessionID string) ([]string, error) {
	return s.recent.Recent(ctx, sessionID)
}

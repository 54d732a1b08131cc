package search

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/tiffanyadora/storefront/internal/domain"
	"github.com/tiffanyadora/storefront/internal/storeapi"
	apperrors "github.com/tiffanyadora/storefront/pkg/errors"
)

type stubAPI struct {
	mu      sync.Mutex
	calls   []storeapi.SearchQuery
	result  storeapi.SearchResult
	err     error
}

func (s *stubAPI) Search(ctx context.Context, q storeapi.SearchQuery) (storeapi.SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, q)
	return s.result, s.err
}

func (s *stubAPI) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type stubSearchEvents struct {
	mu      sync.Mutex
	queries []string
}

func (s *stubSearchEvents) PublishSearchPerformed(ctx context.Context, sessionID, query string, resultCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)
	return nil
}

func newTestRecent(t *testing.T) *RecentStore {
	t.Helper()
	db, err := bbolt.Open(filepath.Join(t.TempDir(), "storefront.db"), 0o600, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	recent, err := NewRecentStore(db)
	require.NoError(t, err)
	return recent
}

func newTestService(t *testing.T, api API) (*Service, *stubSearchEvents) {
	t.Helper()
	events := &stubSearchEvents{}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewService(api, newTestRecent(t), events, NewDebouncer(10*time.Millisecond), logger), events
}

func TestSearch_RecordsRecentAndPublishes(t *testing.T) {
	api := &stubAPI{result: storeapi.SearchResult{Products: []domain.Product{{ID: "1"}}}}
	svc, events := newTestService(t, api)

	result, err := svc.Search(context.Background(), "sess-1", storeapi.SearchQuery{Query: "pikachu"})
	require.NoError(t, err)
	assert.Len(t, result.Products, 1)

	recent, err := svc.RecentSearches(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"pikachu"}, recent)
	assert.Equal(t, []string{"pikachu"}, events.queries)
}

func TestSearch_ShortQueryRejectedLocally(t *testing.T) {
	api := &stubAPI{}
	svc, _ := newTestService(t, api)

	_, err := svc.Search(context.Background(), "sess-1", storeapi.SearchQuery{Query: "p"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Equal(t, 0, api.callCount())
}

func TestSearch_FilterOnlyHasNoMinimum(t *testing.T) {
	api := &stubAPI{}
	svc, events := newTestService(t, api)

	_, err := svc.Search(context.Background(), "sess-1", storeapi.SearchQuery{Category: "plush", MinRating: 4})
	require.NoError(t, err)
	assert.Equal(t, 1, api.callCount())

	// No text query: nothing recorded, nothing published.
	recent, err := svc.RecentSearches(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, recent)
	assert.Empty(t, events.queries)
}

func TestSearch_FailedSearchNotRecorded(t *testing.T) {
	api := &stubAPI{err: errors.New("upstream down")}
	svc, _ := newTestService(t, api)

	_, err := svc.Search(context.Background(), "sess-1", storeapi.SearchQuery{Query: "pikachu"})
	require.Error(t, err)

	recent, err := svc.RecentSearches(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestRecentStore_DedupAndCap(t *testing.T) {
	recent := newTestRecent(t)
	ctx := context.Background()

	queries := []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten", "eleven"}
	for _, q := range queries {
		require.NoError(t, recent.Add(ctx, "sess-1", q))
	}

	// Repeating an old query moves it to the front, case-insensitively.
	require.NoError(t, recent.Add(ctx, "sess-1", "Nine"))

	got, err := recent.Recent(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Nine", "eleven", "ten"}, got)
}

func TestRecentStore_ShowsNewestFirst(t *testing.T) {
	recent := newTestRecent(t)
	ctx := context.Background()

	require.NoError(t, recent.Add(ctx, "sess-1", "first"))
	require.NoError(t, recent.Add(ctx, "sess-1", "second"))

	got, err := recent.Recent(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, got)
}

func TestSuggest_DebouncesBursts(t *testing.T) {
	api := &stubAPI{result: storeapi.SearchResult{Products: []domain.Product{{ID: "1", Name: "Pikachu Plush"}}}}
	svc, _ := newTestService(t, api)

	var wg sync.WaitGroup
	results := make([]bool, 3)
	for i, q := range []string{"pi", "pik", "pika"} {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			_, ok, err := svc.Suggest(context.Background(), "sess-1", q)
			assert.NoError(t, err)
			results[i] = ok
		}(i, q)
		time.Sleep(2 * time.Millisecond)
	}
	wg.Wait()

	// Only the last keystroke survives the quiet period.
	assert.Equal(t, 1, api.callCount())
	won := 0
	for _, ok := range results {
		if ok {
			won++
		}
	}
	assert.Equal(t, 1, won)
}

func TestSuggest_ShortQueryRejected(t *testing.T) {
	api := &stubAPI{}
	svc, _ := newTestService(t, api)

	_, _, err := svc.Suggest(context.Background(), "sess-1", "p")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestDebouncer_IndependentKeys(t *testing.T) {
	d := NewDebouncer(5 * time.Millisecond)

	var mu sync.Mutex
	ran := map[string]bool{}
	done := make(chan struct{}, 2)

	d.Do("a", func() { mu.Lock(); ran["a"] = true; mu.Unlock(); done <- struct{}{} })
	d.Do("b", func() { mu.Lock(); ran["b"] = true; mu.Unlock(); done <- struct{}{} })

	<-done
	<-done
	mu.Lock()
	defer mu.Unlock()
	assert.True(t, ran["a"])
	assert.True(t, ran["b"])
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(5 * time.Millisecond)

	superseded := d.Do("a", func() { t.Error("canceled fn must not run") })
	d.Cancel("a")

	select {
	case <-superseded:
	case <-time.After(time.Second):
		t.Fatal("superseded channel not closed on cancel")
	}
	time.Sleep(10 * time.Millisecond)
}

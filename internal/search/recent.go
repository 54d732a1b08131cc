package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.etcd.io/bbolt"
)

// Recent-search retention: the last maxStored queries are kept per session,
// and the newest maxShown are surfaced in the UI.
const (
	maxStored = 10
	maxShown  = 3
)

var bucketRecent = []byte("recent_searches")

// RecentStore persists each session's recent search queries in the local
// bolt database, oldest first.
type RecentStore struct {
	db *bbolt.DB
}

// NewRecentStore prepares the recent-searches bucket in an already opened
// database.
func NewRecentStore(db *bbolt.DB) (*RecentStore, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRecent)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create recent searches bucket: %w", err)
	}
	return &RecentStore{db: db}, nil
}

// Add records a query for the session. Repeating an earlier query moves it
// to the front instead of duplicating it; the history is capped at the last
// ten entries.
func (s *RecentStore) Add(ctx context.Context, sessionID, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecent)

		var queries []string
		if raw := bucket.Get([]byte(sessionID)); raw != nil {
			if err := json.Unmarshal(raw, &queries); err != nil {
				return fmt.Errorf("decode recent searches: %w", err)
			}
		}

		// Deduplicate case-insensitively, keeping the latest casing.
		kept := queries[:0]
		for _, q := range queries {
			if !strings.EqualFold(q, query) {
				kept = append(kept, q)
			}
		}
		kept = append(kept, query)

		if len(kept) > maxStored {
			kept = kept[len(kept)-maxStored:]
		}

		raw, err := json.Marshal(kept)
		if err != nil {
			return fmt.Errorf("encode recent searches: %w", err)
		}
		return bucket.Put([]byte(sessionID), raw)
	})
	if err != nil {
		return fmt.Errorf("add recent search: %w", err)
	}
	return nil
}

// Recent returns up to the three most recent queries, newest first.
func (s *RecentStore) Recent(ctx context.Context, sessionID string) ([]string, error) {
	var queries []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketRecent).Get([]byte(sessionID))
		if raw == nil {
			return nil
		}
		return json.Unmarshal(raw, &queries)
	})
	if err != nil {
		return nil, fmt.Errorf("load recent searches: %w", err)
	}

	n := len(queries)
	shown := maxShown
	if n < shown {
		shown = n
	}

	out := make([]string, 0, shown)
	for i := n - 1; i >= n-shown; i-- {
		out = append(out, queries[i])
	}
	return out, nil
}

package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"
)

var bucketFavorites = []byte("favorites")

// Store persists per-session liked products in a local bolt database, the
// storefront's stand-in for browser-local storage. Favorites never touch the
// store API.
type Store struct {
	db *bbolt.DB
}

// NewStore prepares the favorites bucket in an already opened database.
func NewStore(db *bbolt.DB) (*Store, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketFavorites)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create favorites bucket: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) load(tx *bbolt.Tx, sessionID string) (map[string]bool, error) {
	liked := make(map[string]bool)
	raw := tx.Bucket(bucketFavorites).Get([]byte(sessionID))
	if raw == nil {
		return liked, nil
	}
	if err := json.Unmarshal(raw, &liked); err != nil {
		return nil, fmt.Errorf("decode favorites for session: %w", err)
	}
	return liked, nil
}

// Toggle flips the liked state of a product and returns the new state.
func (s *Store) Toggle(ctx context.Context, sessionID, productID string) (bool, error) {
	var nowLiked bool
	err := s.db.Update(func(tx *bbolt.Tx) error {
		liked, err := s.load(tx, sessionID)
		if err != nil {
			return err
		}

		if liked[productID] {
			delete(liked, productID)
			nowLiked = false
		} else {
			liked[productID] = true
			nowLiked = true
		}

		raw, err := json.Marshal(liked)
		if err != nil {
			return fmt.Errorf("encode favorites: %w", err)
		}
		return tx.Bucket(bucketFavorites).Put([]byte(sessionID), raw)
	})
	if err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}
	return nowLiked, nil
}

// IsLiked reports whether the session has liked the product.
func (s *Store) IsLiked(ctx context.Context, sessionID, productID string) (bool, error) {
	var result bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		liked, err := s.load(tx, sessionID)
		if err != nil {
			return err
		}
		result = liked[productID]
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return result, nil
}

// List returns the session's liked product IDs in stable order.
func (s *Store) List(ctx context.Context, sessionID string) ([]string, error) {
	var ids []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		liked, err := s.load(tx, sessionID)
		if err != nil {
			return err
		}
		ids = make([]string, 0, len(liked))
		for id := range liked {
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// Ping verifies the database is usable. Used as a health check.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketFavorites) == nil {
			return fmt.Errorf("favorites bucket missing")
		}
		return nil
	})
}

package favorites

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := bbolt.Open(filepath.Join(t.TempDir(), "storefront.db"), 0o600, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewStore(db)
	require.NoError(t, err)
	return store
}

func TestToggle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	liked, err := store.Toggle(ctx, "sess-1", "42")
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = store.Toggle(ctx, "sess-1", "42")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestIsLiked(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ok, err := store.IsLiked(ctx, "sess-1", "42")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Toggle(ctx, "sess-1", "42")
	require.NoError(t, err)

	ok, err = store.IsLiked(ctx, "sess-1", "42")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestList_SortedAndSessionScoped(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"9", "2", "15"} {
		_, err := store.Toggle(ctx, "sess-1", id)
		require.NoError(t, err)
	}
	_, err := store.Toggle(ctx, "sess-2", "7")
	require.NoError(t, err)

	ids, err := store.List(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"15", "2", "9"}, ids)

	ids, err = store.List(ctx, "sess-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"7"}, ids)
}

func TestPing(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}

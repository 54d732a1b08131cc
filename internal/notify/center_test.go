package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushAndActive(t *testing.T) {
	c := NewCenter(DefaultTTL)
	c.Push("sess-1", LevelSuccess, "Item added to cart!")

	active := c.Active("sess-1")
	require.Len(t, active, 1)
	assert.Equal(t, "Item added to cart!", active[0].Message)
	assert.Equal(t, LevelSuccess, active[0].Level)

	assert.Empty(t, c.Active("other-session"))
}

func TestNotificationsExpire(t *testing.T) {
	now := time.Now()
	c := NewCenter(DefaultTTL).WithClock(func() time.Time { return now })

	c.Push("sess-1", LevelError, "Error adding to cart")
	require.Len(t, c.Active("sess-1"), 1)

	now = now.Add(2 * time.Second)
	assert.Len(t, c.Active("sess-1"), 1)

	now = now.Add(1001 * time.Millisecond)
	assert.Empty(t, c.Active("sess-1"))
}

func TestExpiredEntriesArePruned(t *testing.T) {
	now := time.Now()
	c := NewCenter(DefaultTTL).WithClock(func() time.Time { return now })

	c.Push("sess-1", LevelInfo, "first")
	now = now.Add(4 * time.Second)
	c.Push("sess-1", LevelInfo, "second")

	active := c.Active("sess-1")
	require.Len(t, active, 1)
	assert.Equal(t, "second", active[0].Message)
}

func TestActiveOrdering(t *testing.T) {
	now := time.Now()
	c := NewCenter(DefaultTTL).WithClock(func() time.Time { return now })

	c.Push("sess-1", LevelInfo, "first")
	now = now.Add(time.Second)
	c.Push("sess-1", LevelInfo, "second")

	active := c.Active("sess-1")
	require.Len(t, active, 2)
	assert.Equal(t, "first", active[0].Message)
	assert.Equal(t, "second", active[1].Message)
}

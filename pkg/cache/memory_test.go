package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "k", map[string]int{"n": 1}, 0))

	var got map[string]int
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, got["n"])

	found, err = c.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_ExpiresEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.SetClock(func() time.Time { return now })

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	ok, _ := c.Exists(ctx, "k")
	assert.True(t, ok)

	ttl, _ := c.TTL(ctx, "k")
	assert.Equal(t, time.Minute, ttl)

	now = now.Add(time.Minute)
	ok, _ = c.Exists(ctx, "k")
	assert.False(t, ok)

	ttl, _ = c.TTL(ctx, "k")
	assert.Equal(t, -2*time.Second, ttl)
}

func TestMemoryCache_IncrementAndExpire(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.SetClock(func() time.Time { return now })

	for i := int64(1); i <= 3; i++ {
		n, err := c.Increment(ctx, "counter")
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	ttl, _ := c.TTL(ctx, "counter")
	assert.Equal(t, -1*time.Second, ttl)

	require.NoError(t, c.Expire(ctx, "counter", 10*time.Second))
	now = now.Add(11 * time.Second)

	n, err := c.Increment(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryCache_Delete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "a", 1, 0))
	require.NoError(t, c.Set(ctx, "b", 2, 0))
	require.NoError(t, c.Delete(ctx, "a", "b"))

	ok, _ := c.Exists(ctx, "a")
	assert.False(t, ok)
	ok, _ = c.Exists(ctx, "b")
	assert.False(t, ok)
}

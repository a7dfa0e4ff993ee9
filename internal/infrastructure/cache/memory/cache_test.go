package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web3-token-analytics-bot/internal/infrastructure/cache"
)

type payload struct {
	Symbol string  `json:"symbol"`
	Volume float64 `json:"volume"`
}

func TestCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewCache(time.Minute)

	require.NoError(t, c.Set(ctx, "k", payload{Symbol: "TEST", Volume: 10}, 0))

	var got payload
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, payload{Symbol: "TEST", Volume: 10}, got)
}

func TestCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCache(time.Minute)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "short", 1, 10*time.Second))
	require.NoError(t, c.Set(ctx, "default", 2, 0))

	now = now.Add(10 * time.Second)
	var v int
	assert.ErrorIs(t, c.Get(ctx, "short", &v), cache.ErrCacheMiss)
	require.NoError(t, c.Get(ctx, "default", &v))
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())

	now = now.Add(time.Minute)
	assert.ErrorIs(t, c.Get(ctx, "default", &v), cache.ErrCacheMiss)
}

func TestCache_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	c := NewCache(time.Minute)

	require.NoError(t, c.Set(ctx, "a", "x", 0))
	require.NoError(t, c.Set(ctx, "b", "y", 0))

	require.NoError(t, c.Delete(ctx, "a"))
	var s string
	assert.ErrorIs(t, c.Get(ctx, "a", &s), cache.ErrCacheMiss)

	require.NoError(t, c.Clear(ctx))
	assert.ErrorIs(t, c.Get(ctx, "b", &s), cache.ErrCacheMiss)
	assert.Zero(t, c.Len())
}

func TestCache_SetRejectsUnmarshalable(t *testing.T) {
	c := NewCache(time.Minute)
	assert.Error(t, c.Set(context.Background(), "bad", make(chan int), 0))
}

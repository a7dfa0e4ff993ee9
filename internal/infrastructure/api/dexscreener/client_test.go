package dexscreener

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pairsBody = `{"schemaVersion":"1.0.0","pairs":[
	{"pairAddress":"0x1","chainId":"ethereum","priceUsd":"1.5"},
	{"pairAddress":"0x2","chainId":"bsc"}
]}`

type recordedSleeps struct {
	delays []time.Duration
}

func (r *recordedSleeps) sleep(ctx context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return ctx.Err()
}

func newTestClient(t *testing.T, handler http.HandlerFunc, maxRetries int) (*Client, *recordedSleeps) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(Options{
		BaseURL:    srv.URL,
		APIKey:     "secret",
		MaxRetries: maxRetries,
		RetryDelay: time.Second,
		HTTPClient: srv.Client(),
	})
	rec := &recordedSleeps{}
	c.sleep = rec.sleep
	return c, rec
}

func TestClient_GetRecentPairs(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pairs", r.URL.Path)
		assert.Equal(t, "24h", r.URL.Query().Get("timeframe"))
		assert.Equal(t, "createdAt", r.URL.Query().Get("sort"))
		assert.Equal(t, "desc", r.URL.Query().Get("order"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Write([]byte(pairsBody))
	}, 3)

	pairs, err := c.GetRecentPairs(context.Background(), 24)

	require.NoError(t, err)
	require.Len(t, pairs, 2)
	addr, err := pairs[0].PairAddress.Text()
	require.NoError(t, err)
	assert.Equal(t, "0x1", addr)
}

func TestClient_NoAuthHeaderWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"pairs":null}`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, MaxRetries: 1, HTTPClient: srv.Client()})
	pairs, err := c.SearchPairs(context.Background(), "PEPE")

	require.NoError(t, err)
	assert.NotNil(t, pairs)
	assert.Empty(t, pairs)
}

func TestClient_RetriesRateLimitWithLinearBackoff(t *testing.T) {
	var calls int32
	c, sleeps := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(pairsBody))
	}, 3)

	pairs, err := c.GetTrendingTokens(context.Background())

	require.NoError(t, err)
	assert.Len(t, pairs, 2)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, sleeps.delays)
}

func TestClient_GivesUpAfterRetries(t *testing.T) {
	var calls int32
	c, sleeps := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}, 3)

	pairs, err := c.GetRecentPairs(context.Background(), 6)

	require.NoError(t, err)
	assert.Empty(t, pairs)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Len(t, sleeps.delays, 2)
}

func TestClient_RetriesBadJSON(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Write([]byte(`{"pairs": [`))
			return
		}
		w.Write([]byte(pairsBody))
	}, 2)

	pairs, err := c.GetRecentPairs(context.Background(), 24)

	require.NoError(t, err)
	assert.Len(t, pairs, 2)
}

func TestClient_OtherStatusGivesUpImmediately(t *testing.T) {
	var calls int32
	c, sleeps := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "not found", http.StatusNotFound)
	}, 3)

	pairs, err := c.GetRecentPairs(context.Background(), 24)

	require.NoError(t, err)
	assert.Empty(t, pairs)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Empty(t, sleeps.delays)
}

func TestClient_CancelledContextReturnsError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetRecentPairs(ctx, 24)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_GetTokenInfo(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tokens/ethereum/0xabc", r.URL.Path)
		w.Write([]byte(`{"schemaVersion":"1.0.0","pairs":[]}`))
	}, 1)

	info, err := c.GetTokenInfo(context.Background(), "ethereum", "0xabc")

	require.NoError(t, err)
	assert.JSONEq(t, `{"schemaVersion":"1.0.0","pairs":[]}`, string(info))
}

func TestClient_GetTokenInfoNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, 3)

	info, err := c.GetTokenInfo(context.Background(), "ethereum", "0xabc")

	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestSleepContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))
}

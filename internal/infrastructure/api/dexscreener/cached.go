// internal/infrastructure/api/dexscreener/cached.go
package dexscreener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"web3-token-analytics-bot/internal/infrastructure/api"
	"web3-token-analytics-bot/internal/infrastructure/cache"
	dextypes "web3-token-analytics-bot/internal/types/dexscreener"
	"web3-token-analytics-bot/pkg/logger"
)

const keyPrefix = "dexscreener"

// CachedSource - клиент DexScreener с кэшем ответов.
// Кэшируются только непустые ответы, ошибки кэша пропускаются мимо.
type CachedSource struct {
	client api.DexClient
	cache  cache.Cache
	ttl    time.Duration
}

// NewCachedSource оборачивает клиент кэшем
func NewCachedSource(client api.DexClient, c cache.Cache, ttl time.Duration) *CachedSource {
	return &CachedSource{client: client, cache: c, ttl: ttl}
}

func cacheKey(endpoint string, params ...string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, endpoint, strings.Join(params, "/"))
}

func (s *CachedSource) GetRecentPairs(ctx context.Context, hours int) ([]dextypes.RawPair, error) {
	return s.pairs(ctx, cacheKey("pairs", fmt.Sprintf("%dh", hours)), func() ([]dextypes.RawPair, error) {
		return s.client.GetRecentPairs(ctx, hours)
	})
}

func (s *CachedSource) SearchPairs(ctx context.Context, query string) ([]dextypes.RawPair, error) {
	return s.pairs(ctx, cacheKey("search", query), func() ([]dextypes.RawPair, error) {
		return s.client.SearchPairs(ctx, query)
	})
}

func (s *CachedSource) GetTrendingTokens(ctx context.Context) ([]dextypes.RawPair, error) {
	return s.pairs(ctx, cacheKey("trending"), func() ([]dextypes.RawPair, error) {
		return s.client.GetTrendingTokens(ctx)
	})
}

func (s *CachedSource) GetTokenInfo(ctx context.Context, chain, address string) (json.RawMessage, error) {
	key := cacheKey("tokens", chain, address)

	var cached json.RawMessage
	if s.lookup(ctx, key, &cached) && len(cached) > 0 {
		return cached, nil
	}

	info, err := s.client.GetTokenInfo(ctx, chain, address)
	if err != nil || len(info) == 0 {
		return info, err
	}
	s.store(ctx, key, info)
	return info, nil
}

func (s *CachedSource) pairs(ctx context.Context, key string, fetch func() ([]dextypes.RawPair, error)) ([]dextypes.RawPair, error) {
	var cached []dextypes.RawPair
	if s.lookup(ctx, key, &cached) && len(cached) > 0 {
		logger.Debug("💾 Кэш DexScreener: %s (%d пар)", key, len(cached))
		return cached, nil
	}

	pairs, err := fetch()
	if err != nil || len(pairs) == 0 {
		return pairs, err
	}
	s.store(ctx, key, pairs)
	return pairs, nil
}

func (s *CachedSource) lookup(ctx context.Context, key string, dest interface{}) bool {
	err := s.cache.Get(ctx, key, dest)
	switch {
	case err == nil:
		return true
	case errors.Is(err, cache.ErrCacheMiss):
		return false
	default:
		logger.Warn("⚠️ Ошибка чтения кэша %s: %v", key, err)
		return false
	}
}

func (s *CachedSource) store(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		logger.Warn("⚠️ Ошибка записи кэша %s: %v", key, err)
	}
}

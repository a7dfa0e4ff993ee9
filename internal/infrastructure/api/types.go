// internal/infrastructure/api/types.go
package api

import (
	"context"
	"encoding/json"

	"web3-token-analytics-bot/internal/types/dexscreener"
)

// DexClient - операции над API DexScreener.
// Исчерпанные повторы дают пустой результат без ошибки; ошибка только при отмене ctx.
type DexClient interface {
	GetRecentPairs(ctx context.Context, hours int) ([]dexscreener.RawPair, error)
	SearchPairs(ctx context.Context, query string) ([]dexscreener.RawPair, error)
	GetTokenInfo(ctx context.Context, chain, address string) (json.RawMessage, error)
	GetTrendingTokens(ctx context.Context) ([]dexscreener.RawPair, error)
}

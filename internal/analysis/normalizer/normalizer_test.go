package normalizer

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web3-token-analytics-bot/internal/types/dexscreener"
)

const samplePair = `{
	"pairAddress": "0x123",
	"baseToken": {"symbol": "TEST", "address": "0x456"},
	"quoteToken": {"symbol": "ETH"},
	"chainId": "ethereum",
	"dexId": "uniswap",
	"priceUsd": "1.5",
	"volume": {"h24": "100000"},
	"priceChange": {"h24": "10.5"},
	"liquidity": {"usd": "500000"},
	"fdv": "1000000",
	"marketCap": "750000",
	"pairCreatedAt": "2023-01-01T00:00:00Z",
	"txns": {"h24": {"buys": 50, "sells": 30}},
	"holders": 1000
}`

func rawPair(t *testing.T, data string) dexscreener.RawPair {
	t.Helper()
	var raw dexscreener.RawPair
	require.NoError(t, json.Unmarshal([]byte(data), &raw))
	return raw
}

func TestNormalize_ValidRecord(t *testing.T) {
	out := Normalize(rawPair(t, samplePair))
	require.True(t, out.OK(), "unexpected error: %v", out.Err)

	rec := out.Record
	assert.Equal(t, "0x123", rec.PairAddress)
	assert.Equal(t, "TEST", rec.BaseSymbol)
	assert.Equal(t, "0x456", rec.BaseAddress)
	assert.Equal(t, "ETH", rec.QuoteSymbol)
	assert.Equal(t, "ethereum", rec.ChainID)
	assert.Equal(t, "uniswap", rec.DexID)
	assert.Equal(t, 1.5, rec.PriceUSD)
	assert.Equal(t, 100000.0, rec.VolumeH24)
	assert.Equal(t, 10.5, rec.PriceChangeH24)
	assert.Equal(t, 500000.0, rec.LiquidityUSD)
	assert.Equal(t, 1000000.0, rec.FDV)
	assert.Equal(t, 750000.0, rec.MarketCap)
	assert.Equal(t, "2023-01-01T00:00:00Z", rec.CreatedAt)
	assert.Equal(t, int64(80), rec.TxnsH24)
	assert.Equal(t, int64(1000), rec.Holders)
}

func TestNormalize_MissingFieldsDefault(t *testing.T) {
	out := Normalize(rawPair(t, `{"pairAddress": "0x1", "volume": null, "txns": {"h24": {"buys": 7}}}`))
	require.True(t, out.OK())

	rec := out.Record
	assert.Equal(t, "0x1", rec.PairAddress)
	assert.Empty(t, rec.BaseSymbol)
	assert.Empty(t, rec.ChainID)
	assert.Empty(t, rec.CreatedAt)
	assert.Zero(t, rec.VolumeH24)
	assert.Zero(t, rec.PriceUSD)
	assert.Zero(t, rec.Holders)
	assert.Equal(t, int64(7), rec.TxnsH24)
}

func TestNormalize_EpochMillisCreatedAt(t *testing.T) {
	out := Normalize(rawPair(t, `{"pairCreatedAt": 1672531200000}`))
	require.True(t, out.OK())
	assert.Equal(t, "2023-01-01T00:00:00Z", out.Record.CreatedAt)
}

func TestNormalize_Failures(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantErr  error
		wantPath string
	}{
		{"price not numeric", `{"priceUsd": "not_a_number"}`, dexscreener.ErrNotNumeric, "priceUsd"},
		{"volume container is string", `{"volume": "lots"}`, dexscreener.ErrWrongShape, "volume.h24"},
		{"fractional buys", `{"txns": {"h24": {"buys": 1.5}}}`, dexscreener.ErrNotInteger, "txns.h24.buys"},
		{"sells not numeric", `{"txns": {"h24": {"buys": 1, "sells": "x"}}}`, dexscreener.ErrNotNumeric, "txns.h24.sells"},
		{"holders infinite", `{"holders": "Infinity"}`, dexscreener.ErrNotFinite, "holders"},
		{"symbol is number", `{"baseToken": {"symbol": 5}}`, dexscreener.ErrWrongShape, "baseToken.symbol"},
		{"chain id is number", `{"chainId": 1}`, dexscreener.ErrWrongShape, "chainId"},
		{"fractional holders", `{"holders": 10.5}`, dexscreener.ErrNotInteger, "holders"},
		{"created at bool", `{"pairCreatedAt": true}`, dexscreener.ErrWrongShape, "pairCreatedAt"},
		{"record not object", `"garbage"`, dexscreener.ErrWrongShape, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Normalize(rawPair(t, tt.data))
			require.False(t, out.OK())
			assert.ErrorIs(t, out.Err, tt.wantErr)
			if tt.wantPath != "" {
				assert.Contains(t, out.Err.Error(), tt.wantPath+": ")
			}
		})
	}
}

func TestNormalize_ErrorMessageNamesField(t *testing.T) {
	out := Normalize(rawPair(t, `{"priceUsd": "not_a_number"}`))
	require.Error(t, out.Err)
	assert.Equal(t, `priceUsd: value is not numeric: "not_a_number"`, out.Err.Error())
}

func TestNormalizeAll_IsolatesBadRecord(t *testing.T) {
	raws := []dexscreener.RawPair{
		rawPair(t, `{"pairAddress": "0xa", "priceUsd": "1"}`),
		rawPair(t, `{"pairAddress": "0xbad", "priceUsd": "not_a_number"}`),
		rawPair(t, `{"pairAddress": "0xc", "priceUsd": 3}`),
	}

	var warnings []string
	warn := func(format string, v ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, v...))
	}

	records, dropped := NormalizeAll(raws, warn)

	assert.Equal(t, 1, dropped)
	require.Len(t, records, 2)
	assert.Equal(t, "0xa", records[0].PairAddress)
	assert.Equal(t, "0xc", records[1].PairAddress)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "0xbad")
	assert.Contains(t, warnings[0], "priceUsd")
}

func TestNormalizeAll_NilWarnAndEmptyInput(t *testing.T) {
	records, dropped := NormalizeAll(nil, nil)
	assert.Empty(t, records)
	assert.Zero(t, dropped)

	records, dropped = NormalizeAll([]dexscreener.RawPair{rawPair(t, `null`)}, nil)
	assert.Empty(t, records)
	assert.Equal(t, 1, dropped)
}

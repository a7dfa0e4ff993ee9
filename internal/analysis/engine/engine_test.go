package engine

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web3-token-analytics-bot/internal/types/analysis"
	"web3-token-analytics-bot/internal/types/dexscreener"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func silent(string, ...interface{}) {}

func newTestEngine(opts ...Option) *Engine {
	base := []Option{WithClock(fixedClock), WithWarn(silent)}
	return NewEngine(analysis.DefaultThresholds(), 3, append(base, opts...)...)
}

func raws(t *testing.T, items ...string) []dexscreener.RawPair {
	t.Helper()
	var out []dexscreener.RawPair
	require.NoError(t, json.Unmarshal([]byte("["+joinJSON(items)+"]"), &out))
	return out
}

func joinJSON(items []string) string {
	s := ""
	for i, item := range items {
		if i > 0 {
			s += ","
		}
		s += item
	}
	return s
}

func pairJSON(symbol, chain string, volume, change float64, buys, sells, holders int64) string {
	return fmt.Sprintf(`{"pairAddress":"0x%s","baseToken":{"symbol":%q},"chainId":%q,
		"priceUsd":"1","volume":{"h24":"%v"},"priceChange":{"h24":"%v"},
		"txns":{"h24":{"buys":%d,"sells":%d}},"holders":%d}`,
		symbol, symbol, chain, volume, change, buys, sells, holders)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	e := newTestEngine()

	result := e.Analyze(nil, 10000)

	assert.True(t, result.IsEmpty())
	assert.Equal(t, analysis.AnalysisResult{}, result)
	assert.Zero(t, e.History().Len())
}

func TestAnalyze_BelowFloorScenario(t *testing.T) {
	e := newTestEngine()

	result := e.Analyze(raws(t, `{"pairAddress":"0x1","volume":{"h24":"5000"}}`), 10000)

	assert.False(t, result.IsEmpty())
	assert.Zero(t, result.TotalPairs)
	assert.Nil(t, result.HighestVolume)
	assert.Nil(t, result.MostHolders)
	assert.Nil(t, result.PriceMovements)
	assert.Nil(t, result.HolderStats)
	assert.Empty(t, result.ChainDistribution)
	assert.Zero(t, result.PumpSignals)
	assert.Equal(t, fixedNow, result.GeneratedAt)
}

func TestAnalyze_PumpScenario(t *testing.T) {
	e := newTestEngine()
	input := raws(t, `{"pairAddress":"0x1","baseToken":{"symbol":"PUMP"},"chainId":"bsc",
		"priceChange":{"h24":"0.20"},"volume":{"h24":"50000"},"txns":{"h24":{"buys":80,"sells":30}}}`)

	result := e.Analyze(input, 10000)

	assert.Equal(t, 1, result.TotalPairs)
	assert.Equal(t, 1, result.PumpSignals)
	assert.Zero(t, result.DumpWarnings)
	require.NotNil(t, result.HighestVolume)
	assert.Equal(t, "PUMP", result.HighestVolume.Symbol)
	assert.Equal(t, 50000.0, result.HighestVolume.Volume)
	assert.Equal(t, "bsc", result.HighestVolume.Chain)
}

func TestAnalyze_BadRecordIsIsolated(t *testing.T) {
	var warnings []string
	e := newTestEngine(WithWarn(func(format string, v ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, v...))
	}))

	input := raws(t,
		pairJSON("AAA", "ethereum", 20000, 0.01, 1, 1, 10),
		`{"pairAddress":"0xbad","priceUsd":"not_a_number","volume":{"h24":"90000"}}`,
		pairJSON("CCC", "bsc", 30000, -0.01, 1, 1, 20),
	)

	result := e.Analyze(input, 10000)

	assert.Equal(t, 2, result.TotalPairs)
	require.NotNil(t, result.HighestVolume)
	assert.Equal(t, "CCC", result.HighestVolume.Symbol)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "priceUsd")
}

func TestAnalyze_Statistics(t *testing.T) {
	e := newTestEngine()
	input := raws(t,
		pairJSON("A", "ethereum", 50000, 0.30, 100, 50, 500),
		pairJSON("B", "ethereum", 50000, -0.20, 40, 20, 0),
		pairJSON("C", "bsc", 20000, 0.05, 1, 1, 150),
		pairJSON("D", "", 15000, 0, 0, 0, 500),
		pairJSON("E", "solana", 100, 0.90, 500, 500, 9000),
	)

	result := e.Analyze(input, 10000)

	assert.Equal(t, 4, result.TotalPairs)

	// первый максимум выигрывает
	require.NotNil(t, result.HighestVolume)
	assert.Equal(t, "A", result.HighestVolume.Symbol)
	require.NotNil(t, result.MostHolders)
	assert.Equal(t, "A", result.MostHolders.Symbol)
	assert.Equal(t, int64(500), result.MostHolders.Holders)

	pm := result.PriceMovements
	require.NotNil(t, pm)
	assert.InDelta(t, 0.0375, pm.AverageChange, 1e-9)
	assert.Equal(t, 2, pm.PositiveMovers)
	assert.Equal(t, 1, pm.NegativeMovers)
	assert.Equal(t, 0.30, pm.TopGainer)
	assert.Equal(t, -0.20, pm.TopLoser)

	hs := result.HolderStats
	require.NotNil(t, hs)
	assert.InDelta(t, 287.5, hs.AverageHolders, 1e-9)
	assert.Equal(t, 325.0, hs.MedianHolders)
	assert.Equal(t, 3, hs.TokensWithHolders)

	assert.Equal(t, map[string]int{"ethereum": 2, "bsc": 1, "": 1}, result.ChainDistribution)

	assert.Equal(t, 1, result.PumpSignals)
	assert.Equal(t, 1, result.DumpWarnings)
	assert.Equal(t, 2, result.GrowingHolders)
}

func TestAnalyze_MostHoldersIgnoresZero(t *testing.T) {
	e := newTestEngine()
	result := e.Analyze(raws(t, pairJSON("A", "bsc", 50000, 0, 0, 0, 0)), 0)

	assert.Nil(t, result.MostHolders)
	require.NotNil(t, result.HolderStats)
	assert.Zero(t, result.HolderStats.TokensWithHolders)
}

func TestAnalyze_DistributionSumsToTotal(t *testing.T) {
	e := newTestEngine()
	input := raws(t,
		pairJSON("A", "ethereum", 50000, 0, 0, 0, 0),
		pairJSON("B", "", 40000, 0, 0, 0, 0),
		pairJSON("C", "bsc", 30000, 0, 0, 0, 0),
		pairJSON("D", "bsc", 10, 0, 0, 0, 0),
	)

	for _, floor := range []float64{0, 20, 35000, 1e9} {
		result := e.Analyze(input, floor)
		sum := 0
		for _, n := range result.ChainDistribution {
			sum += n
		}
		assert.Equal(t, result.TotalPairs, sum, "floor %v", floor)
	}
}

func TestAnalyze_FloorMonotonicity(t *testing.T) {
	e := newTestEngine()
	input := raws(t,
		pairJSON("A", "ethereum", 50000, 0, 0, 0, 0),
		pairJSON("B", "bsc", 9000, 0, 0, 0, 0),
		pairJSON("C", "bsc", 10000, 0, 0, 0, 0),
	)

	prev := len(input) + 1
	for _, floor := range []float64{0, 9000, 9001, 10000, 10001, 60000} {
		total := e.AnalyzeSnapshot(input, floor).TotalPairs
		assert.LessOrEqual(t, total, prev, "floor %v", floor)
		prev = total
	}
	assert.Equal(t, 1, e.AnalyzeSnapshot(input, 10001).TotalPairs)
	assert.Equal(t, 2, e.AnalyzeSnapshot(input, 10000).TotalPairs)
}

func TestAnalyze_IdempotentWithFixedClock(t *testing.T) {
	e := newTestEngine()
	input := raws(t,
		pairJSON("A", "ethereum", 50000, 0.30, 100, 50, 500),
		pairJSON("B", "bsc", 20000, -0.5, 40, 20, 0),
	)

	first := e.Analyze(input, 10000)
	second := e.Analyze(input, 10000)

	assert.Equal(t, first, second)
}

func TestAnalyze_NewTokenCount(t *testing.T) {
	e := newTestEngine()
	recent := fixedNow.Add(-2 * time.Hour)
	input := raws(t,
		fmt.Sprintf(`{"pairCreatedAt":%q,"volume":{"h24":1}}`, recent.Format(time.RFC3339)),
		fmt.Sprintf(`{"pairCreatedAt":%d}`, recent.UnixMilli()),
		fmt.Sprintf(`{"pairCreatedAt":%q}`, fixedNow.Add(-25*time.Hour).Format(time.RFC3339)),
		fmt.Sprintf(`{"pairCreatedAt":%q}`, fixedNow.Add(-24*time.Hour).Format(time.RFC3339)),
		`{"pairCreatedAt":"2024-03-10T11:00:00"}`,
		`{"pairCreatedAt":"2024-03-10T11:00+00:00"}`,
		`{"pairCreatedAt":"yesterday"}`,
		// новая, но с битой ценой: нормализация ее отбросит, счетчик - нет
		fmt.Sprintf(`{"pairCreatedAt":%q,"priceUsd":"bad"}`, recent.Format(time.RFC3339)),
		`"garbage"`,
	)

	result := e.Analyze(input, 1e9)

	assert.Equal(t, 4, result.NewTokensCount)
	assert.Zero(t, result.TotalPairs)
}

func TestAnalyze_HistoryIsBounded(t *testing.T) {
	tick := fixedNow
	e := NewEngine(analysis.DefaultThresholds(), 2, WithWarn(silent), WithClock(func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}))
	input := raws(t, pairJSON("A", "bsc", 50000, 0, 0, 0, 0))

	first := e.Analyze(input, 0)
	second := e.Analyze(input, 0)
	third := e.Analyze(input, 0)
	e.AnalyzeSnapshot(input, 0)

	all := e.History().All()
	require.Len(t, all, 2)
	assert.Equal(t, second.GeneratedAt, all[0].GeneratedAt)
	assert.Equal(t, third.GeneratedAt, all[1].GeneratedAt)
	assert.NotEqual(t, first.GeneratedAt, all[0].GeneratedAt)

	latest, ok := e.History().Latest()
	require.True(t, ok)
	assert.Equal(t, third.GeneratedAt, latest.GeneratedAt)
}

func TestHistory_DefaultsAndEmpty(t *testing.T) {
	h := NewHistory(0)
	assert.Equal(t, DefaultHistorySize, h.Capacity())

	_, ok := h.Latest()
	assert.False(t, ok)
	assert.Empty(t, h.All())
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 2.0, median([]int64{3, 1, 2}))
	assert.Equal(t, 2.5, median([]int64{4, 1, 3, 2}))
	assert.Equal(t, 7.0, median([]int64{7}))
}

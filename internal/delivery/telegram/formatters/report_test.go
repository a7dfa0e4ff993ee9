package formatters

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web3-token-analytics-bot/internal/delivery/telegram/formatters/recommendation"
	"web3-token-analytics-bot/internal/types/analysis"
)

func sampleResult() analysis.AnalysisResult {
	return analysis.AnalysisResult{
		TotalPairs:     3,
		NewTokensCount: 2,
		HighestVolume:  &analysis.VolumeLeader{Symbol: "PEPE", Volume: 1_250_000, Price: 0.001, Chain: "ethereum"},
		MostHolders:    &analysis.HolderLeader{Symbol: "DOGE", Holders: 12345, Price: 0.1, Chain: "bsc"},
		PriceMovements: &analysis.PriceMovements{AverageChange: 0.05, PositiveMovers: 2, NegativeMovers: 1, TopGainer: 0.3, TopLoser: -0.2},
		HolderStats:    &analysis.HolderStats{AverageHolders: 4200, MedianHolders: 300, TokensWithHolders: 2},
		ChainDistribution: map[string]int{
			"ethereum": 1,
			"bsc":      1,
			"":         1,
		},
		PumpSignals:    1,
		DumpWarnings:   0,
		GrowingHolders: 1,
		GeneratedAt:    time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name   string
		result analysis.AnalysisResult
		want   string
	}{
		{"nothing", analysis.AnalysisResult{}, "Market appears stable"},
		{"new only", analysis.AnalysisResult{NewTokensCount: 4}, "🆕 4 new tokens launched"},
		{
			"all clauses in order",
			analysis.AnalysisResult{NewTokensCount: 1, PumpSignals: 2, DumpWarnings: 3},
			"🆕 1 new tokens launched. 🚀 2 potential pump signals. ⚠️  3 dump warnings",
		},
		{"dump only", analysis.AnalysisResult{DumpWarnings: 1}, "⚠️  1 dump warnings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(tt.result))
		})
	}
}

func TestReportFormatter_Format(t *testing.T) {
	f := NewReportFormatter(analysis.DefaultThresholds())

	report := f.Format(sampleResult())

	assert.Equal(t, "🆕 2 new tokens launched. 🚀 1 potential pump signals", report.Summary)
	assert.Equal(t, []string{recommendation.NormalConditions}, report.Recommendations)

	text := report.Text
	assert.True(t, strings.HasPrefix(text, "🚀 *Web3 Token Analysis Report*"))
	assert.Contains(t, text, "🆕 *New Tokens (24h):* 2")
	assert.Contains(t, text, "📈 *Active Pairs Analyzed:* 3")
	assert.Contains(t, text, "• Highest Volume: $1.25M (PEPE)")
	assert.Contains(t, text, "• Most Holders: 12,345 (DOGE)")
	assert.Contains(t, text, "🚀 Pump Signals: 1")
	assert.Contains(t, text, "⚠️  Dump Warnings: 0")
	assert.Contains(t, text, "📈 Holder Growth: 1")
	assert.Contains(t, text, "• ethereum: 1")
	assert.Contains(t, text, "• bsc: 1")
	assert.Contains(t, text, "• unknown: 1")
	assert.Contains(t, text, "Market conditions appear normal")
	assert.True(t, strings.HasSuffix(text, "*Last Updated:* 2024-03-10 12:00:00 UTC"))
}

func TestReportFormatter_EmptyResult(t *testing.T) {
	report := NewReportFormatter(analysis.DefaultThresholds()).Format(analysis.AnalysisResult{})

	assert.Equal(t, StableSummary, report.Summary)
	require.Len(t, report.Recommendations, 1)
	assert.Contains(t, report.Text, "• Highest Volume: $0 (N/A)")
	assert.Contains(t, report.Text, "• Most Holders: 0 (N/A)")
	assert.Contains(t, report.Text, "*Last Updated:* N/A")
	assert.NotContains(t, report.Text, "Price Movements")
}

func TestReportFormatter_ChainOrder(t *testing.T) {
	f := NewReportFormatter(analysis.DefaultThresholds())
	lines := f.chainLines(map[string]int{"solana": 1, "bsc": 5, "base": 1})

	assert.Equal(t, []string{"• bsc: 5", "• base: 1", "• solana: 1"}, lines)
}

func TestReportFormatter_WindowLabel(t *testing.T) {
	th := analysis.DefaultThresholds()
	th.NewTokenWindow = 6 * time.Hour

	report := NewReportFormatter(th).Format(sampleResult())

	assert.Contains(t, report.Text, "🆕 *New Tokens (6h):* 2")
}

func TestNumberFormatter(t *testing.T) {
	f := NewNumberFormatter()

	assert.Equal(t, "0", f.FormatDollarValue(0))
	assert.Equal(t, "0.50", f.FormatDollarValue(0.5))
	assert.Equal(t, "999", f.FormatDollarValue(999))
	assert.Equal(t, "5.0K", f.FormatDollarValue(5000))
	assert.Equal(t, "50K", f.FormatDollarValue(50000))
	assert.Equal(t, "1.25M", f.FormatDollarValue(1_250_000))
	assert.Equal(t, "25.0M", f.FormatDollarValue(25_000_000))
	assert.Equal(t, "3.00B", f.FormatDollarValue(3_000_000_000))

	assert.Equal(t, "0", f.FormatCount(0))
	assert.Equal(t, "999", f.FormatCount(999))
	assert.Equal(t, "1,000", f.FormatCount(1000))
	assert.Equal(t, "1,234,567", f.FormatCount(1234567))
	assert.Equal(t, "-12,345", f.FormatCount(-12345))

	assert.Equal(t, "+0.20", f.FormatChange(0.2))
	assert.Equal(t, "-1.50", f.FormatChange(-1.5))
}

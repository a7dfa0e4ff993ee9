// internal/delivery/telegram/formatters/report.go
package formatters

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"web3-token-analytics-bot/internal/delivery/telegram/formatters/recommendation"
	"web3-token-analytics-bot/internal/types/analysis"
)

// Report - готовый к отправке отчет
type Report struct {
	Summary         string
	Recommendations []string
	Text            string
}

// ReportFormatter превращает AnalysisResult в Markdown сообщение для Telegram
type ReportFormatter struct {
	numbers   *NumberFormatter
	advisor   *recommendation.Advisor
	recFormat *recommendation.Formatter
	window    time.Duration
}

// NewReportFormatter создает форматтер отчета
func NewReportFormatter(th analysis.Thresholds) *ReportFormatter {
	return &ReportFormatter{
		numbers:   NewNumberFormatter(),
		advisor:   recommendation.NewAdvisor(th),
		recFormat: recommendation.NewFormatter(),
		window:    th.NewTokenWindow,
	}
}

// Format строит сводку, рекомендации и полный текст
func (f *ReportFormatter) Format(result analysis.AnalysisResult) Report {
	report := Report{
		Summary:         Summary(result),
		Recommendations: f.advisor.Recommend(result),
	}
	report.Text = f.render(result, report)
	return report
}

func (f *ReportFormatter) render(result analysis.AnalysisResult, report Report) string {
	var b strings.Builder

	b.WriteString("🚀 *Web3 Token Analysis Report*\n\n")
	b.WriteString(fmt.Sprintf("🆕 *New Tokens (%s):* %d\n", f.windowLabel(), result.NewTokensCount))
	b.WriteString(fmt.Sprintf("📈 *Active Pairs Analyzed:* %d\n\n", result.TotalPairs))

	b.WriteString("🏆 *Top Performers:*\n")
	b.WriteString(fmt.Sprintf("• Highest Volume: %s\n", f.volumeLeader(result.HighestVolume)))
	b.WriteString(fmt.Sprintf("• Most Holders: %s\n\n", f.holderLeader(result.MostHolders)))

	b.WriteString("📊 *Market Signals:*\n")
	b.WriteString(fmt.Sprintf("🚀 Pump Signals: %d\n", result.PumpSignals))
	b.WriteString(fmt.Sprintf("⚠️  Dump Warnings: %d\n", result.DumpWarnings))
	b.WriteString(fmt.Sprintf("📈 Holder Growth: %d\n\n", result.GrowingHolders))

	if pm := result.PriceMovements; pm != nil {
		b.WriteString("💹 *Price Movements (24h):*\n")
		b.WriteString(fmt.Sprintf("• Average Change: %s\n", f.numbers.FormatChange(pm.AverageChange)))
		b.WriteString(fmt.Sprintf("• Up / Down: %d / %d\n", pm.PositiveMovers, pm.NegativeMovers))
		b.WriteString(fmt.Sprintf("• Best / Worst: %s / %s\n\n",
			f.numbers.FormatChange(pm.TopGainer), f.numbers.FormatChange(pm.TopLoser)))
	}

	if hs := result.HolderStats; hs != nil {
		b.WriteString("👥 *Holders:*\n")
		b.WriteString(fmt.Sprintf("• Average: %.0f | Median: %.0f\n", hs.AverageHolders, hs.MedianHolders))
		b.WriteString(fmt.Sprintf("• Tokens with holders: %d\n\n", hs.TokensWithHolders))
	}

	b.WriteString("🔗 *Chain Distribution:*\n")
	if lines := f.chainLines(result.ChainDistribution); len(lines) > 0 {
		b.WriteString(strings.Join(lines, "\n"))
	} else {
		b.WriteString("• N/A")
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("📝 *Summary:* %s\n\n", report.Summary))
	b.WriteString("💡 *Recommendations:*\n")
	b.WriteString(f.recFormat.FormatList(report.Recommendations))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("*Last Updated:* %s", f.timestamp(result.GeneratedAt)))

	return b.String()
}

func (f *ReportFormatter) windowLabel() string {
	if f.window <= 0 {
		return "24h"
	}
	return fmt.Sprintf("%dh", int(f.window.Hours()))
}

func (f *ReportFormatter) volumeLeader(leader *analysis.VolumeLeader) string {
	if leader == nil {
		return "$0 (N/A)"
	}
	return fmt.Sprintf("$%s (%s)", f.numbers.FormatDollarValue(leader.Volume), symbolOrNA(leader.Symbol))
}

func (f *ReportFormatter) holderLeader(leader *analysis.HolderLeader) string {
	if leader == nil {
		return "0 (N/A)"
	}
	return fmt.Sprintf("%s (%s)", f.numbers.FormatCount(leader.Holders), symbolOrNA(leader.Symbol))
}

// chainLines - по строке на сеть, крупные сети первыми
func (f *ReportFormatter) chainLines(dist map[string]int) []string {
	chains := make([]string, 0, len(dist))
	for chain := range dist {
		chains = append(chains, chain)
	}
	sort.Slice(chains, func(i, j int) bool {
		if dist[chains[i]] != dist[chains[j]] {
			return dist[chains[i]] > dist[chains[j]]
		}
		return chains[i] < chains[j]
	})

	lines := make([]string, 0, len(chains))
	for _, chain := range chains {
		name := chain
		if name == "" {
			name = "unknown"
		}
		lines = append(lines, fmt.Sprintf("• %s: %d", name, dist[chain]))
	}
	return lines
}

func (f *ReportFormatter) timestamp(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}

func symbolOrNA(symbol string) string {
	if symbol == "" {
		return "N/A"
	}
	return symbol
}

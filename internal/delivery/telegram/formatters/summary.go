// internal/delivery/telegram/formatters/summary.go
package formatters

import (
	"fmt"
	"strings"

	"web3-token-analytics-bot/internal/types/analysis"
)

// StableSummary - сводка, когда сигналов нет
const StableSummary = "Market appears stable"

// Summary собирает однострочную сводку по счетчикам
func Summary(result analysis.AnalysisResult) string {
	var parts []string

	if result.NewTokensCount > 0 {
		parts = append(parts, fmt.Sprintf("🆕 %d new tokens launched", result.NewTokensCount))
	}
	if result.PumpSignals > 0 {
		parts = append(parts, fmt.Sprintf("🚀 %d potential pump signals", result.PumpSignals))
	}
	if result.DumpWarnings > 0 {
		parts = append(parts, fmt.Sprintf("⚠️  %d dump warnings", result.DumpWarnings))
	}

	if len(parts) == 0 {
		return StableSummary
	}
	return strings.Join(parts, ". ")
}

// internal/delivery/telegram/formatters/stats.go
package formatters

import (
	"fmt"
	"strings"

	"web3-token-analytics-bot/internal/infrastructure/persistence/postgres/models"
	"web3-token-analytics-bot/internal/types/analysis"
	"web3-token-analytics-bot/pkg/utils"
)

// FormatStats - короткая сводка последнего результата для команды /stats.
// previous, если есть, дает строку изменения числа пар.
func (f *ReportFormatter) FormatStats(result analysis.AnalysisResult, previous *analysis.AnalysisResult) string {
	var b strings.Builder

	b.WriteString("📊 *Current Market Stats*\n\n")
	b.WriteString(fmt.Sprintf("• New tokens (%s): %d\n", f.windowLabel(), result.NewTokensCount))
	b.WriteString(fmt.Sprintf("• Active pairs: %s\n", f.numbers.FormatCount(int64(result.TotalPairs))))
	b.WriteString(fmt.Sprintf("• Top volume: %s\n", f.volumeLeader(result.HighestVolume)))
	b.WriteString(fmt.Sprintf("• Pump signals: %d\n", result.PumpSignals))
	b.WriteString(fmt.Sprintf("• Dump warnings: %d\n", result.DumpWarnings))
	b.WriteString(fmt.Sprintf("• Holder growth: %d\n", result.GrowingHolders))
	if previous != nil {
		change := utils.PercentageChange(float64(previous.TotalPairs), float64(result.TotalPairs))
		b.WriteString(fmt.Sprintf("• Pairs vs previous run: %s\n", utils.FormatPercent(change)))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("*Generated:* %s", f.timestamp(result.GeneratedAt)))

	return b.String()
}

// FormatDeliveries - блок последних доставок из журнала; пустая строка, если записей нет
func (f *ReportFormatter) FormatDeliveries(deliveries []models.Delivery) string {
	if len(deliveries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("📬 *Recent deliveries:*")
	for _, d := range deliveries {
		icon := "✅"
		if d.Status != models.DeliveryStatusSent {
			icon = "❌"
		}
		b.WriteString(fmt.Sprintf("\n%s %s: %s (%s)", icon, d.Channel, d.Status, f.timestamp(d.CreatedAt)))
	}
	return b.String()
}

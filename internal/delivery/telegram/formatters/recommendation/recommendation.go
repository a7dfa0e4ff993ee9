// internal/delivery/telegram/formatters/recommendation/recommendation.go
package recommendation

import (
	"web3-token-analytics-bot/internal/types/analysis"
)

// Тексты рекомендаций
const (
	HighPumpActivity   = "High pump activity detected - consider careful monitoring"
	MultipleDumps      = "Multiple dump warnings - exercise caution with new positions"
	StrongHolderGrowth = "Strong holder growth observed in multiple tokens"
	NormalConditions   = "Market conditions appear normal"
)

// Advisor выдает рекомендации по счетчикам сигналов
type Advisor struct {
	pumpAlert         int
	dumpAlert         int
	holderGrowthAlert int
}

// NewAdvisor создает советника с порогами срабатывания
func NewAdvisor(th analysis.Thresholds) *Advisor {
	return &Advisor{
		pumpAlert:         th.PumpAlertCount,
		dumpAlert:         th.DumpAlertCount,
		holderGrowthAlert: th.HolderGrowthAlertCount,
	}
}

// Recommend - список рекомендаций, никогда не пустой
func (a *Advisor) Recommend(result analysis.AnalysisResult) []string {
	var recs []string

	if result.PumpSignals > a.pumpAlert {
		recs = append(recs, HighPumpActivity)
	}
	if result.DumpWarnings > a.dumpAlert {
		recs = append(recs, MultipleDumps)
	}
	if result.GrowingHolders > a.holderGrowthAlert {
		recs = append(recs, StrongHolderGrowth)
	}

	if len(recs) == 0 {
		return []string{NormalConditions}
	}
	return recs
}

// internal/types/analysis/result.go
package analysis

import "time"

// VolumeLeader - пара с максимальным объемом за 24ч
type VolumeLeader struct {
	Symbol string  `json:"symbol"`
	Volume float64 `json:"volume"`
	Price  float64 `json:"price"`
	Chain  string  `json:"chain"`
}

// HolderLeader - пара с наибольшим числом холдеров
type HolderLeader struct {
	Symbol  string  `json:"symbol"`
	Holders int64   `json:"holders"`
	Price   float64 `json:"price"`
	Chain   string  `json:"chain"`
}

// PriceMovements - статистика изменения цены за 24ч
type PriceMovements struct {
	AverageChange  float64 `json:"average_change"`
	PositiveMovers int     `json:"positive_movers"`
	NegativeMovers int     `json:"negative_movers"`
	TopGainer      float64 `json:"top_gainer"`
	TopLoser       float64 `json:"top_loser"`
}

// HolderStats - статистика по холдерам
type HolderStats struct {
	AverageHolders    float64 `json:"average_holders"`
	MedianHolders     float64 `json:"median_holders"`
	TokensWithHolders int     `json:"tokens_with_holders"`
}

// AnalysisResult - снимок анализа. После создания не изменяется.
// Nil-указатели означают пустой результат соответствующего блока.
type AnalysisResult struct {
	TotalPairs        int             `json:"total_pairs"`
	NewTokensCount    int             `json:"new_tokens_count"`
	HighestVolume     *VolumeLeader   `json:"highest_volume,omitempty"`
	MostHolders       *HolderLeader   `json:"most_holders,omitempty"`
	PriceMovements    *PriceMovements `json:"price_movements,omitempty"`
	HolderStats       *HolderStats    `json:"holder_growth,omitempty"`
	ChainDistribution map[string]int  `json:"chain_distribution,omitempty"`
	PumpSignals       int             `json:"pump_signals"`
	DumpWarnings      int             `json:"dump_warnings"`
	GrowingHolders    int             `json:"growing_holders"`
	GeneratedAt       time.Time       `json:"timestamp"`
}

// IsEmpty - результат для пустого входа
func (r AnalysisResult) IsEmpty() bool {
	return r.GeneratedAt.IsZero()
}

// internal/analysis/engine/stats.go
package engine

import (
	"sort"
	"time"

	"web3-token-analytics-bot/internal/types/analysis"
	"web3-token-analytics-bot/internal/types/dexscreener"
)

// countNewTokens считает пары младше окна. Неразобранная дата - не новая.
func countNewTokens(raws []dexscreener.RawPair, now time.Time, window time.Duration) int {
	count := 0
	for _, raw := range raws {
		if raw.ShapeErr() != nil {
			continue
		}
		created, err := raw.CreatedTime()
		if err != nil {
			continue
		}
		if now.Sub(created) < window {
			count++
		}
	}
	return count
}

// highestVolume - первая пара с максимальным объемом
func highestVolume(records []analysis.PairRecord) *analysis.VolumeLeader {
	if len(records) == 0 {
		return nil
	}

	best := 0
	for i := 1; i < len(records); i++ {
		if records[i].VolumeH24 > records[best].VolumeH24 {
			best = i
		}
	}

	rec := records[best]
	return &analysis.VolumeLeader{
		Symbol: rec.BaseSymbol,
		Volume: rec.VolumeH24,
		Price:  rec.PriceUSD,
		Chain:  rec.ChainID,
	}
}

// mostHolders - первая пара с максимумом холдеров среди пар с холдерами
func mostHolders(records []analysis.PairRecord) *analysis.HolderLeader {
	best := -1
	for i, rec := range records {
		if rec.Holders <= 0 {
			continue
		}
		if best < 0 || rec.Holders > records[best].Holders {
			best = i
		}
	}
	if best < 0 {
		return nil
	}

	rec := records[best]
	return &analysis.HolderLeader{
		Symbol:  rec.BaseSymbol,
		Holders: rec.Holders,
		Price:   rec.PriceUSD,
		Chain:   rec.ChainID,
	}
}

func priceMovements(records []analysis.PairRecord) *analysis.PriceMovements {
	if len(records) == 0 {
		return nil
	}

	pm := &analysis.PriceMovements{
		TopGainer: records[0].PriceChangeH24,
		TopLoser:  records[0].PriceChangeH24,
	}
	sum := 0.0
	for _, rec := range records {
		change := rec.PriceChangeH24
		sum += change
		switch {
		case change > 0:
			pm.PositiveMovers++
		case change < 0:
			pm.NegativeMovers++
		}
		if change > pm.TopGainer {
			pm.TopGainer = change
		}
		if change < pm.TopLoser {
			pm.TopLoser = change
		}
	}
	pm.AverageChange = sum / float64(len(records))
	return pm
}

func holderStats(records []analysis.PairRecord) *analysis.HolderStats {
	if len(records) == 0 {
		return nil
	}

	values := make([]int64, len(records))
	stats := &analysis.HolderStats{}
	var sum float64
	for i, rec := range records {
		values[i] = rec.Holders
		sum += float64(rec.Holders)
		if rec.Holders > 0 {
			stats.TokensWithHolders++
		}
	}
	stats.AverageHolders = sum / float64(len(records))
	stats.MedianHolders = median(values)
	return stats
}

func median(values []int64) float64 {
	sorted := append([]int64(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return (float64(sorted[mid-1]) + float64(sorted[mid])) / 2
}

// chainDistribution считает пары по сетям; пустой chainId учитывается под ""
func chainDistribution(records []analysis.PairRecord) map[string]int {
	if len(records) == 0 {
		return nil
	}
	dist := make(map[string]int)
	for _, rec := range records {
		dist[rec.ChainID]++
	}
	return dist
}

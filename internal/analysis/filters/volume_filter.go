// internal/analysis/filters/volume_filter.go
package filters

import (
	"sync"

	"web3-token-analytics-bot/internal/types/analysis"
)

// FilterStats - статистика фильтра
type FilterStats struct {
	TotalProcessed int64 `json:"total_processed"`
	PassedThrough  int64 `json:"passed_through"`
	FilteredOut    int64 `json:"filtered_out"`
}

// VolumeFilter - нижняя граница объема за 24ч (включительно)
type VolumeFilter struct {
	MinVolume float64
	stats     FilterStats
	mu        sync.RWMutex
}

// NewVolumeFilter создает новый VolumeFilter
func NewVolumeFilter(minVolume float64) *VolumeFilter {
	return &VolumeFilter{MinVolume: minVolume}
}

func (f *VolumeFilter) Name() string {
	return "volume_filter"
}

// Apply - пропускает ли фильтр запись
func (f *VolumeFilter) Apply(rec analysis.PairRecord) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stats.TotalProcessed++

	if rec.VolumeH24 < f.MinVolume {
		f.stats.FilteredOut++
		return false
	}

	f.stats.PassedThrough++
	return true
}

// Filter возвращает прошедшие записи в исходном порядке
func (f *VolumeFilter) Filter(records []analysis.PairRecord) []analysis.PairRecord {
	kept := make([]analysis.PairRecord, 0, len(records))
	for _, rec := range records {
		if f.Apply(rec) {
			kept = append(kept, rec)
		}
	}
	return kept
}

func (f *VolumeFilter) GetStats() FilterStats {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.stats
}

// internal/analysis/analyzers/detectors.go
package analyzers

import (
	"sync"

	"web3-token-analytics-bot/internal/types/analysis"
)

// Имена детекторов
const (
	PumpDetectorName         = "pump_detector"
	DumpDetectorName         = "dump_detector"
	HolderGrowthDetectorName = "holder_growth_detector"
)

// Detector - правило, помечающее отдельную пару
type Detector interface {
	Name() string
	Detect(rec analysis.PairRecord) bool
	GetStats() DetectorStats
}

// DetectorStats - статистика детектора
type DetectorStats struct {
	TotalChecked int64 `json:"total_checked"`
	Matched      int64 `json:"matched"`
}

// counter - общий учет статистики для детекторов
type counter struct {
	stats DetectorStats
	mu    sync.RWMutex
}

func (c *counter) record(matched bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.TotalChecked++
	if matched {
		c.stats.Matched++
	}
	return matched
}

func (c *counter) GetStats() DetectorStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// PumpDetector - резкий рост цены на объеме и активной торговле
type PumpDetector struct {
	counter
	threshold float64
	minVolume float64
	minTxns   int64
}

// NewPumpDetector создает детектор pump
func NewPumpDetector(th analysis.Thresholds) *PumpDetector {
	return &PumpDetector{threshold: th.Pump, minVolume: th.MinVolume, minTxns: th.PumpMinTxns}
}

func (d *PumpDetector) Name() string { return PumpDetectorName }

func (d *PumpDetector) Detect(rec analysis.PairRecord) bool {
	return d.record(rec.PriceChangeH24 > d.threshold &&
		rec.VolumeH24 > d.minVolume &&
		rec.TxnsH24 > d.minTxns)
}

// DumpDetector - резкое падение цены
type DumpDetector struct {
	counter
	threshold float64
	minVolume float64
	minTxns   int64
}

// NewDumpDetector создает детектор dump
func NewDumpDetector(th analysis.Thresholds) *DumpDetector {
	return &DumpDetector{threshold: th.Dump, minVolume: th.MinVolume, minTxns: th.DumpMinTxns}
}

func (d *DumpDetector) Name() string { return DumpDetectorName }

func (d *DumpDetector) Detect(rec analysis.PairRecord) bool {
	return d.record(rec.PriceChangeH24 < d.threshold &&
		rec.VolumeH24 > d.minVolume &&
		rec.TxnsH24 > d.minTxns)
}

// HolderGrowthDetector - растущая цена при заметной базе холдеров
type HolderGrowthDetector struct {
	counter
	minVolume  float64
	minHolders int64
}

// NewHolderGrowthDetector создает детектор роста холдеров
func NewHolderGrowthDetector(th analysis.Thresholds) *HolderGrowthDetector {
	return &HolderGrowthDetector{minVolume: th.MinVolume, minHolders: th.MinHolders}
}

func (d *HolderGrowthDetector) Name() string { return HolderGrowthDetectorName }

func (d *HolderGrowthDetector) Detect(rec analysis.PairRecord) bool {
	return d.record(rec.PriceChangeH24 > 0 &&
		rec.VolumeH24 > d.minVolume &&
		rec.Holders > d.minHolders)
}

// NewDefaultDetectors - pump, dump и рост холдеров в этом порядке
func NewDefaultDetectors(th analysis.Thresholds) []Detector {
	return []Detector{
		NewPumpDetector(th),
		NewDumpDetector(th),
		NewHolderGrowthDetector(th),
	}
}

// CountMatches считает срабатывания каждого детектора по набору записей
func CountMatches(detectors []Detector, records []analysis.PairRecord) map[string]int {
	counts := make(map[string]int, len(detectors))
	for _, d := range detectors {
		counts[d.Name()] = 0
	}
	for _, rec := range records {
		for _, d := range detectors {
			if d.Detect(rec) {
				counts[d.Name()]++
			}
		}
	}
	return counts
}

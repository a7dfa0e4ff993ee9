// internal/types/analysis/thresholds.go
package analysis

import "time"

// Thresholds - пороги сигналов и рекомендаций.
// Собирается один раз из конфигурации и передается в конструкторы.
type Thresholds struct {
	MinVolume      float64       // объем для детекторов (строгое сравнение)
	MinHolders     int64         // холдеры для "растущих холдеров"
	Pump           float64       // изменение цены для pump
	Dump           float64       // изменение цены для dump
	PumpMinTxns    int64         // сделок за 24ч для pump (строго больше)
	DumpMinTxns    int64         // сделок за 24ч для dump (строго больше)
	NewTokenWindow time.Duration // возраст пары, при котором она считается новой

	PumpAlertCount         int
	DumpAlertCount         int
	HolderGrowthAlertCount int
}

// DefaultThresholds - значения по умолчанию
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinVolume:              10000,
		MinHolders:             100,
		Pump:                   0.15,
		Dump:                   -0.10,
		PumpMinTxns:            100,
		DumpMinTxns:            50,
		NewTokenWindow:         24 * time.Hour,
		PumpAlertCount:         3,
		DumpAlertCount:         5,
		HolderGrowthAlertCount: 10,
	}
}

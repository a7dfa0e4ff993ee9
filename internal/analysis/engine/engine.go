// internal/analysis/engine/engine.go
package engine

import (
	"time"

	"web3-token-analytics-bot/internal/analysis/analyzers"
	"web3-token-analytics-bot/internal/analysis/filters"
	"web3-token-analytics-bot/internal/analysis/normalizer"
	"web3-token-analytics-bot/internal/types/analysis"
	"web3-token-analytics-bot/internal/types/dexscreener"
	"web3-token-analytics-bot/pkg/logger"
)

// Engine - синхронный движок сигналов по пачке пар.
// Единственное разделяемое состояние - история результатов.
type Engine struct {
	thresholds analysis.Thresholds
	history    *History
	now        func() time.Time
	warn       normalizer.WarnFunc
}

// Option - настройка движка
type Option func(*Engine)

// WithClock подменяет часы (для тестов)
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithWarn задает приемник предупреждений о пропущенных записях
func WithWarn(warn normalizer.WarnFunc) Option {
	return func(e *Engine) {
		e.warn = warn
	}
}

// NewEngine создает движок
func NewEngine(th analysis.Thresholds, historySize int, opts ...Option) *Engine {
	e := &Engine{
		thresholds: th,
		history:    NewHistory(historySize),
		now:        time.Now,
		warn:       logger.Warn,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Thresholds - пороги движка
func (e *Engine) Thresholds() analysis.Thresholds {
	return e.thresholds
}

// History - история результатов
func (e *Engine) History() *History {
	return e.history
}

// Analyze строит результат и добавляет его в историю.
// Пустой вход дает нулевой результат и историю не меняет.
func (e *Engine) Analyze(raws []dexscreener.RawPair, minVolume float64) analysis.AnalysisResult {
	result := e.AnalyzeSnapshot(raws, minVolume)
	if !result.IsEmpty() {
		e.history.Append(result)
	}
	return result
}

// AnalyzeSnapshot - то же, что Analyze, но без записи в историю
func (e *Engine) AnalyzeSnapshot(raws []dexscreener.RawPair, minVolume float64) analysis.AnalysisResult {
	if len(raws) == 0 {
		return analysis.AnalysisResult{}
	}

	now := e.now()
	records, dropped := normalizer.NormalizeAll(raws, e.warn)
	if dropped > 0 {
		logger.Debug("🔍 Нормализация: %d из %d пар пропущено", dropped, len(raws))
	}

	filtered := filters.NewVolumeFilter(minVolume).Filter(records)
	counts := analyzers.CountMatches(analyzers.NewDefaultDetectors(e.thresholds), filtered)

	return analysis.AnalysisResult{
		TotalPairs:        len(filtered),
		NewTokensCount:    countNewTokens(raws, now, e.thresholds.NewTokenWindow),
		HighestVolume:     highestVolume(filtered),
		MostHolders:       mostHolders(filtered),
		PriceMovements:    priceMovements(filtered),
		HolderStats:       holderStats(filtered),
		ChainDistribution: chainDistribution(filtered),
		PumpSignals:       counts[analyzers.PumpDetectorName],
		DumpWarnings:      counts[analyzers.DumpDetectorName],
		GrowingHolders:    counts[analyzers.HolderGrowthDetectorName],
		GeneratedAt:       now,
	}
}

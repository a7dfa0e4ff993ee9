// application/pipeline/analysis_pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"web3-token-analytics-bot/internal/analysis/engine"
	"web3-token-analytics-bot/internal/delivery/telegram/formatters"
	"web3-token-analytics-bot/internal/types/analysis"
	"web3-token-analytics-bot/pkg/logger"
	"web3-token-analytics-bot/pkg/utils"
)

const (
	// failureNoticeTimeout - время на сообщение об ошибке, даже если ctx запуска уже отменен
	failureNoticeTimeout = 10 * time.Second
	// statsDeliveries - сколько записей журнала показывает /stats
	statsDeliveries = 3
)

// ErrNoPairs - источник не вернул ни одной пары
var ErrNoPairs = errors.New("no pairs found")

// AnalysisPipeline: источник пар -> движок -> форматтер -> доставка
type AnalysisPipeline struct {
	source    PairSource
	engine    *engine.Engine
	formatter *formatters.ReportFormatter
	sender    Sender
	log       DeliveryLog

	defaultHours     int
	defaultMinVolume float64

	mu    sync.RWMutex
	stats PipelineStats
}

// NewAnalysisPipeline создает пайплайн. hours и minVolume используются командой /analyze.
func NewAnalysisPipeline(source PairSource, eng *engine.Engine, formatter *formatters.ReportFormatter,
	sender Sender, hours int, minVolume float64) *AnalysisPipeline {
	return &AnalysisPipeline{
		source:           source,
		engine:           eng,
		formatter:        formatter,
		sender:           sender,
		defaultHours:     hours,
		defaultMinVolume: minVolume,
	}
}

// AnalyzeNewTokens выполняет один запуск и рассылает отчет.
// Нет пар: (nil, nil). Ошибка или паника: логируется, в чат уходит "❌ Analysis failed", ошибка возвращается.
func (p *AnalysisPipeline) AnalyzeNewTokens(ctx context.Context, hours int, minVolume float64) (result *analysis.AnalysisResult, err error) {
	runID := uuid.NewString()
	startTime := time.Now()
	p.begin(runID, startTime)

	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("panic: %v", r)
		}
		switch {
		case err != nil:
			p.fail(ctx, runID, err)
		case result == nil:
			p.finish(runID, startTime, true)
		default:
			p.finish(runID, startTime, false)
		}
	}()

	logger.Info("🔍 [%s] Анализ новых токенов за %d ч (мин. объем $%s)", shortID(runID), hours, utils.FormatNumber(minVolume, 0))

	res, report, err := p.analyze(ctx, hours, minVolume)
	if errors.Is(err, ErrNoPairs) {
		logger.Warn("⚠️ [%s] No pairs found in the specified timeframe", shortID(runID))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := p.sender.Send(ctx, report.Text); err != nil {
		logger.Error("❌ [%s] Отчет не доставлен: %v", shortID(runID), err)
	} else {
		logger.Info("📨 [%s] Отчет доставлен", shortID(runID))
	}

	logger.Info("✅ [%s] Анализ завершен за %s: пар %d, новых %d, pump %d, dump %d",
		shortID(runID), utils.FormatDuration(time.Since(startTime)), res.TotalPairs, res.NewTokensCount, res.PumpSignals, res.DumpWarnings)
	return &res, nil
}

// RunReport - анализ с параметрами по умолчанию без рассылки; для команды /analyze.
// Пустая строка без ошибки означает, что пар нет.
func (p *AnalysisPipeline) RunReport(ctx context.Context) (string, error) {
	_, report, err := p.analyze(ctx, p.defaultHours, p.defaultMinVolume)
	if errors.Is(err, ErrNoPairs) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return report.Text, nil
}

// SetDeliveryLog подключает журнал доставки к /stats
func (p *AnalysisPipeline) SetDeliveryLog(log DeliveryLog) {
	p.log = log
}

// LatestStats - сводка последнего результата из истории движка
// и, если подключен журнал, последние доставки
func (p *AnalysisPipeline) LatestStats(ctx context.Context) (string, bool) {
	results := p.engine.History().All()
	if len(results) == 0 {
		return "", false
	}

	var previous *analysis.AnalysisResult
	if len(results) > 1 {
		previous = &results[len(results)-2]
	}
	text := p.formatter.FormatStats(results[len(results)-1], previous)

	if p.log != nil {
		deliveries, err := p.log.Recent(ctx, statsDeliveries)
		if err != nil {
			logger.Warn("⚠️ Не удалось прочитать журнал доставки: %v", err)
		} else if block := p.formatter.FormatDeliveries(deliveries); block != "" {
			text += "\n\n" + block
		}
	}
	return text, true
}

func (p *AnalysisPipeline) analyze(ctx context.Context, hours int, minVolume float64) (analysis.AnalysisResult, formatters.Report, error) {
	pairs, err := p.source.GetRecentPairs(ctx, hours)
	if err != nil {
		return analysis.AnalysisResult{}, formatters.Report{}, fmt.Errorf("failed to fetch pairs: %w", err)
	}
	if len(pairs) == 0 {
		return analysis.AnalysisResult{}, formatters.Report{}, ErrNoPairs
	}

	result := p.engine.Analyze(pairs, minVolume)
	return result, p.formatter.Format(result), nil
}

func (p *AnalysisPipeline) begin(runID string, at time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stats.RunsStarted++
	p.stats.LastRunID = runID
	p.stats.LastRunAt = at
}

func (p *AnalysisPipeline) finish(runID string, startTime time.Time, empty bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if empty {
		p.stats.RunsEmpty++
	} else {
		p.stats.RunsSucceeded++
	}
	p.stats.LastError = ""

	done := p.stats.RunsSucceeded + p.stats.RunsEmpty
	p.stats.AverageTime = (p.stats.AverageTime*time.Duration(done-1) + time.Since(startTime)) / time.Duration(done)
}

// fail логирует ошибку запуска и пытается сообщить о ней в чат
func (p *AnalysisPipeline) fail(ctx context.Context, runID string, err error) {
	p.mu.Lock()
	p.stats.RunsFailed++
	p.stats.LastError = err.Error()
	p.mu.Unlock()

	logger.Error("❌ [%s] Error in analysis: %v", shortID(runID), err)

	noticeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), failureNoticeTimeout)
	defer cancel()
	if sendErr := p.sender.Send(noticeCtx, fmt.Sprintf("❌ Analysis failed: %v", err)); sendErr != nil {
		logger.Warn("⚠️ [%s] Не удалось отправить сообщение об ошибке: %v", shortID(runID), sendErr)
	}
}

// GetStats возвращает статистику
func (p *AnalysisPipeline) GetStats() PipelineStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stats
}

func shortID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}

// application/pipeline/types.go
package pipeline

import (
	"context"
	"time"

	"web3-token-analytics-bot/internal/infrastructure/persistence/postgres/models"
	"web3-token-analytics-bot/internal/types/dexscreener"
)

// PairSource - источник недавно созданных пар.
// Исчерпанные повторы дают пустой срез без ошибки.
type PairSource interface {
	GetRecentPairs(ctx context.Context, hours int) ([]dexscreener.RawPair, error)
}

// Sender - доставка готового отчета
type Sender interface {
	Send(ctx context.Context, text string) error
}

// DeliveryLog - журнал доставки, новые записи первыми
type DeliveryLog interface {
	Recent(ctx context.Context, limit int) ([]models.Delivery, error)
}

// PipelineStats статистика пайплайна
type PipelineStats struct {
	RunsStarted   int64         `json:"runs_started"`
	RunsSucceeded int64         `json:"runs_succeeded"`
	RunsEmpty     int64         `json:"runs_empty"`
	RunsFailed    int64         `json:"runs_failed"`
	AverageTime   time.Duration `json:"average_time"`
	LastRunID     string        `json:"last_run_id"`
	LastRunAt     time.Time     `json:"last_run_at"`
	LastError     string        `json:"last_error,omitempty"`
}

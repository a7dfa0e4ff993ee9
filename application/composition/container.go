// application/composition/container.go
package composition

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"web3-token-analytics-bot/application/pipeline"
	"web3-token-analytics-bot/internal/analysis/engine"
	"web3-token-analytics-bot/internal/config"
	"web3-token-analytics-bot/internal/delivery/telegram/formatters"
	"web3-token-analytics-bot/internal/infrastructure/api/dexscreener"
	"web3-token-analytics-bot/internal/infrastructure/cache"
	"web3-token-analytics-bot/internal/infrastructure/cache/memory"
	rediscache "web3-token-analytics-bot/internal/infrastructure/cache/redis"
	"web3-token-analytics-bot/internal/infrastructure/persistence/postgres"
	"web3-token-analytics-bot/internal/infrastructure/persistence/postgres/repository/delivery"
	"web3-token-analytics-bot/internal/notifier"
	"web3-token-analytics-bot/internal/telegram"
	"web3-token-analytics-bot/pkg/logger"
)

// Container - DI контейнер
type Container struct {
	Config *config.Config

	// Инфраструктура
	Cache        cache.Cache
	RedisService *rediscache.RedisService
	DB           *sqlx.DB
	Journal      *delivery.DeliveryRepository
	DexClient    *dexscreener.Client
	PairSource   *dexscreener.CachedSource

	// Анализ
	Engine    *engine.Engine
	Formatter *formatters.ReportFormatter

	// Доставка
	TelegramBot *telegram.TelegramBot
	Notifier    *notifier.CompositeNotificationService
	CommandBot  *telegram.CommandBot

	Pipeline *pipeline.AnalysisPipeline
}

// NewContainer создает и настраивает контейнер.
// Redis и PostgreSQL необязательны: при сбое подключения используются кэш в памяти и работа без журнала.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	c := &Container{Config: cfg}

	// 1. Кэш ответов DexScreener
	c.Cache = c.buildCache(ctx)

	// 2. Журнал доставки
	if cfg.Database.Enabled {
		db, err := postgres.Connect(ctx, cfg.Database)
		if err != nil {
			logger.Warn("⚠️ PostgreSQL недоступен, журнал доставки отключен: %v", err)
		} else {
			c.DB = db
			c.Journal = delivery.NewDeliveryRepository(db)
		}
	}

	// 3. Источник пар
	c.DexClient = dexscreener.NewClientFromConfig(cfg)
	c.PairSource = dexscreener.NewCachedSource(c.DexClient, c.Cache, cfg.CacheDuration)

	// 4. Движок и форматтер
	thresholds := cfg.Thresholds()
	c.Engine = engine.NewEngine(thresholds, cfg.HistorySize)
	c.Formatter = formatters.NewReportFormatter(thresholds)

	// 5. Каналы доставки
	c.Notifier = c.buildNotifier()

	c.Pipeline = pipeline.NewAnalysisPipeline(c.PairSource, c.Engine, c.Formatter, c.Notifier,
		cfg.TimeWindowHours, cfg.MinVolumeThreshold)
	if c.Journal != nil {
		c.Pipeline.SetDeliveryLog(c.Journal)
	}

	if c.TelegramBot != nil && cfg.TelegramCommandsEnabled {
		c.CommandBot = telegram.NewCommandBot(cfg, c.TelegramBot, c.Pipeline, c.Pipeline)
	}

	return c, nil
}

func (c *Container) buildCache(ctx context.Context) cache.Cache {
	if c.Config.Redis.Enabled {
		c.RedisService = rediscache.NewRedisService(c.Config.Redis)
		if err := c.RedisService.Start(ctx); err != nil {
			logger.Warn("⚠️ Redis недоступен, используем кэш в памяти: %v", err)
			c.RedisService = nil
		} else {
			return c.RedisService.GetCache()
		}
	}
	return memory.NewCache(c.Config.CacheDuration)
}

func (c *Container) buildNotifier() *notifier.CompositeNotificationService {
	var journal notifier.Journal
	if c.Journal != nil {
		journal = c.Journal
	}
	service := notifier.NewCompositeNotificationService(journal)

	c.TelegramBot = telegram.NewTelegramBot(c.Config)
	if tn := notifier.NewTelegramNotifier(c.TelegramBot); tn != nil {
		service.AddNotifier(tn)
	} else {
		logger.Info("🖥️ Telegram не настроен, отчеты выводятся в консоль")
		service.AddNotifier(notifier.NewConsoleNotifier(false))
	}
	return service
}

// Close освобождает соединения
func (c *Container) Close() {
	if c.RedisService != nil {
		if err := c.RedisService.Stop(); err != nil {
			logger.Warn("⚠️ Ошибка остановки Redis: %v", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Warn("⚠️ Ошибка закрытия PostgreSQL: %v", err)
		}
	}
}

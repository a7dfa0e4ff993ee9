// application/bootstrap/app.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"web3-token-analytics-bot/application/composition"
	"web3-token-analytics-bot/application/scheduler"
	"web3-token-analytics-bot/internal/config"
	"web3-token-analytics-bot/internal/types/analysis"
	"web3-token-analytics-bot/pkg/logger"
	"web3-token-analytics-bot/pkg/utils"
)

// Analyzer - один запуск анализа
type Analyzer interface {
	AnalyzeNewTokens(ctx context.Context, hours int, minVolume float64) (*analysis.AnalysisResult, error)
}

// CommandRunner - обработчик команд Telegram
type CommandRunner interface {
	Run(ctx context.Context) error
}

// AppBuilder строит приложение
type AppBuilder struct {
	config    *config.Config
	container *composition.Container
	hours     *int
	minVolume *float64
	interval  *time.Duration
}

// NewAppBuilder создает билдер
func NewAppBuilder() *AppBuilder {
	return &AppBuilder{}
}

// WithConfig задает конфигурацию
func (b *AppBuilder) WithConfig(cfg *config.Config) *AppBuilder {
	b.config = cfg
	return b
}

// WithContainer подставляет готовый контейнер
func (b *AppBuilder) WithContainer(c *composition.Container) *AppBuilder {
	b.container = c
	return b
}

// WithHours - окно анализа в часах
func (b *AppBuilder) WithHours(hours int) *AppBuilder {
	b.hours = &hours
	return b
}

// WithMinVolume - минимальный объем за 24ч
func (b *AppBuilder) WithMinVolume(minVolume float64) *AppBuilder {
	b.minVolume = &minVolume
	return b
}

// WithInterval - интервал непрерывного режима
func (b *AppBuilder) WithInterval(interval time.Duration) *AppBuilder {
	b.interval = &interval
	return b
}

// Build собирает приложение. Параметры, которые не передавались через With*,
// берутся из конфигурации; явный ноль сохраняется.
func (b *AppBuilder) Build(ctx context.Context) (*Application, error) {
	if b.config == nil {
		return nil, errors.New("config is required")
	}

	hours := b.config.TimeWindowHours
	if b.hours != nil {
		hours = *b.hours
	}
	minVolume := b.config.MinVolumeThreshold
	if b.minVolume != nil {
		minVolume = *b.minVolume
	}
	interval := b.config.MonitoringInterval
	if b.interval != nil {
		interval = *b.interval
	}
	switch {
	case hours < 0:
		return nil, fmt.Errorf("hours must not be negative: %d", hours)
	case minVolume < 0:
		return nil, fmt.Errorf("min volume must not be negative: %v", minVolume)
	case interval <= 0:
		return nil, fmt.Errorf("interval must be positive: %v", interval)
	}

	container := b.container
	if container == nil {
		var err error
		if container, err = composition.NewContainer(ctx, b.config); err != nil {
			return nil, fmt.Errorf("failed to build container: %w", err)
		}
	}

	app := &Application{
		config:    b.config,
		container: container,
		analyzer:  container.Pipeline,
		hours:     hours,
		minVolume: minVolume,
		interval:  interval,
	}
	if container.CommandBot != nil {
		app.commands = container.CommandBot
	}
	return app, nil
}

// Application - основное приложение
type Application struct {
	config    *config.Config
	container *composition.Container
	analyzer  Analyzer
	commands  CommandRunner
	scheduler *scheduler.Scheduler

	hours     int
	minVolume float64
	interval  time.Duration

	mu        sync.Mutex
	running   bool
	startTime time.Time
}

// RunOnce - один запуск анализа; ошибка запуска возвращается вызывающему
func (app *Application) RunOnce(ctx context.Context) error {
	if !app.begin() {
		return errors.New("приложение уже запущено")
	}
	defer app.end()

	logger.Info("🔍 Разовый анализ: окно %d ч, мин. объем $%.0f", app.hours, app.minVolume)
	_, err := app.analyzer.AnalyzeNewTokens(ctx, app.hours, app.minVolume)
	return err
}

// RunContinuous запускает анализ по расписанию до отмены ctx.
// Неудачный запуск повторяется через FAILURE_RETRY_DELAY, процесс продолжает работу.
func (app *Application) RunContinuous(ctx context.Context) error {
	if !app.begin() {
		return errors.New("приложение уже запущено")
	}
	defer app.end()

	logger.Info("🔁 Непрерывный мониторинг с интервалом %v", app.interval)

	jobs := scheduler.New()
	app.mu.Lock()
	app.scheduler = jobs
	app.mu.Unlock()

	jobs.Register(&scheduler.Job{
		Name:           "analyze_new_tokens",
		Description:    fmt.Sprintf("Анализ новых токенов за %d ч", app.hours),
		Schedule:       scheduler.Every(app.interval),
		RetryDelay:     app.config.FailureRetryDelay,
		Timeout:        app.config.PipelineTimeout,
		RunImmediately: true,
		Handler: func(ctx context.Context) error {
			_, err := app.analyzer.AnalyzeNewTokens(ctx, app.hours, app.minVolume)
			return err
		},
	})

	var wg sync.WaitGroup
	if app.commands != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := app.commands.Run(ctx); err != nil {
				logger.Error("❌ Обработчик команд остановлен с ошибкой: %v", err)
			}
		}()
	}

	jobs.Start(ctx)
	<-ctx.Done()

	logger.Info("🛑 Останавливаем приложение...")
	jobs.Stop()
	wg.Wait()
	return nil
}

// Jobs - состояние задач планировщика (пусто вне непрерывного режима)
func (app *Application) Jobs() []scheduler.JobStatus {
	app.mu.Lock()
	s := app.scheduler
	app.mu.Unlock()
	if s == nil {
		return nil
	}
	return s.Jobs()
}

// IsRunning возвращает статус
func (app *Application) IsRunning() bool {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.running
}

// Cleanup закрывает соединения контейнера
func (app *Application) Cleanup() {
	if app.container != nil {
		app.container.Close()
	}
}

func (app *Application) begin() bool {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.running {
		return false
	}
	app.running = true
	app.startTime = time.Now()
	return true
}

func (app *Application) end() {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.running = false
	logger.Info("✅ Приложение остановлено. Время работы: %s", utils.FormatDuration(time.Since(app.startTime)))
}

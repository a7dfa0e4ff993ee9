// application/cmd/bot/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"web3-token-analytics-bot/application/bootstrap"
	"web3-token-analytics-bot/internal/config"
	"web3-token-analytics-bot/pkg/logger"
)

var (
	version   = "1.0.0"
	buildTime = "неизвестно"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfgPath := ".env"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		cfgPath = envPath
	}

	var (
		hours       int
		minVolume   float64
		continuous  bool
		interval    int
		logLevel    string
		showHelp    bool
		showVersion bool
	)

	flag.StringVar(&cfgPath, "config", cfgPath, "Путь к .env файлу")
	flag.IntVar(&hours, "hours", 0, "Окно анализа в часах (по умолчанию TIME_WINDOW_HOURS)")
	flag.Float64Var(&minVolume, "min-volume", 0, "Минимальный объем за 24ч в USD (по умолчанию MIN_VOLUME_THRESHOLD)")
	flag.BoolVar(&continuous, "continuous", false, "Непрерывный мониторинг")
	flag.IntVar(&interval, "interval", 0, "Интервал непрерывного режима в секундах (по умолчанию MONITORING_INTERVAL)")
	flag.StringVar(&logLevel, "log-level", "", "Уровень логирования: debug, info, warn, error (переопределяет .env)")
	flag.BoolVar(&showHelp, "help", false, "Показать справку")
	flag.BoolVar(&showVersion, "version", false, "Показать версию")
	flag.Parse()

	if showVersion {
		printVersion()
		return 0
	}
	if showHelp {
		printHelp()
		return 0
	}

	// 1. Конфигурация
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Error("❌ Не удалось загрузить конфигурацию: %v", err)
		return 1
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// 2. Логгер
	if err := initLogger(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Не удалось инициализировать логгер: %v\n", err)
		return 1
	}
	defer logger.Close()

	logger.Info("🚀 Запуск Web3 Token Analytics Bot v%s", version)
	logger.Info("📅 Время сборки: %s", buildTime)
	logger.Info("📋 Конфигурация:")
	logger.Info("   • DexScreener: %s", cfg.DexScreenerBaseURL)
	logger.Info("   • Telegram: %v", cfg.TelegramConfigured())
	logger.Info("   • Сети: %s", strings.Join(cfg.SupportedChains, ", "))
	logger.Info("   • Redis: %v (%s, DB: %d)", cfg.Redis.Enabled, cfg.Redis.Addr(), cfg.Redis.DB)
	logger.Info("   • PostgreSQL: %v (%s:%d/%s)", cfg.Database.Enabled, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	logger.Info("   • Уровень логирования: %s", cfg.LogLevel)

	// Graceful shutdown handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	// 3. Сборка приложения
	builder := bootstrap.NewAppBuilder().WithConfig(cfg)
	// Переопределяем конфигурацию только явно переданными флагами
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "hours":
			builder.WithHours(hours)
		case "min-volume":
			builder.WithMinVolume(minVolume)
		case "interval":
			builder.WithInterval(time.Duration(interval) * time.Second)
		}
	})
	app, err := builder.Build(ctx)
	if err != nil {
		logger.Error("❌ Не удалось собрать приложение: %v", err)
		return 1
	}
	defer app.Cleanup()

	// 4. Запуск
	if continuous {
		logger.Info("🛑 Нажмите Ctrl+C для остановки")
		if err := app.RunContinuous(ctx); err != nil {
			logger.Error("❌ Ошибка непрерывного режима: %v", err)
			return 1
		}
		return 0
	}

	if err := app.RunOnce(ctx); err != nil {
		logger.Error("❌ Анализ завершился с ошибкой: %v", err)
		return 1
	}
	return 0
}

// initLogger пишет в файл и консоль; при ошибке файла переходит на консоль
func initLogger(cfg *config.Config) error {
	logPath := cfg.LogFile
	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			fmt.Printf("❌ Не удалось создать директорию логов %s: %v\n", filepath.Dir(logPath), err)
			logPath = ""
		}
	}

	if err := logger.InitGlobal(logPath, cfg.LogLevel, true); err != nil {
		fmt.Printf("❌ Не удалось инициализировать файловый логгер: %v. Переход на консольный...\n", err)
		return logger.InitGlobal("", cfg.LogLevel, true)
	}
	return nil
}

func printVersion() {
	fmt.Printf("📈 Web3 Token Analytics Bot v%s\n", version)
	fmt.Printf("📅 Сборка: %s\n", buildTime)
	fmt.Println()
	fmt.Println("📊 Функции:")
	fmt.Println("  • Поиск новых пар DexScreener")
	fmt.Println("  • Сигналы pump/dump и рост холдеров")
	fmt.Println("  • Отчеты в Telegram")
}

func printHelp() {
	fmt.Println("📈 Web3 Token Analytics Bot")
	fmt.Println("Анализ новых пар DexScreener с отчетами в Telegram")
	fmt.Println()
	fmt.Println("Использование: bot [опции]")
	fmt.Println()
	fmt.Println("Опции:")
	fmt.Println("  --hours int          Окно анализа в часах (по умолчанию: TIME_WINDOW_HOURS)")
	fmt.Println("  --min-volume float   Минимальный объем за 24ч в USD (по умолчанию: MIN_VOLUME_THRESHOLD)")
	fmt.Println("  --continuous         Непрерывный мониторинг")
	fmt.Println("  --interval int       Интервал мониторинга в секундах (по умолчанию: 3600)")
	fmt.Println("  --config string      Путь к .env файлу (по умолчанию: .env)")
	fmt.Println("  --log-level string   Уровень логирования: debug, info, warn, error")
	fmt.Println("  --version            Показать информацию о версии")
	fmt.Println("  --help               Показать это справочное сообщение")
	fmt.Println()
	fmt.Println("Переменные окружения (через .env файл):")
	fmt.Println("  DEXSCREENER_API_KEY  Ключ API DexScreener")
	fmt.Println("  TELEGRAM_BOT_TOKEN   Токен Telegram бота")
	fmt.Println("  TELEGRAM_CHAT_ID     ID чата для отчетов")
	fmt.Println("  REDIS_ENABLED        Кэш ответов в Redis")
	fmt.Println("  DB_ENABLED           Журнал доставки в PostgreSQL")
	fmt.Println("  LOG_LEVEL            Уровень логирования")
	fmt.Println("  LOG_FILE             Путь к файлу логов")
	fmt.Println()
	fmt.Println("Примеры:")
	fmt.Println("  go run application/cmd/bot/main.go --hours 6 --min-volume 50000")
	fmt.Println("  go run application/cmd/bot/main.go --continuous --interval 1800")
	fmt.Println("  go run application/cmd/bot/main.go --config=configs/prod/.env --log-level=debug")
}

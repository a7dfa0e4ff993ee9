// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"web3-token-analytics-bot/internal/types/analysis"
	"web3-token-analytics-bot/pkg/logger"
)

// Поддерживаемые сети по умолчанию
const defaultSupportedChains = "ethereum,bsc,polygon,arbitrum,optimism,solana,avalanche"

// RedisConfig конфигурация Redis
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// Addr возвращает host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// DatabaseConfig - конфигурация журнала доставки в PostgreSQL
type DatabaseConfig struct {
	Enabled      bool
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// Config - структура конфигурации приложения
type Config struct {
	// DexScreener
	DexScreenerAPIKey  string
	DexScreenerBaseURL string

	// Telegram
	TelegramBotToken        string
	TelegramChatID          string
	TelegramEnabled         bool
	TelegramAPIURL          string
	TelegramCommandsEnabled bool

	// Analytics
	TimeWindowHours        int
	MinVolumeThreshold     float64
	MinHoldersThreshold    int64
	PumpThreshold          float64
	DumpThreshold          float64
	PumpMinTxns            int64
	DumpMinTxns            int64
	NewTokenWindow         time.Duration
	PumpAlertCount         int
	DumpAlertCount         int
	HolderGrowthAlertCount int
	HistorySize            int
	SupportedChains        []string

	// Cache & retries
	CacheDuration  time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	RequestTimeout time.Duration

	// Continuous mode
	MonitoringInterval time.Duration
	FailureRetryDelay  time.Duration
	PipelineTimeout    time.Duration

	// Logging
	LogLevel string
	LogFile  string

	Redis    RedisConfig
	Database DatabaseConfig
}

// LoadConfig загружает конфигурацию из .env файла и окружения.
// Отсутствие файла не ошибка: значения берутся из окружения или по умолчанию.
func LoadConfig(envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn("⚠️ Не удалось загрузить %s: %v", envPath, err)
		}
	}

	cfg := &Config{
		DexScreenerAPIKey:  getEnvString("DEXSCREENER_API_KEY", ""),
		DexScreenerBaseURL: strings.TrimRight(getEnvString("DEXSCREENER_BASE_URL", "https://api.dexscreener.com/latest/dex"), "/"),

		TelegramBotToken:        getEnvString("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:          getEnvString("TELEGRAM_CHAT_ID", ""),
		TelegramEnabled:         getEnvBool("TELEGRAM_ENABLED", true),
		TelegramAPIURL:          strings.TrimRight(getEnvString("TELEGRAM_API_URL", "https://api.telegram.org"), "/"),
		TelegramCommandsEnabled: getEnvBool("TELEGRAM_COMMANDS_ENABLED", false),

		TimeWindowHours:        getEnvInt("TIME_WINDOW_HOURS", 24),
		MinVolumeThreshold:     getEnvFloat("MIN_VOLUME_THRESHOLD", 10000),
		MinHoldersThreshold:    int64(getEnvInt("MIN_HOLDERS_THRESHOLD", 100)),
		PumpThreshold:          getEnvFloat("PUMP_THRESHOLD", 0.15),
		DumpThreshold:          getEnvFloat("DUMP_THRESHOLD", -0.10),
		PumpMinTxns:            int64(getEnvInt("PUMP_MIN_TXNS", 100)),
		DumpMinTxns:            int64(getEnvInt("DUMP_MIN_TXNS", 50)),
		NewTokenWindow:         time.Duration(getEnvInt("NEW_TOKEN_WINDOW_HOURS", 24)) * time.Hour,
		PumpAlertCount:         getEnvInt("PUMP_ALERT_COUNT", 3),
		DumpAlertCount:         getEnvInt("DUMP_ALERT_COUNT", 5),
		HolderGrowthAlertCount: getEnvInt("HOLDER_GROWTH_ALERT_COUNT", 10),
		HistorySize:            getEnvInt("ANALYSIS_HISTORY_SIZE", 24),
		SupportedChains:        parseList(getEnvString("SUPPORTED_CHAINS", defaultSupportedChains)),

		CacheDuration:  getEnvSeconds("CACHE_DURATION", 300),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		RetryDelay:     getEnvSeconds("RETRY_DELAY", 1),
		RequestTimeout: getEnvSeconds("REQUEST_TIMEOUT", 30),

		MonitoringInterval: getEnvSeconds("MONITORING_INTERVAL", 3600),
		FailureRetryDelay:  getEnvSeconds("FAILURE_RETRY_DELAY", 60),
		PipelineTimeout:    getEnvSeconds("PIPELINE_TIMEOUT", 300),

		LogLevel: getEnvString("LOG_LEVEL", "info"),
		LogFile:  getEnvString("LOG_FILE", "logs/analytics_bot.log"),

		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnvString("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			PoolSize: getEnvInt("REDIS_POOL_SIZE", 10),
		},

		Database: DatabaseConfig{
			Enabled:      getEnvBool("DB_ENABLED", false),
			Host:         getEnvString("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnvString("DB_USER", "analytics"),
			Password:     getEnvString("DB_PASSWORD", "password"),
			Name:         getEnvString("DB_NAME", "analytics_db"),
			SSLMode:      getEnvString("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет диапазоны значений
func (c *Config) Validate() error {
	var errs []error

	if c.TimeWindowHours <= 0 {
		errs = append(errs, fmt.Errorf("TIME_WINDOW_HOURS must be positive, got %d", c.TimeWindowHours))
	}
	if c.MinVolumeThreshold < 0 {
		errs = append(errs, fmt.Errorf("MIN_VOLUME_THRESHOLD must not be negative, got %g", c.MinVolumeThreshold))
	}
	if c.MaxRetries < 1 {
		errs = append(errs, fmt.Errorf("MAX_RETRIES must be at least 1, got %d", c.MaxRetries))
	}
	if c.HistorySize < 0 {
		errs = append(errs, fmt.Errorf("ANALYSIS_HISTORY_SIZE must not be negative, got %d", c.HistorySize))
	}
	if c.MonitoringInterval <= 0 {
		errs = append(errs, errors.New("MONITORING_INTERVAL must be positive"))
	}
	if c.PumpThreshold <= c.DumpThreshold {
		errs = append(errs, fmt.Errorf("PUMP_THRESHOLD (%g) must be greater than DUMP_THRESHOLD (%g)",
			c.PumpThreshold, c.DumpThreshold))
	}

	return errors.Join(errs...)
}

// TelegramConfigured - заданы токен и чат
func (c *Config) TelegramConfigured() bool {
	return c.TelegramEnabled && c.TelegramBotToken != "" && c.TelegramChatID != ""
}

// Thresholds собирает пороги анализа в одну структуру для движка и форматтера
func (c *Config) Thresholds() analysis.Thresholds {
	return analysis.Thresholds{
		MinVolume:              c.MinVolumeThreshold,
		MinHolders:             c.MinHoldersThreshold,
		Pump:                   c.PumpThreshold,
		Dump:                   c.DumpThreshold,
		PumpMinTxns:            c.PumpMinTxns,
		DumpMinTxns:            c.DumpMinTxns,
		NewTokenWindow:         c.NewTokenWindow,
		PumpAlertCount:         c.PumpAlertCount,
		DumpAlertCount:         c.DumpAlertCount,
		HolderGrowthAlertCount: c.HolderGrowthAlertCount,
	}
}

// Вспомогательные функции для парсинга переменных окружения
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
		logger.Warn("⚠️ %s=%q не число, используем %d", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return floatValue
		}
		logger.Warn("⚠️ %s=%q не число, используем %g", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvSeconds читает целое число секунд
func getEnvSeconds(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, defaultSeconds)) * time.Second
}

func parseList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, strings.ToLower(part))
		}
	}
	return result
}

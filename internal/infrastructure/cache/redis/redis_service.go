// internal/infrastructure/cache/redis/redis_service.go
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"web3-token-analytics-bot/internal/config"
	"web3-token-analytics-bot/pkg/logger"
)

// ServiceState состояние сервиса
type ServiceState string

const (
	StateStopped ServiceState = "stopped"
	StateRunning ServiceState = "running"
	StateError   ServiceState = "error"
)

// RedisService - подключение к Redis для кэша ответов
type RedisService struct {
	config config.RedisConfig
	client *redis.Client
	state  ServiceState
}

// NewRedisService создает новый Redis сервис
func NewRedisService(cfg config.RedisConfig) *RedisService {
	return &RedisService{
		config: cfg,
		state:  StateStopped,
	}
}

// Start подключается и проверяет соединение
func (rs *RedisService) Start(ctx context.Context) error {
	if rs.state == StateRunning {
		return fmt.Errorf("redis service already running")
	}

	rs.client = redis.NewClient(&redis.Options{
		Addr:     rs.config.Addr(),
		Password: rs.config.Password,
		DB:       rs.config.DB,
		PoolSize: rs.config.PoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	logger.Info("📡 Подключение к Redis: %s (DB: %d)", rs.config.Addr(), rs.config.DB)

	if err := rs.client.Ping(pingCtx).Err(); err != nil {
		rs.client.Close()
		rs.client = nil
		rs.state = StateError
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	rs.state = StateRunning
	logger.Info("✅ Redis подключен")
	return nil
}

// Stop закрывает клиент
func (rs *RedisService) Stop() error {
	if rs.state != StateRunning {
		return nil
	}

	err := rs.client.Close()
	rs.client = nil
	rs.state = StateStopped
	if err != nil {
		return fmt.Errorf("failed to close Redis client: %w", err)
	}
	logger.Info("🛑 Redis отключен")
	return nil
}

// State возвращает состояние сервиса
func (rs *RedisService) State() ServiceState {
	return rs.state
}

// GetCache - кэш поверх текущего клиента, nil если сервис не запущен
func (rs *RedisService) GetCache() *Cache {
	if rs.client == nil {
		return nil
	}
	return NewCacheWithClient(rs.client, DefaultPrefix)
}

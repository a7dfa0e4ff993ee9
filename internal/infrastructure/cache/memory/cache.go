// internal/infrastructure/cache/memory/cache.go
package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"web3-token-analytics-bot/internal/infrastructure/cache"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Cache - кэш в памяти процесса. Истекшие записи удаляются при чтении.
type Cache struct {
	items map[string]entry
	ttl   time.Duration
	now   func() time.Time
	mu    sync.Mutex
}

// NewCache создает кэш; ttl используется, когда в Set передан ноль
func NewCache(defaultTTL time.Duration) *Cache {
	return &Cache{
		items: make(map[string]entry),
		ttl:   defaultTTL,
		now:   time.Now,
	}
}

// Set сохраняет значение
func (c *Cache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = c.ttl
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry{data: data, expiresAt: c.now().Add(ttl)}
	return nil
}

// Get читает значение в dest
func (c *Cache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	item, ok := c.items[key]
	if ok && !c.now().Before(item.expiresAt) {
		delete(c.items, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(item.data, dest)
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *Cache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]entry)
	return nil
}

// Len - число записей, включая еще не вычищенные истекшие
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// internal/notifier/notification_service.go
package notifier

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"web3-token-analytics-bot/internal/infrastructure/persistence/postgres/models"
	"web3-token-analytics-bot/pkg/logger"
)

// Notifier интерфейс отдельного канала доставки
type Notifier interface {
	Send(ctx context.Context, text string) error
	Name() string
	IsEnabled() bool
	SetEnabled(bool)
	GetStats() map[string]interface{}
}

// Journal - журнал попыток доставки (PostgreSQL, если включен)
type Journal interface {
	Save(ctx context.Context, rec *models.Delivery) error
}

// ErrNoNotifiers - нет ни одного включенного канала
var ErrNoNotifiers = errors.New("no enabled notifiers")

// CompositeNotificationService рассылает текст по всем включенным каналам
type CompositeNotificationService struct {
	notifiers []Notifier
	journal   Journal
	enabled   bool
	mu        sync.RWMutex

	totalSent    int64
	successful   int64
	failed       int64
	lastSentTime time.Time
}

// NewCompositeNotificationService создает композитный сервис
func NewCompositeNotificationService(journal Journal, notifiers ...Notifier) *CompositeNotificationService {
	c := &CompositeNotificationService{
		journal: journal,
		enabled: true,
	}
	for _, n := range notifiers {
		c.AddNotifier(n)
	}
	return c
}

// Send отправляет текст через все каналы. Ошибка каждого канала логируется;
// возвращается ошибка, только если не доставил ни один канал.
func (c *CompositeNotificationService) Send(ctx context.Context, text string) error {
	if !c.IsEnabled() {
		return nil
	}

	c.mu.RLock()
	notifiers := append([]Notifier(nil), c.notifiers...)
	c.mu.RUnlock()

	var errs []error
	attempted, sentCount := 0, 0

	for _, notifier := range notifiers {
		if !notifier.IsEnabled() {
			continue
		}
		attempted++

		err := notifier.Send(ctx, text)
		if err != nil {
			logger.Error("❌ Ошибка отправки через %s: %v", notifier.Name(), err)
			errs = append(errs, fmt.Errorf("%s: %w", notifier.Name(), err))
		} else {
			sentCount++
		}
		c.record(ctx, notifier.Name(), text, err)
	}

	c.mu.Lock()
	c.totalSent++
	if attempted > 0 && sentCount == attempted {
		c.successful++
	} else {
		c.failed++
	}
	c.lastSentTime = time.Now()
	c.mu.Unlock()

	if attempted == 0 {
		return ErrNoNotifiers
	}
	if sentCount == 0 {
		return errors.Join(errs...)
	}
	return nil
}

// record пишет исход доставки в журнал; сбой журнала только логируется
func (c *CompositeNotificationService) record(ctx context.Context, channel, text string, sendErr error) {
	if c.journal == nil {
		return
	}

	rec := &models.Delivery{
		Channel:       channel,
		Status:        models.DeliveryStatusSent,
		MessageLength: len([]rune(text)),
	}
	if sendErr != nil {
		rec.Status = models.DeliveryStatusFailed
		rec.Error = sendErr.Error()
	}

	if err := c.journal.Save(ctx, rec); err != nil {
		logger.Warn("⚠️ Не удалось записать доставку в журнал: %v", err)
	}
}

// SetEnabled включает/выключает сервис
func (c *CompositeNotificationService) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

// IsEnabled возвращает статус
func (c *CompositeNotificationService) IsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.enabled
}

// GetStats возвращает статистику
func (c *CompositeNotificationService) GetStats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	notifierStats := make(map[string]interface{})
	for _, notifier := range c.notifiers {
		notifierStats[notifier.Name()] = notifier.GetStats()
	}

	return map[string]interface{}{
		"total_sent":     c.totalSent,
		"successful":     c.successful,
		"failed":         c.failed,
		"last_sent_time": c.lastSentTime,
		"notifiers":      notifierStats,
	}
}

// AddNotifier добавляет нотификатор; nil пропускается
func (c *CompositeNotificationService) AddNotifier(notifier Notifier) {
	if notifier == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifiers = append(c.notifiers, notifier)
}

// RemoveNotifier удаляет нотификатор
func (c *CompositeNotificationService) RemoveNotifier(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, notifier := range c.notifiers {
		if notifier.Name() == name {
			c.notifiers = append(c.notifiers[:i], c.notifiers[i+1:]...)
			break
		}
	}
}

// Names - имена подключенных каналов
func (c *CompositeNotificationService) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.notifiers))
	for _, notifier := range c.notifiers {
		names = append(names, notifier.Name())
	}
	return names
}

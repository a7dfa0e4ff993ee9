// internal/notifier/telegram_notifier.go
package notifier

import (
	"context"
	"sync"
	"time"

	"web3-token-analytics-bot/internal/telegram"
)

// TelegramNotifier нотификатор для Telegram
type TelegramNotifier struct {
	bot     *telegram.TelegramBot
	enabled bool

	mu           sync.Mutex
	sent         int64
	lastSentTime time.Time
}

// NewTelegramNotifier создает Telegram нотификатор; nil, если бот не настроен
func NewTelegramNotifier(bot *telegram.TelegramBot) *TelegramNotifier {
	if bot == nil {
		return nil
	}
	return &TelegramNotifier{bot: bot, enabled: true}
}

// Send отправляет отчет в чат бота
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	if !t.enabled {
		return nil
	}

	if err := t.bot.SendMessage(ctx, text); err != nil {
		return err
	}

	t.mu.Lock()
	t.sent++
	t.lastSentTime = time.Now()
	t.mu.Unlock()
	return nil
}

// Name возвращает имя
func (t *TelegramNotifier) Name() string {
	return "telegram"
}

// IsEnabled возвращает статус
func (t *TelegramNotifier) IsEnabled() bool {
	return t.enabled
}

// SetEnabled включает/выключает
func (t *TelegramNotifier) SetEnabled(enabled bool) {
	t.enabled = enabled
}

// GetStats возвращает статистику
func (t *TelegramNotifier) GetStats() map[string]interface{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	return map[string]interface{}{
		"sent":           t.sent,
		"last_sent_time": t.lastSentTime,
		"type":           "telegram",
		"chat_id":        t.bot.ChatID(),
	}
}

// internal/telegram/bot.go
package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"web3-token-analytics-bot/internal/config"
	"web3-token-analytics-bot/internal/delivery/telegram/app/http_client"
	"web3-token-analytics-bot/pkg/logger"
)

const (
	// MaxMessageLength - лимит длины текста sendMessage
	MaxMessageLength = 4096

	parseModeMarkdown  = "Markdown"
	defaultMaxAttempts = 3
	defaultRetryAfter  = 5 * time.Second
)

// APIError - ответ Bot API с ok=false
type APIError struct {
	Code        int
	Description string
	RetryAfter  time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram API error %d: %s", e.Code, e.Description)
}

// IsParseError - Telegram не смог разобрать разметку
func (e *APIError) IsParseError() bool {
	return e.Code == 400 && strings.Contains(strings.ToLower(e.Description), "can't parse entities")
}

// TelegramBot - бот для отправки отчетов в Telegram
type TelegramBot struct {
	client      *http_client.TelegramClient
	chatID      string
	maxAttempts int
	sleep       func(ctx context.Context, d time.Duration) error

	mu           sync.RWMutex
	lastSendTime time.Time
	sent         int64
	failed       int64
}

// NewTelegramBot создает бота из конфигурации; nil, если токен или чат не заданы
func NewTelegramBot(cfg *config.Config) *TelegramBot {
	if !cfg.TelegramConfigured() {
		logger.Warn("⚠️ Telegram Bot Token или Chat ID не указаны, бот отключен")
		return nil
	}

	client := http_client.NewTelegramClient(http_client.BotBaseURL(cfg.TelegramAPIURL, cfg.TelegramBotToken))
	if cfg.RequestTimeout > 0 {
		client.SetTimeout(cfg.RequestTimeout)
	}
	return NewTelegramBotWithClient(client, cfg.TelegramChatID)
}

// NewTelegramBotWithClient создает бота поверх готового клиента
func NewTelegramBotWithClient(client *http_client.TelegramClient, chatID string) *TelegramBot {
	return &TelegramBot{
		client:      client,
		chatID:      chatID,
		maxAttempts: defaultMaxAttempts,
		sleep:       sleepContext,
	}
}

// ChatID - чат для отчетов
func (tb *TelegramBot) ChatID() string {
	return tb.chatID
}

// SendMessage отправляет текст в настроенный чат
func (tb *TelegramBot) SendMessage(ctx context.Context, text string) error {
	return tb.SendMessageToChat(ctx, tb.chatID, text)
}

// SendMessageToChat отправляет Markdown текст в чат.
// Длинный текст режется по строкам; при ошибке разметки часть уходит простым текстом.
func (tb *TelegramBot) SendMessageToChat(ctx context.Context, chatID, text string) error {
	for _, chunk := range SplitMessage(text, MaxMessageLength) {
		msg := TelegramMessage{
			ChatID:                chatID,
			Text:                  chunk,
			ParseMode:             parseModeMarkdown,
			DisableWebPagePreview: true,
		}

		err := tb.sendTelegramRequest(ctx, "sendMessage", msg)
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsParseError() {
			logger.Warn("⚠️ Telegram не разобрал Markdown (%s), отправляем простым текстом", apiErr.Description)
			msg.ParseMode = ""
			err = tb.sendTelegramRequest(ctx, "sendMessage", msg)
		}
		if err != nil {
			tb.mu.Lock()
			tb.failed++
			tb.mu.Unlock()
			return err
		}
	}

	tb.mu.Lock()
	tb.sent++
	tb.lastSendTime = time.Now()
	tb.mu.Unlock()

	logger.Debug("📨 Сообщение отправлено в Telegram (chat %s, %d символов)", chatID, len(text))
	return nil
}

// sendTelegramRequest вызывает метод Bot API; на 429 ждет retry_after и повторяет
func (tb *TelegramBot) sendTelegramRequest(ctx context.Context, method string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	for attempt := 1; ; attempt++ {
		err := tb.doRequest(ctx, method, jsonData)
		var apiErr *APIError
		if err == nil || !errors.As(err, &apiErr) || apiErr.Code != 429 || attempt >= tb.maxAttempts {
			return err
		}

		logger.Warn("⚠️ Telegram API лимит, ждем %v (попытка %d/%d)", apiErr.RetryAfter, attempt, tb.maxAttempts)
		if err := tb.sleep(ctx, apiErr.RetryAfter); err != nil {
			return err
		}
	}
}

func (tb *TelegramBot) doRequest(ctx context.Context, method string, jsonData []byte) error {
	resp, err := tb.client.PostJSON(ctx, method, jsonData)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var telegramResp TelegramResponse
	if err := json.Unmarshal(body, &telegramResp); err != nil {
		return fmt.Errorf("failed to parse response (status %d): %w", resp.StatusCode, err)
	}
	if telegramResp.OK {
		return nil
	}

	apiErr := &APIError{Code: telegramResp.ErrorCode, Description: telegramResp.Description}
	if apiErr.Code == 429 {
		apiErr.RetryAfter = defaultRetryAfter
		if p := telegramResp.Parameters; p != nil && p.RetryAfter > 0 {
			apiErr.RetryAfter = time.Duration(p.RetryAfter) * time.Second
		}
	}
	return apiErr
}

// GetStats возвращает статистику отправки
func (tb *TelegramBot) GetStats() map[string]interface{} {
	tb.mu.RLock()
	defer tb.mu.RUnlock()

	return map[string]interface{}{
		"sent":           tb.sent,
		"failed":         tb.failed,
		"last_sent_time": tb.lastSendTime,
	}
}

// SplitMessage режет текст на части не длиннее limit символов, по возможности по переводам строк
func SplitMessage(text string, limit int) []string {
	if limit <= 0 || len([]rune(text)) <= limit {
		return []string{text}
	}

	var chunks []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, string(current))
			current = current[:0]
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		runes := []rune(line)
		if len(current)+len(runes) > limit {
			flush()
		}
		for len(runes) > limit {
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}
		current = append(current, runes...)
	}
	flush()

	return chunks
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// internal/delivery/telegram/app/http_client/telegram.go
package http_client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultAPIURL - адрес Bot API по умолчанию
const DefaultAPIURL = "https://api.telegram.org"

// BotBaseURL собирает {apiURL}/bot{token}/
func BotBaseURL(apiURL, token string) string {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return fmt.Sprintf("%s/bot%s/", strings.TrimRight(apiURL, "/"), token)
}

// TelegramClient клиент для работы с Telegram API
type TelegramClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewTelegramClient создает новый клиент Telegram
func NewTelegramClient(baseURL string) *TelegramClient {
	return &TelegramClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}
}

// PostJSON отправляет JSON в метод Bot API
func (c *TelegramClient) PostJSON(ctx context.Context, method string, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+method, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.httpClient.Do(req)
}

// SetTimeout устанавливает таймаут для клиента
func (c *TelegramClient) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

// GetBaseURL возвращает базовый URL
func (c *TelegramClient) GetBaseURL() string {
	return c.baseURL
}

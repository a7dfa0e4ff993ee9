// internal/delivery/telegram/app/http_client/polling.go
package http_client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// PollingClient клиент для polling запросов с увеличенным таймаутом
type PollingClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewPollingClient создает новый клиент для polling
func NewPollingClient(baseURL string) *PollingClient {
	return &PollingClient{
		httpClient: &http.Client{
			Timeout: 35 * time.Second, // Больше чем timeout=30 в Telegram long-polling
		},
		baseURL: baseURL,
	}
}

// GetUpdates выполняет GET запрос для получения обновлений
func (c *PollingClient) GetUpdates(ctx context.Context, offset int, timeout int) (*http.Response, error) {
	fullURL := c.baseURL + "getUpdates?offset=" + strconv.Itoa(offset) + "&timeout=" + strconv.Itoa(timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	return c.httpClient.Do(req)
}

// SetTimeout устанавливает таймаут для клиента
func (c *PollingClient) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

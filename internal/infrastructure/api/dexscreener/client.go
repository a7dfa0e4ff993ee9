// internal/infrastructure/api/dexscreener/client.go
package dexscreener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"web3-token-analytics-bot/internal/config"
	dextypes "web3-token-analytics-bot/internal/types/dexscreener"
	"web3-token-analytics-bot/pkg/logger"
)

// DefaultBaseURL - базовый адрес REST API DexScreener
const DefaultBaseURL = "https://api.dexscreener.com/latest/dex"

// errRetryable - ответ, после которого имеет смысл повторить запрос
var errRetryable = errors.New("retryable response")

// Options - параметры клиента
type Options struct {
	BaseURL    string
	APIKey     string
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client - клиент для работы с API DexScreener
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxRetries int
	retryDelay time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewClient создает клиент
func NewClient(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	maxRetries := opts.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     opts.APIKey,
		maxRetries: maxRetries,
		retryDelay: opts.RetryDelay,
		sleep:      sleepContext,
	}
}

// NewClientFromConfig создает клиент из конфигурации приложения
func NewClientFromConfig(cfg *config.Config) *Client {
	return NewClient(Options{
		BaseURL:    cfg.DexScreenerBaseURL,
		APIKey:     cfg.DexScreenerAPIKey,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Timeout:    cfg.RequestTimeout,
	})
}

// GetRecentPairs - недавно созданные пары, новые первыми
func (c *Client) GetRecentPairs(ctx context.Context, hours int) ([]dextypes.RawPair, error) {
	params := url.Values{}
	params.Set("timeframe", fmt.Sprintf("%dh", hours))
	params.Set("sort", "createdAt")
	params.Set("order", "desc")
	return c.getPairs(ctx, "pairs", params)
}

// SearchPairs ищет пары по адресу токена или символу
func (c *Client) SearchPairs(ctx context.Context, query string) ([]dextypes.RawPair, error) {
	params := url.Values{}
	params.Set("q", query)
	return c.getPairs(ctx, "search", params)
}

// GetTokenInfo - подробности по токену как есть. nil без ошибки, если данных нет.
func (c *Client) GetTokenInfo(ctx context.Context, chain, address string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("tokens/%s/%s", url.PathEscape(chain), url.PathEscape(address))

	var info json.RawMessage
	ok, err := c.doRequest(ctx, endpoint, nil, func(body []byte) error {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err != nil {
			return err
		}
		info = append(json.RawMessage(nil), body...)
		return nil
	})
	if err != nil || !ok {
		return nil, err
	}
	return info, nil
}

// GetTrendingTokens - трендовые пары по всем сетям
func (c *Client) GetTrendingTokens(ctx context.Context) ([]dextypes.RawPair, error) {
	return c.getPairs(ctx, "trending", nil)
}

func (c *Client) getPairs(ctx context.Context, endpoint string, params url.Values) ([]dextypes.RawPair, error) {
	var resp dextypes.PairsResponse
	ok, err := c.doRequest(ctx, endpoint, params, func(body []byte) error {
		resp = dextypes.PairsResponse{}
		return json.Unmarshal(body, &resp)
	})
	if err != nil {
		return nil, err
	}
	if !ok || resp.Pairs == nil {
		return []dextypes.RawPair{}, nil
	}
	return resp.Pairs, nil
}

// doRequest выполняет GET с повторами. ok=false означает, что клиент сдался;
// ошибка возвращается только при отмене контекста.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, decode func([]byte) error) (bool, error) {
	apiURL := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		err := c.attempt(ctx, apiURL, decode)
		if err == nil {
			return true, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		if !errors.Is(err, errRetryable) {
			logger.Error("❌ DexScreener %s: %v", endpoint, err)
			return false, nil
		}

		if attempt == c.maxRetries-1 {
			logger.Error("❌ DexScreener %s: попытки исчерпаны (%d): %v", endpoint, c.maxRetries, err)
			return false, nil
		}

		delay := c.retryDelay * time.Duration(attempt+1)
		logger.Warn("⚠️ DexScreener %s: %v, повтор через %v", endpoint, err, delay)
		if err := c.sleep(ctx, delay); err != nil {
			return false, err
		}
	}

	return false, nil
}

// attempt - одна попытка запроса
func (c *Client) attempt(ctx context.Context, apiURL string, decode func([]byte) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Web3TokenAnalyticsBot/1.0")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %v", errRetryable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", errRetryable, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := decode(body); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", errRetryable, err)
		}
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: rate limit hit", errRetryable)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: API returned status %d", errRetryable, resp.StatusCode)
	default:
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

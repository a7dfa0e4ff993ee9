// internal/notifier/console_notifier.go
package notifier

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"web3-token-analytics-bot/pkg/logger"
)

const consoleSeparator = "══════════════════════════════════════════════════"

// ConsoleNotifier нотификатор для консоли; используется, когда Telegram не настроен
type ConsoleNotifier struct {
	out     io.Writer
	enabled bool
	compact bool

	mu           sync.Mutex
	sent         int64
	lastSentTime time.Time
}

// NewConsoleNotifier создает консольный нотификатор, пишущий в stdout
func NewConsoleNotifier(compact bool) *ConsoleNotifier {
	return NewConsoleNotifierWithWriter(os.Stdout, compact)
}

// NewConsoleNotifierWithWriter создает нотификатор с произвольным выводом
func NewConsoleNotifierWithWriter(out io.Writer, compact bool) *ConsoleNotifier {
	return &ConsoleNotifier{out: out, enabled: true, compact: compact}
}

// Send печатает отчет. В compact режиме в лог уходит только первая непустая строка.
func (c *ConsoleNotifier) Send(ctx context.Context, text string) error {
	if !c.enabled {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.compact {
		logger.Info("📄 %s", firstLine(text))
	} else {
		if _, err := fmt.Fprintf(c.out, "%s\n%s\n%s\n", consoleSeparator, strings.TrimSpace(text), consoleSeparator); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	c.sent++
	c.lastSentTime = time.Now()
	return nil
}

// Name возвращает имя
func (c *ConsoleNotifier) Name() string {
	return "console"
}

// IsEnabled возвращает статус
func (c *ConsoleNotifier) IsEnabled() bool {
	return c.enabled
}

// SetEnabled включает/выключает
func (c *ConsoleNotifier) SetEnabled(enabled bool) {
	c.enabled = enabled
}

// GetStats возвращает статистику
func (c *ConsoleNotifier) GetStats() map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	return map[string]interface{}{
		"sent":           c.sent,
		"last_sent_time": c.lastSentTime,
		"type":           "console",
	}
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

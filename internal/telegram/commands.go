// internal/telegram/commands.go
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"web3-token-analytics-bot/internal/config"
	"web3-token-analytics-bot/internal/delivery/telegram/app/http_client"
	"web3-token-analytics-bot/pkg/logger"
)

const (
	defaultPollTimeout = 30
	defaultErrorDelay  = 5 * time.Second
)

// ReportRunner запускает анализ по команде /analyze и возвращает текст отчета
type ReportRunner interface {
	RunReport(ctx context.Context) (string, error)
}

// StatsProvider отдает сводку последнего анализа для /stats
type StatsProvider interface {
	LatestStats(ctx context.Context) (string, bool)
}

// CommandBot - long polling обработчик команд /start, /analyze, /stats, /help
type CommandBot struct {
	bot         *TelegramBot
	poller      *http_client.PollingClient
	chatID      string
	chains      []string
	runner      ReportRunner
	stats       StatsProvider
	pollTimeout int
	errorDelay  time.Duration
	startedAt   time.Time

	mu       sync.Mutex
	offset   int
	handled  int64
	rejected int64
	stale    int64
}

// NewCommandBot создает обработчик команд для настроенного чата
func NewCommandBot(cfg *config.Config, bot *TelegramBot, runner ReportRunner, stats StatsProvider) *CommandBot {
	poller := http_client.NewPollingClient(http_client.BotBaseURL(cfg.TelegramAPIURL, cfg.TelegramBotToken))
	return NewCommandBotWithPoller(bot, poller, cfg.SupportedChains, runner, stats)
}

// NewCommandBotWithPoller создает обработчик поверх готового polling клиента
func NewCommandBotWithPoller(bot *TelegramBot, poller *http_client.PollingClient, chains []string,
	runner ReportRunner, stats StatsProvider) *CommandBot {
	return &CommandBot{
		bot:         bot,
		poller:      poller,
		chatID:      bot.ChatID(),
		chains:      chains,
		runner:      runner,
		stats:       stats,
		pollTimeout: defaultPollTimeout,
		errorDelay:  defaultErrorDelay,
		startedAt:   time.Now(),
	}
}

// Run опрашивает getUpdates до отмены контекста
func (c *CommandBot) Run(ctx context.Context) error {
	logger.Info("🤖 Обработчик команд Telegram запущен (chat %s)", c.chatID)
	defer logger.Info("🛑 Обработчик команд Telegram остановлен")

	for {
		updates, err := c.poll(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			logger.Warn("⚠️ Ошибка getUpdates: %v", err)
			if sleepContext(ctx, c.errorDelay) != nil {
				return nil
			}
			continue
		}

		for _, update := range updates {
			c.HandleUpdate(ctx, update)
		}
	}
}

func (c *CommandBot) poll(ctx context.Context) ([]Update, error) {
	c.mu.Lock()
	offset := c.offset
	c.mu.Unlock()

	resp, err := c.poller.GetUpdates(ctx, offset, c.pollTimeout)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read updates: %w", err)
	}

	var updates UpdatesResponse
	if err := json.Unmarshal(body, &updates); err != nil {
		return nil, fmt.Errorf("failed to parse updates (status %d): %w", resp.StatusCode, err)
	}
	if !updates.OK {
		return nil, fmt.Errorf("getUpdates failed: %s", updates.Description)
	}
	return updates.Result, nil
}

// HandleUpdate сдвигает offset и отвечает на команду из настроенного чата.
// Уже обработанные update_id и сообщения, отправленные до запуска бота, пропускаются.
func (c *CommandBot) HandleUpdate(ctx context.Context, update Update) {
	c.mu.Lock()
	if update.UpdateID < c.offset {
		c.mu.Unlock()
		return
	}
	c.offset = update.UpdateID + 1
	c.mu.Unlock()

	msg := update.Message
	if msg == nil || !strings.HasPrefix(msg.Text, "/") {
		return
	}

	if msg.Date > 0 && time.Unix(msg.Date, 0).Before(c.startedAt.Truncate(time.Second)) {
		c.mu.Lock()
		c.stale++
		c.mu.Unlock()
		logger.Debug("⏭️ Команда %q отправлена до запуска бота, пропускаем", msg.Text)
		return
	}

	chatID := strconv.FormatInt(msg.Chat.ID, 10)
	if chatID != c.chatID {
		c.mu.Lock()
		c.rejected++
		c.mu.Unlock()
		logger.Debug("🚫 Команда из чужого чата %s проигнорирована", chatID)
		return
	}

	if err := c.handleCommand(ctx, chatID, msg.Text); err != nil {
		logger.Error("❌ Ошибка ответа на %q: %v", msg.Text, err)
	}
}

func (c *CommandBot) handleCommand(ctx context.Context, chatID, text string) error {
	command := parseCommand(text)
	logger.Info("💬 Команда %s", command)

	c.mu.Lock()
	c.handled++
	c.mu.Unlock()

	switch command {
	case "/start":
		return c.bot.SendMessageToChat(ctx, chatID, c.startMessage())
	case "/help":
		return c.bot.SendMessageToChat(ctx, chatID, helpMessage)
	case "/analyze":
		return c.analyze(ctx, chatID)
	case "/stats":
		return c.bot.SendMessageToChat(ctx, chatID, c.statsMessage(ctx))
	default:
		return c.bot.SendMessageToChat(ctx, chatID, "❓ Unknown command. Use /help to see the available commands.")
	}
}

func (c *CommandBot) analyze(ctx context.Context, chatID string) error {
	if err := c.bot.SendMessageToChat(ctx, chatID, "🔍 Analyzing recent tokens..."); err != nil {
		return err
	}

	report, err := c.runner.RunReport(ctx)
	switch {
	case err != nil:
		report = fmt.Sprintf("❌ Analysis failed: %v", err)
	case report == "":
		report = "📭 No pairs found for the configured time window."
	}
	return c.bot.SendMessageToChat(ctx, chatID, report)
}

func (c *CommandBot) statsMessage(ctx context.Context) string {
	if c.stats != nil {
		if text, ok := c.stats.LatestStats(ctx); ok {
			return text
		}
	}
	return "📊 No analysis has been run yet. Use /analyze to run one."
}

func (c *CommandBot) startMessage() string {
	chains := "N/A"
	if len(c.chains) > 0 {
		chains = strings.Join(c.chains, ", ")
	}

	return "🤖 *Web3 Token Analytics Bot*\n\n" +
		"*Available Commands:*\n" +
		"/analyze - Get latest token analysis\n" +
		"/stats - Get current market statistics\n" +
		"/help - Show this help\n\n" +
		"*Features:*\n" +
		"• New token discovery (24h)\n" +
		"• Volume & holder analysis\n" +
		"• Pump/dump signals\n" +
		"• Multi-chain support\n\n" +
		"*Supported chains:* " + chains
}

const helpMessage = "🆘 *Help*\n\n" +
	"/start - Welcome message and supported chains\n" +
	"/analyze - Run an analysis now and get the report\n" +
	"/stats - Summary of the latest analysis\n" +
	"/help - This help"

// GetStats возвращает статистику обработчика
func (c *CommandBot) GetStats() map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	return map[string]interface{}{
		"offset":   c.offset,
		"handled":  c.handled,
		"rejected": c.rejected,
		"stale":    c.stale,
	}
}

// parseCommand - "/Stats@my_bot arg" -> "/stats"
func parseCommand(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	command := fields[0]
	if i := strings.Index(command, "@"); i >= 0 {
		command = command[:i]
	}
	return strings.ToLower(command)
}

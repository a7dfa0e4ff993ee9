// internal/telegram/types.go
package telegram

// TelegramMessage - тело sendMessage
type TelegramMessage struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview,omitempty"`
}

// ResponseParameters - доп. параметры ошибки Bot API
type ResponseParameters struct {
	RetryAfter int `json:"retry_after,omitempty"`
}

// TelegramResponse - ответ от Telegram API
type TelegramResponse struct {
	OK          bool                `json:"ok"`
	ErrorCode   int                 `json:"error_code,omitempty"`
	Description string              `json:"description,omitempty"`
	Parameters  *ResponseParameters `json:"parameters,omitempty"`
}

// UpdatesResponse - ответ getUpdates
type UpdatesResponse struct {
	OK          bool     `json:"ok"`
	Description string   `json:"description,omitempty"`
	Result      []Update `json:"result"`
}

// Update - входящее обновление
type Update struct {
	UpdateID int      `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

// Message - входящее сообщение
type Message struct {
	MessageID int    `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Date      int64  `json:"date"`
	Text      string `json:"text"`
}

// Chat - чат сообщения
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// User - отправитель
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
}

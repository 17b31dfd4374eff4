package notifier

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const telegramTimeout = 10 * time.Second

var telegramBaseURL = "https://api.telegram.org"

// TelegramConfig identifies the bot and the channel it posts to
type TelegramConfig struct {
	BotToken string
	ChatID   string
}

// Telegram posts messages to a Telegram chat or channel
type Telegram struct {
	http   *resty.Client
	config TelegramConfig
}

// NewTelegram creates a Telegram notifier
func NewTelegram(cfg TelegramConfig) (*Telegram, error) {
	if cfg.BotToken == "" || cfg.ChatID == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set", ErrMissingCredentials)
	}

	client := resty.New()
	client.SetBaseURL(telegramBaseURL)
	client.SetTimeout(telegramTimeout)

	return &Telegram{http: client, config: cfg}, nil
}

// Post sends text as a plain message and returns the message ID
func (n *Telegram) Post(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("message text is required")
	}

	payload := map[string]interface{}{
		"chat_id":                  n.config.ChatID,
		"text":                     text,
		"disable_web_page_preview": false,
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
		Result      struct {
			MessageID int64 `json:"message_id"`
		} `json:"result"`
	}

	res, err := n.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&result).
		SetError(&result).
		Post(fmt.Sprintf("/bot%s/sendMessage", n.config.BotToken))
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}

	if res.IsError() {
		// Don't include the request URL, it carries the bot token
		return "", fmt.Errorf("telegram API error (status %d): %s", res.StatusCode(), result.Description)
	}
	if !result.OK {
		return "", fmt.Errorf("telegram API error: %s", result.Description)
	}

	return strconv.FormatInt(result.Result.MessageID, 10), nil
}

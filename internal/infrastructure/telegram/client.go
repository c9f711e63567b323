package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	appErrors "remindbot/internal/pkg/errors"
	"remindbot/internal/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client wraps the Telegram Bot API. All outgoing requests share a bounded
// HTTP timeout so that a slow Telegram endpoint cannot stall the dispatcher;
// a timed-out send surfaces as an error and the caller retries later.
type Client struct {
	api *tgbotapi.BotAPI
	log logger.Logger
}

// NewClient creates a Telegram Bot API client with the given send timeout.
func NewClient(token string, timeout time.Duration, log logger.Logger) (*Client, error) {
	httpClient := &http.Client{Timeout: timeout}
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot client: %w", err)
	}

	log.Info(fmt.Sprintf("Successfully created Telegram bot client: @%s", api.Self.UserName))
	return &Client{api: api, log: log}, nil
}

// Send delivers a plain HTML-formatted text message to a chat. It implements
// the Notifier interface used by the dispatcher.
func (c *Client) Send(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("%w: chat %d: %v", appErrors.ErrTelegramAPI, chatID, err)
	}
	return nil
}

// SendWithKeyboard delivers a text message with an inline keyboard attached.
func (c *Client) SendWithKeyboard(ctx context.Context, chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = keyboard
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("%w: chat %d: %v", appErrors.ErrTelegramAPI, chatID, err)
	}
	return nil
}

// AnswerCallback acknowledges a callback query so the client stops showing
// the loading indicator.
func (c *Client) AnswerCallback(callbackID string) {
	callback := tgbotapi.NewCallback(callbackID, "")
	if _, err := c.api.Request(callback); err != nil {
		c.log.Error(fmt.Sprintf("Failed to answer callback %s", callbackID), err)
	}
}

// Updates returns the long-poll update channel.
func (c *Client) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	return c.api.GetUpdatesChan(u)
}

// Stop closes the long-poll update channel.
func (c *Client) Stop() {
	c.api.StopReceivingUpdates()
}

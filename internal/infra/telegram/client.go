// File: internal/infra/telegram/client.go
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-ai-companion/internal/domain/ports/adapter"
	"telegram-ai-companion/internal/infra/metrics"
)

// Compile-time check
var _ adapter.TelegramBotAdapter = (*Client)(nil)

// Client is the outbound half of the transport: send, edit and delete on a
// shared tgbotapi connection.
type Client struct {
	api    *tgbotapi.BotAPI
	logger *zerolog.Logger
}

func NewClient(api *tgbotapi.BotAPI, logger *zerolog.Logger) *Client {
	return &Client{api: api, logger: logger}
}

func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	sent, err := c.api.Send(msg)
	if err != nil {
		metrics.IncTelegramSendFailure()
		return 0, fmt.Errorf("send message: %w", err)
	}
	return sent.MessageID, nil
}

func (c *Client) EditMessage(ctx context.Context, chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := c.api.Send(edit); err != nil {
		metrics.IncTelegramSendFailure()
		return fmt.Errorf("edit message %d: %w", messageID, err)
	}
	return nil
}

func (c *Client) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	del := tgbotapi.NewDeleteMessage(chatID, messageID)
	if _, err := c.api.Request(del); err != nil {
		metrics.IncTelegramSendFailure()
		return fmt.Errorf("delete message %d: %w", messageID, err)
	}
	return nil
}

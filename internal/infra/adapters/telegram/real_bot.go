package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"homework-status-bot/internal/domain/ports/adapter"
)

var _ adapter.TelegramBotAdapter = (*RealTelegramBotAdapter)(nil)

// sender is the part of tgbotapi.BotAPI the adapter needs.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// RealTelegramBotAdapter delivers messages through the Telegram Bot API.
type RealTelegramBotAdapter struct {
	bot sender
	log *zerolog.Logger
}

// NewRealTelegramBotAdapter authenticates the bot token against Telegram.
func NewRealTelegramBotAdapter(token string, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("bot token is empty")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	compLog := logger.With().Str("component", "TelegramBot").Str("bot", bot.Self.UserName).Logger()
	compLog.Info().Msg("authorized on telegram")
	return newAdapter(bot, &compLog), nil
}

func newAdapter(bot sender, logger *zerolog.Logger) *RealTelegramBotAdapter {
	return &RealTelegramBotAdapter{bot: bot, log: logger}
}

// SendMessage sends text to chatID, which is either a numeric chat id or an @channel name.
func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, chatID string, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := newTextMessage(chatID, text)
	if err != nil {
		return err
	}
	if _, err := r.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	r.log.Debug().Str("chat_id", chatID).Msg("message sent")
	return nil
}

func newTextMessage(chatID, text string) (tgbotapi.MessageConfig, error) {
	chatID = strings.TrimSpace(chatID)
	if id, err := strconv.ParseInt(chatID, 10, 64); err == nil {
		return tgbotapi.NewMessage(id, text), nil
	}
	if strings.HasPrefix(chatID, "@") && len(chatID) > 1 {
		return tgbotapi.NewMessageToChannel(chatID, text), nil
	}
	return tgbotapi.MessageConfig{}, fmt.Errorf("invalid chat id %q", chatID)
}

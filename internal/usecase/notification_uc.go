package usecase

import (
	"context"

	"homework-status-bot/internal/domain/ports/adapter"
	"homework-status-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ NotificationUseCase = (*notificationUC)(nil)

type NotificationUseCase interface {
	// Notify delivers text to the configured chat. Failures are logged, never returned.
	Notify(ctx context.Context, text string) bool
}

type notificationUC struct {
	bot    adapter.TelegramBotAdapter
	chatID string
	log    *zerolog.Logger
}

func NewNotificationUseCase(bot adapter.TelegramBotAdapter, chatID string, logger *zerolog.Logger) *notificationUC {
	return &notificationUC{bot: bot, chatID: chatID, log: logger}
}

func (n *notificationUC) Notify(ctx context.Context, text string) bool {
	if err := n.bot.SendMessage(ctx, n.chatID, text); err != nil {
		metrics.IncNotification("failed")
		n.log.Error().Err(err).Msg("telegram message was not sent")
		return false
	}
	metrics.IncNotification("sent")
	n.log.Debug().Str("text", text).Msg("telegram message sent")
	return true
}

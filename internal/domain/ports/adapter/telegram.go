// File: internal/domain/ports/adapter/telegram.go
package adapter

import "context"

// TelegramBotAdapter delivers plain-text messages to a fixed chat.
type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, chatID string, text string) error
}

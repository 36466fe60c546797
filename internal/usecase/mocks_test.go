// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// newTestLogger creates a silent logger for tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(nil)
	return &logger
}

// fakeAPI returns canned bodies and records the cursors it was called with.
type fakeAPI struct {
	body    any
	err     error
	cursors []int64
}

func (f *fakeAPI) GetStatuses(ctx context.Context, fromDate int64) (any, error) {
	f.cursors = append(f.cursors, fromDate)
	return f.body, f.err
}

type sentMessage struct {
	ChatID string
	Text   string
}

// fakeBot records sent messages; err simulates delivery failures.
type fakeBot struct {
	mu   sync.Mutex
	Sent []sentMessage
	err  error
}

func (b *fakeBot) SendMessage(ctx context.Context, chatID string, text string) error {
	if b.err != nil {
		return b.err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Sent = append(b.Sent, sentMessage{ChatID: chatID, Text: text})
	return nil
}

// jsonBody mirrors what encoding/json produces for an API answer.
func jsonBody(homeworks ...map[string]any) map[string]any {
	list := make([]any, 0, len(homeworks))
	for _, hw := range homeworks {
		list = append(list, hw)
	}
	return map[string]any{"homeworks": list, "current_date": float64(1700000500)}
}

package usecase

import (
	"context"
	"testing"
	"time"

	"homework-status-bot/internal/domain"
)

func TestHomeworkUseCase_CheckLatest(t *testing.T) {
	ctx := context.Background()

	t.Run("returns message for latest homework", func(t *testing.T) {
		api := &fakeAPI{body: jsonBody(map[string]any{"homework_name": "hw1", "status": "rejected"})}
		uc := NewHomeworkUseCase(api, 1000, false, newTestLogger())

		msg, err := uc.CheckLatest(ctx)
		if err != nil {
			t.Fatalf("CheckLatest: %v", err)
		}
		if msg == "" {
			t.Fatalf("expected a message")
		}
		if len(api.cursors) != 1 || api.cursors[0] != 1000 {
			t.Fatalf("cursors = %v", api.cursors)
		}
	})

	t.Run("empty homeworks is not an error", func(t *testing.T) {
		uc := NewHomeworkUseCase(&fakeAPI{body: jsonBody()}, 1000, false, newTestLogger())

		msg, err := uc.CheckLatest(ctx)
		if err != nil || msg != "" {
			t.Fatalf("got %q, %v", msg, err)
		}
	})

	t.Run("missing homeworks stops before mapping", func(t *testing.T) {
		uc := NewHomeworkUseCase(&fakeAPI{body: map[string]any{"code": "not_authenticated"}}, 1000, false, newTestLogger())

		msg, err := uc.CheckLatest(ctx)
		if domain.KindOf(err) != domain.KindMalformedResponse {
			t.Fatalf("expected malformed response, got %v", err)
		}
		if msg != "" {
			t.Fatalf("no message expected, got %q", msg)
		}
	})

	t.Run("api error is passed through", func(t *testing.T) {
		apiErr := &domain.CycleError{Kind: domain.KindEndpointStatus, Op: "get", StatusCode: 503}
		uc := NewHomeworkUseCase(&fakeAPI{err: apiErr}, 1000, false, newTestLogger())

		if _, err := uc.CheckLatest(ctx); domain.KindOf(err) != domain.KindEndpointStatus {
			t.Fatalf("expected endpoint status error, got %v", err)
		}
	})
}

func TestHomeworkUseCase_CursorIsFixedByDefault(t *testing.T) {
	api := &fakeAPI{body: jsonBody(map[string]any{"homework_name": "hw1", "status": "approved"})}
	uc := NewHomeworkUseCase(api, 1000, false, newTestLogger())

	for i := 0; i < 3; i++ {
		if _, err := uc.CheckLatest(context.Background()); err != nil {
			t.Fatalf("CheckLatest: %v", err)
		}
	}
	for _, c := range api.cursors {
		if c != 1000 {
			t.Fatalf("cursor moved: %v", api.cursors)
		}
	}
	if uc.Cursor() != 1000 {
		t.Fatalf("Cursor() = %d", uc.Cursor())
	}
}

func TestHomeworkUseCase_AdvanceCursor(t *testing.T) {
	t.Run("uses current_date from the response", func(t *testing.T) {
		api := &fakeAPI{body: jsonBody(map[string]any{"homework_name": "hw1", "status": "approved"})}
		uc := NewHomeworkUseCase(api, 1000, true, newTestLogger())

		_, _ = uc.CheckLatest(context.Background())
		_, _ = uc.CheckLatest(context.Background())

		if len(api.cursors) != 2 || api.cursors[1] != 1700000500 {
			t.Fatalf("cursors = %v", api.cursors)
		}
	})

	t.Run("falls back to now", func(t *testing.T) {
		api := &fakeAPI{body: map[string]any{"homeworks": []any{}}}
		uc := NewHomeworkUseCase(api, 1000, true, newTestLogger())
		uc.now = func() time.Time { return time.Unix(2000, 0) }

		_, _ = uc.CheckLatest(context.Background())
		if uc.Cursor() != 2000 {
			t.Fatalf("Cursor() = %d", uc.Cursor())
		}
	})

	t.Run("failed cycle keeps cursor", func(t *testing.T) {
		api := &fakeAPI{body: map[string]any{"homeworks": "oops"}}
		uc := NewHomeworkUseCase(api, 1000, true, newTestLogger())

		_, _ = uc.CheckLatest(context.Background())
		if uc.Cursor() != 1000 {
			t.Fatalf("Cursor() = %d", uc.Cursor())
		}
	})
}

package usecase

import (
	"context"
	"time"

	"homework-status-bot/internal/domain/ports/adapter"
	"homework-status-bot/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ HomeworkUseCase = (*homeworkUC)(nil)

// HomeworkUseCase runs the poll, validate and map steps of one cycle.
type HomeworkUseCase interface {
	// CheckLatest returns the message for the latest homework, or "" when there is none.
	CheckLatest(ctx context.Context) (string, error)
	// Cursor is the from_date the next request will use.
	Cursor() int64
}

type homeworkUC struct {
	api     adapter.HomeworkAPI
	cursor  int64
	advance bool
	now     func() time.Time
	log     *zerolog.Logger
}

// NewHomeworkUseCase starts polling from cursor. With advance=false the cursor
// stays fixed for the process lifetime.
func NewHomeworkUseCase(api adapter.HomeworkAPI, cursor int64, advance bool, logger *zerolog.Logger) *homeworkUC {
	return &homeworkUC{
		api:     api,
		cursor:  cursor,
		advance: advance,
		now:     time.Now,
		log:     logger,
	}
}

func (u *homeworkUC) Cursor() int64 { return u.cursor }

func (u *homeworkUC) CheckLatest(ctx context.Context) (string, error) {
	defer logging.TraceDuration(u.log, "HomeworkUC.CheckLatest")()

	body, err := u.api.GetStatuses(ctx, u.cursor)
	if err != nil {
		return "", err
	}
	hw, err := CheckResponse(body)
	if err != nil {
		return "", err
	}
	if hw == nil {
		u.log.Info().Int64("from_date", u.cursor).Msg("homeworks list is empty")
		u.advanceCursor(body)
		return "", nil
	}
	msg, err := ParseStatus(hw)
	if err != nil {
		return "", err
	}
	u.advanceCursor(body)
	return msg, nil
}

func (u *homeworkUC) advanceCursor(body any) {
	if !u.advance {
		return
	}
	next, ok := currentDate(body)
	if !ok {
		next = u.now().Unix()
	}
	u.cursor = next
}

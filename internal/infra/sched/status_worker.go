package sched

import (
	"context"
	"sync"
	"time"

	"homework-status-bot/internal/domain"
	"homework-status-bot/internal/infra/logging"
	"homework-status-bot/internal/infra/metrics"
	"homework-status-bot/internal/usecase"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// CycleInfo describes the outcome of the last finished cycle.
type CycleInfo struct {
	ID       string    `json:"id"`
	At       time.Time `json:"at"`
	Result   string    `json:"result"`
	Kind     string    `json:"error_kind,omitempty"`
	Error    string    `json:"error,omitempty"`
	Cursor   int64     `json:"cursor"`
	Notified bool      `json:"notified"`
}

// StatusWorker polls homework statuses and notifies about them, one cycle per period.
type StatusWorker struct {
	period   time.Duration
	homework usecase.HomeworkUseCase
	notifier usecase.NotificationUseCase
	log      *zerolog.Logger

	// sleep blocks for d or until ctx is done.
	sleep func(ctx context.Context, d time.Duration) error

	mu   sync.RWMutex
	last CycleInfo
}

func NewStatusWorker(period time.Duration, homework usecase.HomeworkUseCase, notifier usecase.NotificationUseCase, logger *zerolog.Logger) *StatusWorker {
	compLog := logger.With().Str("component", "StatusWorker").Logger()
	return &StatusWorker{
		period:   period,
		homework: homework,
		notifier: notifier,
		log:      &compLog,
		sleep:    sleepCtx,
	}
}

// Run executes cycles until ctx is canceled. The full period is slept after every
// cycle, successful or not.
func (w *StatusWorker) Run(ctx context.Context) error {
	w.log.Info().Dur("period", w.period).Int64("from_date", w.homework.Cursor()).Msg("Starting status worker")
	for {
		w.RunCycle(ctx)

		w.log.Info().Dur("period", w.period).Msg("next request scheduled")
		if err := w.sleep(ctx, w.period); err != nil {
			w.log.Info().Msg("Stopping status worker")
			return err
		}
	}
}

// RunCycle performs one POLLING → VALIDATING → NOTIFYING pass.
func (w *StatusWorker) RunCycle(ctx context.Context) CycleInfo {
	id := ulid.Make().String()
	cycleCtx := logging.WithCycleID(ctx, id)
	log := logging.With(cycleCtx, w.log)
	defer logging.TraceDuration(log, "StatusWorker.RunCycle")()

	info := CycleInfo{ID: id, Cursor: w.homework.Cursor()}

	msg, err := w.homework.CheckLatest(cycleCtx)
	switch {
	case err != nil:
		kind := domain.KindOf(err)
		info.Result = "failed"
		info.Kind = kind.String()
		info.Error = err.Error()
		metrics.IncCycleError(kind.String())

		text := failureMessage(err)
		log.Error().Err(err).Str("kind", kind.String()).Msg(text)
		info.Notified = w.notifier.Notify(cycleCtx, text)
	case msg == "":
		info.Result = "empty"
		log.Debug().Msg("no homework updates")
	default:
		info.Result = "notified"
		info.Notified = w.notifier.Notify(cycleCtx, msg)
		log.Info().Bool("delivered", info.Notified).Msg("homework status notification")
	}

	info.At = time.Now()
	metrics.IncPollCycle(info.Result)
	metrics.SetLastCycle(info.At.Unix())

	w.mu.Lock()
	w.last = info
	w.mu.Unlock()
	return info
}

// LastCycle returns the last finished cycle; ok is false before the first one.
func (w *StatusWorker) LastCycle() (CycleInfo, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.last, w.last.ID != ""
}

// failureMessage picks the user-facing text per error kind.
func failureMessage(err error) string {
	switch domain.KindOf(err) {
	case domain.KindEndpointStatus, domain.KindEndpointUnreachable:
		return "Сбой в работе программы: сервис проверки домашних работ недоступен: " + err.Error()
	case domain.KindMalformedResponse:
		return "Сбой в работе программы: некорректный ответ API: " + err.Error()
	case domain.KindUnknownStatus:
		return "Сбой в работе программы: неизвестный статус домашней работы: " + err.Error()
	default:
		return "Сбой в работе программы: " + err.Error()
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
